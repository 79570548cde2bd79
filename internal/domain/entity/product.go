package entity

import "time"

// Product representa un producto perecedero de la despensa (sede única).
// CurrentStock solo se muta a través del procesador de movimientos;
// ExpiryDate es DD.MM.YYYY o vacío ("sin fecha de vencimiento").
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	CurrentStock int       `json:"currentStock"`
	MinStock     int       `json:"minStock"`
	ExpiryDate   string    `json:"expiryDate"`
	Location     string    `json:"location"`
	Supplier     string    `json:"supplier"`
	Barcode      string    `json:"barcode,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WithStock devuelve una copia con el stock cambiado y UpdatedAt refrescado.
// Los mutadores construyen copias en lugar de parches parciales para que
// UpdatedAt nunca quede desactualizado.
func (p Product) WithStock(stock int, now time.Time) Product {
	p.CurrentStock = stock
	p.UpdatedAt = now
	return p
}

// WithDetails devuelve una copia con los atributos editables cambiados y
// UpdatedAt refrescado. No toca CurrentStock ni las marcas de creación.
func (p Product) WithDetails(name, category, unit, expiryDate, location, supplier, barcode string, minStock int, now time.Time) Product {
	p.Name = name
	p.Category = category
	p.Unit = unit
	p.ExpiryDate = expiryDate
	p.Location = location
	p.Supplier = supplier
	p.Barcode = barcode
	p.MinStock = minStock
	p.UpdatedAt = now
	return p
}
