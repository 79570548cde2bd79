package dto

// ProductRequest body para crear o editar un producto.
// currentStock solo se respeta al crear; después el stock muta únicamente
// vía movimientos.
type ProductRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
	ExpiryDate   string `json:"expiryDate"` // DD.MM.YYYY o vacío
	Location     string `json:"location"`
	Supplier     string `json:"supplier"`
	Barcode      string `json:"barcode"`
}
