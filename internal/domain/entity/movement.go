package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada: suma al stock
	MovementTypeOut        = "out"        // salida: resta del stock (sin piso en cero)
	MovementTypeAdjustment = "adjustment" // ajuste: fija el stock en un valor absoluto
)

// ValidMovementType indica si el tipo pertenece al conjunto admitido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// Movement es una entrada inmutable del libro de movimientos.
// Quantity es siempre no negativa; su significado depende del tipo.
// ProductName es una instantánea al momento de crearse: el movimiento
// referencia al producto por id, nunca lo posee.
type Movement struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes,omitempty"`
	User        string    `json:"user"`
	Timestamp   time.Time `json:"timestamp"`
}
