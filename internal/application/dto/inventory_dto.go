package dto

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"` // in, out, adjustment
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
	User      string `json:"user"`
}
