package dto

// ScanRequest lectura cruda de la fuente (cámara o entrada manual).
type ScanRequest struct {
	Code string `json:"code"`
}

// ScanResponse resultado lógico de la lectura.
type ScanResponse struct {
	Outcome string      `json:"outcome"` // suppressed, found, not_found
	State   string      `json:"state"`
	Product interface{} `json:"product,omitempty"`
}

// ConfirmScanRequest datos del producto nuevo del diálogo de alta; el
// código de barras lo aporta la lectura pendiente, no el cliente.
type ConfirmScanRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
	ExpiryDate   string `json:"expiryDate"`
	Location     string `json:"location"`
	Supplier     string `json:"supplier"`
}
