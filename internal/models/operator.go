package models

// Operator role constants
const (
	RoleControlador = "controlador"
	RoleTecnico     = "tecnico"
)

// Operator is the identity record stored under the userData key. Its
// name is stamped on every order created; an order cannot be created
// without it.
type Operator struct {
	Name          string `json:"name"`
	Contact       string `json:"contact,omitempty"`
	Role          string `json:"role,omitempty"`
	SignatureType string `json:"signatureType,omitempty"`
	Signature     string `json:"signature,omitempty"` // image ref
}
