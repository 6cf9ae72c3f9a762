package models

// StoredDocument is a generated service-order document record, keyed by
// order number in its own collection, independent from orders and
// pruned by age.
type StoredDocument struct {
	OrderNumber  string `json:"orderNumber"`
	Artifact     string `json:"pdf"` // opaque artifact reference
	CreatedAt    string `json:"createdAt"`
	ClientName   string `json:"clientName"`
	ServiceType  string `json:"serviceType,omitempty"`
	ClientCode   string `json:"clientCode,omitempty"`
	ClientBranch string `json:"clientBranch,omitempty"`
	Technician   string `json:"technician,omitempty"`
}
