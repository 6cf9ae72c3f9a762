// Package models contains domain types for safeprag entities.
// Persistence lives in internal/adapters/persistence; these types are
// the JSON shapes stored under the fixed storage keys.
package models

// ServiceOrder represents the auditable record of a visit actually
// performed, linked 1:1 to a Schedule.
type ServiceOrder struct {
	ID               string      `json:"id"`
	ScheduleID       string      `json:"scheduleId"`
	ClientID         string      `json:"clientId"`
	ClientName       string      `json:"clientName"`
	ClientBranch     string      `json:"clientBranch,omitempty"`
	ClientAddress    string      `json:"clientAddress,omitempty"`
	ServiceType      string      `json:"serviceType"`
	Date             string      `json:"date"`      // ISO day, e.g. 2026-09-01
	StartTime        string      `json:"startTime"` // HH:mm
	ServiceStartTime string      `json:"serviceStartTime,omitempty"`
	EndTime          string      `json:"endTime,omitempty"` // HH:mm:ss, stamped at finish
	Status           string      `json:"status"`
	CreatedAt        string      `json:"createdAt"` // RFC3339
	UpdatedAt        string      `json:"updatedAt"` // RFC3339
	Notes            string      `json:"notes,omitempty"`
	ControladorName  string      `json:"controladorName,omitempty"`
	NoServiceReason  string      `json:"noServiceReason,omitempty"`
	Treatment        string      `json:"treatment,omitempty"`
	Signatures       Signatures  `json:"signatures"`
	Product          *ProductUse `json:"product,omitempty"`
	SavedDevices     []Device    `json:"savedDevices,omitempty"`
}

// Signatures holds the signature image references captured on an order.
type Signatures struct {
	Client     string `json:"client"`
	Technician string `json:"technician"`
}

// ProductUse records the chemical product applied during an order.
type ProductUse struct {
	Name             string `json:"name"`
	ActiveIngredient string `json:"activeIngredient,omitempty"`
	ChemicalGroup    string `json:"chemicalGroup,omitempty"`
	Registration     string `json:"registration,omitempty"`
	Batch            string `json:"batch,omitempty"`
	Validity         string `json:"validity,omitempty"`
	Quantity         string `json:"quantity,omitempty"`
	Dilution         string `json:"dilution,omitempty"`
}

// Service order status constants
const (
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusApproved   = "approved"
)

// TreatmentServiceTypes are the service types that require the treatment
// field to be filled before an order can be finished.
var TreatmentServiceTypes = []string{
	"pulverizacao",
	"atomizacao",
	"termonebulizacao",
	"polvilhamento",
	"iscagem_gel",
}
