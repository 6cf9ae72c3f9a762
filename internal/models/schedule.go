package models

// Schedule represents a planned service visit for a client at a
// date/time window. Status is mutated only through the order lifecycle
// manager, never directly by forms.
type Schedule struct {
	ID            string `json:"id"`
	ClientID      string `json:"clientId"`
	ClientName    string `json:"clientName"`
	ClientBranch  string `json:"clientBranch,omitempty"`
	ClientAddress string `json:"clientAddress,omitempty"`
	ClientContact string `json:"clientContact,omitempty"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"`
	Date          string `json:"date"`      // ISO day
	StartTime     string `json:"startTime"` // HH:mm
	EndTime       string `json:"endTime"`   // HH:mm
	Status        string `json:"status"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// Schedule status constants
const (
	ScheduleStatusPending    = "pending"
	ScheduleStatusInProgress = "in_progress"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusCancelled  = "cancelled"
)
