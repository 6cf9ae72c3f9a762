package secondary

import (
	"context"

	"github.com/example/safeprag/internal/models"
)

// FinalizedOrderView is everything the document bridge needs to render
// a service order or certificate: the order core fields, aggregated
// device groups, resolved catalog records, and signature images.
type FinalizedOrderView struct {
	OrderNumber string
	Order       *models.ServiceOrder
	Devices     []models.DeviceGroup
	Client      *models.Client
	Company     *models.Company
	Product     *models.ProductUse
	Signatures  models.Signatures

	// Certificate fields; zero values for plain service orders.
	Certificate *CertificateInfo
}

// CertificateInfo carries the extra fields a service certificate
// renders beyond the order itself.
type CertificateInfo struct {
	ExecutionDate string
	ValidityDays  int
	Methods       []string
	TargetPests   []string
}

// ArtifactRef is an opaque reference to a generated document.
type ArtifactRef string

// DocumentGenerator is the document generation bridge. A failure here
// must be surfaced distinctly from order-state failures: it never
// rolls back an already-persisted status transition.
type DocumentGenerator interface {
	Generate(ctx context.Context, view *FinalizedOrderView) (ArtifactRef, error)
}

// Notifier surfaces user-facing reminders for upcoming schedules.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
