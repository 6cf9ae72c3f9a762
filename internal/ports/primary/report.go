package primary

import (
	"context"

	"github.com/example/safeprag/internal/models"
)

// ReportService builds finalized order views and drives the document
// generation bridge.
type ReportService interface {
	// GenerateOrderDocument renders the document for a finished
	// order and records the artifact reference. A bridge failure
	// returns *order.DocumentError and never touches order state.
	GenerateOrderDocument(ctx context.Context, orderID string) (*models.StoredDocument, error)

	// GenerateCertificate renders the service certificate for a
	// finished order.
	GenerateCertificate(ctx context.Context, orderID string, req CertificateRequest) (*models.StoredDocument, error)

	// ListDocuments returns stored document records, newest first,
	// after age pruning.
	ListDocuments(ctx context.Context) ([]*models.StoredDocument, error)
}

// CertificateRequest carries the certificate-specific fields.
type CertificateRequest struct {
	ExecutionDate string
	ValidityDays  int
	Methods       []string
	TargetPests   []string
}
