// Package secondary defines the secondary ports (driven adapters) for
// the application. These are the interfaces through which the
// application drives the local store and other external capabilities.
package secondary

import (
	"context"
	"time"

	"github.com/example/safeprag/internal/models"
)

// Storage keys (logical names, stable across backup/restore).
const (
	KeyCompany             = "safeprag_company_data"
	KeyClients             = "safeprag_clients"
	KeyProducts            = "safeprag_products"
	KeySchedules           = "safeprag_schedules"
	KeySettings            = "safeprag_settings"
	KeyServiceOrders       = "safeprag_service_orders"
	KeyStoredDocuments     = "safeprag_service_order_pdfs"
	KeyOperator            = "userData"
	KeyClientSignature     = "client_signature_data"
	KeySupervisorSignature = "supervisor_assinatura"
)

// KeyValueStore is the contract with the local storage medium. All
// operations are synchronous and atomic per key; no transaction spans
// multiple keys, so cross-key consistency belongs to the caller.
type KeyValueStore interface {
	// Get returns the raw value stored under key. The second return
	// is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes a raw value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)
}

// OrderRepository defines the secondary port for service-order
// persistence over the SERVICE_ORDERS collection.
type OrderRepository interface {
	// GetAll retrieves the full order collection. Corrupt or missing
	// data reads as an empty collection.
	GetAll(ctx context.Context) ([]*models.ServiceOrder, error)

	// GetByID retrieves one order, or nil if absent.
	GetByID(ctx context.Context, id string) (*models.ServiceOrder, error)

	// Save upserts a single order into the collection.
	Save(ctx context.Context, order *models.ServiceOrder) error

	// ReplaceAll overwrites the whole collection.
	ReplaceAll(ctx context.Context, orders []*models.ServiceOrder) error
}

// ScheduleRepository defines the secondary port for schedule
// persistence over the SCHEDULES collection.
type ScheduleRepository interface {
	GetAll(ctx context.Context) ([]*models.Schedule, error)
	GetByID(ctx context.Context, id string) (*models.Schedule, error)
	Save(ctx context.Context, schedule *models.Schedule) error
	ReplaceAll(ctx context.Context, schedules []*models.Schedule) error
}

// CatalogRepository provides the read-only lookups the order lifecycle
// consults: clients, products, and the company profile.
type CatalogRepository interface {
	GetClients(ctx context.Context) ([]*models.Client, error)
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	GetProducts(ctx context.Context) ([]*models.Product, error)
	GetCompany(ctx context.Context) (*models.Company, error)
}

// OperatorRepository resolves the configured operator identity.
type OperatorRepository interface {
	// Get returns the operator identity, or nil if none is configured.
	Get(ctx context.Context) (*models.Operator, error)

	// Save stores the operator identity.
	Save(ctx context.Context, op *models.Operator) error
}

// DocumentRepository stores generated document records keyed by order
// number, an independent collection from orders.
type DocumentRepository interface {
	GetAll(ctx context.Context) ([]*models.StoredDocument, error)
	Get(ctx context.Context, orderNumber string) (*models.StoredDocument, error)
	Put(ctx context.Context, doc *models.StoredDocument) error

	// PruneOlderThan drops records with CreatedAt older than the
	// cutoff and returns how many were removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Clock abstracts time so date-dependent invariants (the
// one-active-order-per-day gate, retention cutoffs) are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock reading the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }
