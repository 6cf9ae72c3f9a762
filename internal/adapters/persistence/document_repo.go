package persistence

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/secondary"
)

// DocumentRepository implements secondary.DocumentRepository. Stored
// documents live as a JSON object keyed by order number, matching the
// backup snapshot shape.
type DocumentRepository struct {
	store secondary.KeyValueStore
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(store secondary.KeyValueStore) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) load(ctx context.Context) (map[string]*models.StoredDocument, error) {
	raw, ok, err := r.store.Get(ctx, secondary.KeyStoredDocuments)
	if err != nil {
		return nil, err
	}
	docs := make(map[string]*models.StoredDocument)
	if !ok {
		return docs, nil
	}
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		log.Printf("warning: corrupt stored document collection, treating as empty: %v", err)
		return make(map[string]*models.StoredDocument), nil
	}
	return docs, nil
}

func (r *DocumentRepository) save(ctx context.Context, docs map[string]*models.StoredDocument) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, secondary.KeyStoredDocuments, string(data))
}

// GetAll returns every stored document record.
func (r *DocumentRepository) GetAll(ctx context.Context) ([]*models.StoredDocument, error) {
	docs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.StoredDocument, 0, len(docs))
	for orderNumber, d := range docs {
		d.OrderNumber = orderNumber
		out = append(out, d)
	}
	return out, nil
}

// Get returns the record for one order number, or nil.
func (r *DocumentRepository) Get(ctx context.Context, orderNumber string) (*models.StoredDocument, error) {
	docs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := docs[orderNumber]
	if !ok {
		return nil, nil
	}
	d.OrderNumber = orderNumber
	return d, nil
}

// Put stores a record under its order number, replacing any previous
// document for the same order.
func (r *DocumentRepository) Put(ctx context.Context, doc *models.StoredDocument) error {
	docs, err := r.load(ctx)
	if err != nil {
		return err
	}
	docs[doc.OrderNumber] = doc
	return r.save(ctx, docs)
}

// PruneOlderThan drops records created before the cutoff.
func (r *DocumentRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	docs, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for orderNumber, d := range docs {
		createdAt, err := time.Parse(time.RFC3339, d.CreatedAt)
		if err != nil {
			// Unparsable timestamps are kept rather than silently dropped
			continue
		}
		if createdAt.Before(cutoff) {
			delete(docs, orderNumber)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, r.save(ctx, docs)
}
