package persistence

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/secondary"
)

// CatalogRepository implements secondary.CatalogRepository over the
// CLIENTS, PRODUCTS, and COMPANY keys. The order lifecycle consults
// these read-only; entry forms own the writes.
type CatalogRepository struct {
	store secondary.KeyValueStore
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(store secondary.KeyValueStore) *CatalogRepository {
	return &CatalogRepository{store: store}
}

// GetClients returns the client roster.
func (r *CatalogRepository) GetClients(ctx context.Context) ([]*models.Client, error) {
	raw, ok, err := r.store.Get(ctx, secondary.KeyClients)
	if err != nil || !ok {
		return nil, err
	}

	var clients []*models.Client
	if err := json.Unmarshal([]byte(raw), &clients); err != nil {
		log.Printf("warning: corrupt client roster, treating as empty: %v", err)
		return nil, nil
	}
	return clients, nil
}

// GetClientByID returns one client, or nil if absent.
func (r *CatalogRepository) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	clients, err := r.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

// GetProducts returns the chemical-product catalog.
func (r *CatalogRepository) GetProducts(ctx context.Context) ([]*models.Product, error) {
	raw, ok, err := r.store.Get(ctx, secondary.KeyProducts)
	if err != nil || !ok {
		return nil, err
	}

	var products []*models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		log.Printf("warning: corrupt product catalog, treating as empty: %v", err)
		return nil, nil
	}
	return products, nil
}

// GetCompany returns the company profile, or nil if none is stored.
func (r *CatalogRepository) GetCompany(ctx context.Context) (*models.Company, error) {
	raw, ok, err := r.store.Get(ctx, secondary.KeyCompany)
	if err != nil || !ok {
		return nil, err
	}

	var company models.Company
	if err := json.Unmarshal([]byte(raw), &company); err != nil {
		log.Printf("warning: corrupt company profile, treating as absent: %v", err)
		return nil, nil
	}
	return &company, nil
}
