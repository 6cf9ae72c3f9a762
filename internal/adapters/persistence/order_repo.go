// Package persistence contains the JSON-collection repositories that
// sit on top of the key-value store port. Reads fail open: missing or
// corrupt data is treated as an empty collection, never a crash.
package persistence

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/secondary"
)

// OrderRepository implements secondary.OrderRepository over the
// SERVICE_ORDERS key.
type OrderRepository struct {
	store secondary.KeyValueStore
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(store secondary.KeyValueStore) *OrderRepository {
	return &OrderRepository{store: store}
}

// GetAll retrieves the full order collection.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*models.ServiceOrder, error) {
	raw, ok, err := r.store.Get(ctx, secondary.KeyServiceOrders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var orders []*models.ServiceOrder
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		log.Printf("warning: corrupt service order collection, treating as empty: %v", err)
		return nil, nil
	}
	return orders, nil
}

// GetByID retrieves one order, or nil if absent.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.ServiceOrder, error) {
	orders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

// Save upserts a single order into the collection.
func (r *OrderRepository) Save(ctx context.Context, order *models.ServiceOrder) error {
	orders, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	found := false
	for i, o := range orders {
		if o.ID == order.ID {
			orders[i] = order
			found = true
			break
		}
	}
	if !found {
		orders = append(orders, order)
	}

	return r.ReplaceAll(ctx, orders)
}

// ReplaceAll overwrites the whole collection.
func (r *OrderRepository) ReplaceAll(ctx context.Context, orders []*models.ServiceOrder) error {
	if orders == nil {
		orders = []*models.ServiceOrder{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, secondary.KeyServiceOrders, string(data))
}
