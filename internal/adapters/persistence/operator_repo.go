package persistence

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/secondary"
)

// OperatorRepository implements secondary.OperatorRepository over the
// operator identity key.
type OperatorRepository struct {
	store secondary.KeyValueStore
}

// NewOperatorRepository creates a new operator repository.
func NewOperatorRepository(store secondary.KeyValueStore) *OperatorRepository {
	return &OperatorRepository{store: store}
}

// Get returns the operator identity, or nil if none is configured.
func (r *OperatorRepository) Get(ctx context.Context) (*models.Operator, error) {
	raw, ok, err := r.store.Get(ctx, secondary.KeyOperator)
	if err != nil || !ok {
		return nil, err
	}

	var op models.Operator
	if err := json.Unmarshal([]byte(raw), &op); err != nil {
		log.Printf("warning: corrupt operator identity, treating as absent: %v", err)
		return nil, nil
	}
	return &op, nil
}

// Save stores the operator identity.
func (r *OperatorRepository) Save(ctx context.Context, op *models.Operator) error {
	data, err := json.Marshal(op)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, secondary.KeyOperator, string(data))
}
