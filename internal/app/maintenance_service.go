package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
	"unicode/utf16"

	"github.com/example/safeprag/internal/config"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/ports/secondary"
)

// MaintenanceServiceImpl implements the MaintenanceService interface:
// the retention policies over the local store.
type MaintenanceServiceImpl struct {
	store     secondary.KeyValueStore
	orderRepo secondary.OrderRepository
	clock     secondary.Clock
	cfg       *config.Config
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	store secondary.KeyValueStore,
	orderRepo secondary.OrderRepository,
	clock secondary.Clock,
	cfg *config.Config,
) *MaintenanceServiceImpl {
	return &MaintenanceServiceImpl{
		store:     store,
		orderRepo: orderRepo,
		clock:     clock,
		cfg:       cfg,
	}
}

// CleanupServiceOrders drops orders older than the retention window
// (by createdAt). Orders with unparsable timestamps are dropped too:
// they cannot be aged and would otherwise survive forever.
func (s *MaintenanceServiceImpl) CleanupServiceOrders(ctx context.Context) (int, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	cutoff := s.clock.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	kept := orders[:0]
	for _, o := range orders {
		createdAt, err := time.Parse(time.RFC3339, o.CreatedAt)
		if err != nil || createdAt.Before(cutoff) {
			continue
		}
		kept = append(kept, o)
	}

	removed := len(orders) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.orderRepo.ReplaceAll(ctx, kept); err != nil {
		return 0, fmt.Errorf("failed to persist pruned orders: %w", err)
	}
	return removed, nil
}

// CleanupStorageIfNeeded runs the aggressive size-based sweep when
// usage exceeds the hard limit: retain only recent orders and drop
// every key that is not essential (orders, operator identity, company
// profile).
func (s *MaintenanceServiceImpl) CleanupStorageIfNeeded(ctx context.Context) error {
	usage, err := s.CheckStorageUsage(ctx)
	if err != nil {
		return err
	}
	if usage.TotalMB <= s.cfg.HardLimitMB {
		return nil
	}

	log.Printf("storage usage %.2f MB above hard limit, running aggressive sweep", usage.TotalMB)

	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	cutoff := s.clock.Now().AddDate(0, 0, -s.cfg.AggressiveDays)
	var recent []*models.ServiceOrder
	for _, o := range orders {
		createdAt, err := time.Parse(time.RFC3339, o.CreatedAt)
		if err != nil {
			continue
		}
		if !createdAt.Before(cutoff) {
			recent = append(recent, o)
		}
	}
	if err := s.orderRepo.ReplaceAll(ctx, recent); err != nil {
		return fmt.Errorf("failed to persist swept orders: %w", err)
	}

	essential := map[string]bool{
		secondary.KeyServiceOrders: true,
		secondary.KeyOperator:      true,
		secondary.KeyCompany:       true,
	}
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if essential[k] {
			continue
		}
		if err := s.store.Remove(ctx, k); err != nil {
			return fmt.Errorf("failed to drop key %s during sweep: %w", k, err)
		}
	}
	return nil
}

// CheckStorageUsage reports estimated usage per key and in total. The
// estimate is the UTF-16 code-unit byte length of each stored string,
// the measure the storage medium is budgeted against.
func (s *MaintenanceServiceImpl) CheckStorageUsage(ctx context.Context) (*primary.StorageUsage, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	usage := &primary.StorageUsage{}
	for _, k := range keys {
		value, ok, err := s.store.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		sizeMB := float64(utf16ByteLen(value)) / 1024 / 1024
		usage.TotalMB += sizeMB
		usage.Keys = append(usage.Keys, primary.KeyUsage{
			Key:    k,
			SizeMB: sizeMB,
			Items:  collectionLen(value),
		})
	}
	return usage, nil
}

// utf16ByteLen returns the byte length of s encoded as UTF-16, two
// bytes per code unit.
func utf16ByteLen(s string) int {
	return len(utf16.Encode([]rune(s))) * 2
}

// collectionLen returns the element count when value is a JSON array,
// else 1.
func collectionLen(value string) int {
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(value), &arr); err != nil {
		return 1
	}
	return len(arr)
}
