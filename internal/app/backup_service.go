package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/safeprag/internal/ports/secondary"
)

// backupKeys maps logical snapshot names to storage keys. The
// SIGNATURES entry is composite: its sub-keys nest one level deeper in
// the snapshot.
var backupKeys = map[string]string{
	"COMPANY":        secondary.KeyCompany,
	"CLIENTS":        secondary.KeyClients,
	"PRODUCTS":       secondary.KeyProducts,
	"SCHEDULES":      secondary.KeySchedules,
	"SETTINGS":       secondary.KeySettings,
	"SERVICE_ORDERS": secondary.KeyServiceOrders,
	"STORED_PDFS":    secondary.KeyStoredDocuments,
}

// backupSignatureKeys are the composite signature sub-keys.
var backupSignatureKeys = map[string]string{
	"TECHNICIAN": secondary.KeyOperator,
	"CLIENT":     secondary.KeyClientSignature,
	"SUPERVISOR": secondary.KeySupervisorSignature,
}

// BackupServiceImpl implements the BackupService interface.
type BackupServiceImpl struct {
	store secondary.KeyValueStore
	clock secondary.Clock
	bus   *Bus
}

// NewBackupService creates a new BackupService.
func NewBackupService(store secondary.KeyValueStore, clock secondary.Clock, bus *Bus) *BackupServiceImpl {
	return &BackupServiceImpl{store: store, clock: clock, bus: bus}
}

// OnSystemCleanup registers an observer for the full wipe.
func (s *BackupServiceImpl) OnSystemCleanup(fn func()) {
	s.bus.OnSystemCleanup(fn)
}

// BackupAllData assembles every known storage key into one nested
// snapshot. Per-key JSON parse failures fall back to the raw string
// rather than dropping the data.
func (s *BackupServiceImpl) BackupAllData(ctx context.Context) (map[string]any, error) {
	backup := map[string]any{
		"BACKUP_ID":  uuid.NewString(),
		"CREATED_AT": s.clock.Now().Format(time.RFC3339),
	}

	for name, key := range backupKeys {
		value, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s for backup: %w", name, err)
		}
		if !ok {
			continue
		}
		backup[name] = parseOrRaw(name, value)
	}

	signatures := make(map[string]any)
	for sub, key := range backupSignatureKeys {
		value, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read SIGNATURES.%s for backup: %w", sub, err)
		}
		if !ok {
			continue
		}
		signatures[sub] = parseOrRaw("SIGNATURES."+sub, value)
	}
	if len(signatures) > 0 {
		backup["SIGNATURES"] = signatures
	}

	return backup, nil
}

// RestoreBackup writes known top-level keys from the snapshot back
// into the store, re-serializing each value. Unknown keys are ignored
// so newer snapshots restore on older installations. Values are not
// validated against the data model: restore is a trusted bulk
// overwrite.
func (s *BackupServiceImpl) RestoreBackup(ctx context.Context, snapshot map[string]any) error {
	for name, data := range snapshot {
		if name == "SIGNATURES" {
			nested, ok := data.(map[string]any)
			if !ok {
				log.Printf("warning: SIGNATURES entry is not an object, skipped")
				continue
			}
			for sub, subData := range nested {
				key, known := backupSignatureKeys[sub]
				if !known {
					continue
				}
				if err := s.writeValue(ctx, key, subData); err != nil {
					return fmt.Errorf("failed to restore SIGNATURES.%s: %w", sub, err)
				}
			}
			continue
		}

		key, known := backupKeys[name]
		if !known {
			continue
		}
		if err := s.writeValue(ctx, key, data); err != nil {
			return fmt.Errorf("failed to restore %s: %w", name, err)
		}
	}
	return nil
}

// CleanupSystemData wipes all domain keys. Callers must discard any
// in-memory state afterwards; the store is empty.
func (s *BackupServiceImpl) CleanupSystemData(ctx context.Context) error {
	wiped := []string{
		secondary.KeyServiceOrders,
		secondary.KeyCompany,
		secondary.KeyClients,
		secondary.KeyProducts,
		secondary.KeyOperator,
	}
	for _, key := range wiped {
		if err := s.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}

	s.bus.PublishCleanup()
	return nil
}

func (s *BackupServiceImpl) writeValue(ctx context.Context, key string, data any) error {
	serialized, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, string(serialized))
}

func parseOrRaw(name, value string) any {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		log.Printf("warning: %s is not valid JSON, backing up raw string", name)
		return value
	}
	return parsed
}
