package primary

import "context"

// BackupService serializes the full store into a portable snapshot
// and restores it. Restore is a trusted bulk overwrite, not a
// validated import.
type BackupService interface {
	// BackupAllData assembles every known storage key into one
	// nested snapshot. Values that are not valid JSON are carried as
	// raw strings rather than dropped.
	BackupAllData(ctx context.Context) (map[string]any, error)

	// RestoreBackup writes known top-level keys from the snapshot
	// back into the store. Unknown keys are ignored.
	RestoreBackup(ctx context.Context, snapshot map[string]any) error

	// CleanupSystemData wipes all domain keys. Irreversible.
	CleanupSystemData(ctx context.Context) error

	// OnSystemCleanup registers an observer for the full wipe, so
	// in-memory state can be discarded.
	OnSystemCleanup(fn func())
}

// MaintenanceService applies the retention policies and reports
// storage usage.
type MaintenanceService interface {
	// CleanupServiceOrders drops orders older than the retention
	// window and returns how many were removed.
	CleanupServiceOrders(ctx context.Context) (int, error)

	// CleanupStorageIfNeeded runs the aggressive size-based sweep
	// when usage exceeds the hard limit: keep recent orders only and
	// drop non-essential keys.
	CleanupStorageIfNeeded(ctx context.Context) error

	// CheckStorageUsage reports estimated usage per key and total,
	// in megabytes.
	CheckStorageUsage(ctx context.Context) (*StorageUsage, error)
}

// StorageUsage is the per-key usage report.
type StorageUsage struct {
	TotalMB float64
	Keys    []KeyUsage
}

// KeyUsage is the usage of a single storage key.
type KeyUsage struct {
	Key    string
	SizeMB float64
	Items  int
}
