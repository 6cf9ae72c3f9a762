// Package wire provides dependency injection for the safeprag
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/safeprag/internal/adapters/filesystem"
	"github.com/example/safeprag/internal/adapters/notify"
	"github.com/example/safeprag/internal/adapters/persistence"
	"github.com/example/safeprag/internal/adapters/sqlite"
	"github.com/example/safeprag/internal/app"
	"github.com/example/safeprag/internal/config"
	"github.com/example/safeprag/internal/db"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/ports/secondary"
)

var (
	cfg          *config.Config
	store        secondary.KeyValueStore
	operatorRepo secondary.OperatorRepository
	catalogRepo  secondary.CatalogRepository

	orderService       primary.OrderService
	scheduleService    primary.ScheduleService
	deviceService      primary.DeviceSessionService
	reportService      primary.ReportService
	backupService      primary.BackupService
	maintenanceService primary.MaintenanceService

	once sync.Once
)

// OrderService returns the singleton OrderService instance.
func OrderService() primary.OrderService {
	once.Do(initServices)
	return orderService
}

// ScheduleService returns the singleton ScheduleService instance.
func ScheduleService() primary.ScheduleService {
	once.Do(initServices)
	return scheduleService
}

// DeviceService returns the singleton DeviceSessionService instance.
func DeviceService() primary.DeviceSessionService {
	once.Do(initServices)
	return deviceService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// BackupService returns the singleton BackupService instance.
func BackupService() primary.BackupService {
	once.Do(initServices)
	return backupService
}

// MaintenanceService returns the singleton MaintenanceService instance.
func MaintenanceService() primary.MaintenanceService {
	once.Do(initServices)
	return maintenanceService
}

// Store returns the singleton key-value store.
func Store() secondary.KeyValueStore {
	once.Do(initServices)
	return store
}

// OperatorRepository returns the singleton operator repository.
func OperatorRepository() secondary.OperatorRepository {
	once.Do(initServices)
	return operatorRepo
}

// CatalogRepository returns the singleton catalog repository.
func CatalogRepository() secondary.CatalogRepository {
	once.Do(initServices)
	return catalogRepo
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// ReminderScheduler returns a new reminder scheduler printing to
// stdout. Each call creates a fresh scheduler; callers own Start/Stop.
func ReminderScheduler() *notify.ReminderScheduler {
	once.Do(initServices)
	lead := time.Duration(cfg.ReminderLeadHours) * time.Hour
	return notify.NewReminderScheduler(scheduleService, notify.NewConsoleNotifier(os.Stdout), secondary.SystemClock{}, lead)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to resolve home directory: %v", err)
	}
	cfg, err = config.LoadConfig(home)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary ports: the sqlite store and the JSON-collection
	// repositories layered over it
	store = sqlite.NewKVStore(database)
	orderRepo := persistence.NewOrderRepository(store)
	scheduleRepo := persistence.NewScheduleRepository(store)
	operatorRepo = persistence.NewOperatorRepository(store)
	catalogRepo = persistence.NewCatalogRepository(store)
	docRepo := persistence.NewDocumentRepository(store)

	clock := secondary.SystemClock{}
	bus := app.NewBus()

	docsDir := cfg.DocumentsDir
	if docsDir == "" {
		appDir, err := config.AppDir()
		if err != nil {
			log.Fatalf("failed to resolve app directory: %v", err)
		}
		docsDir = filepath.Join(appDir, "documents")
	}
	generator := filesystem.NewGenerator(docsDir, clock)

	// Primary ports implementation
	maintenanceService = app.NewMaintenanceService(store, orderRepo, clock, cfg)
	orderSvc := app.NewOrderService(orderRepo, scheduleRepo, operatorRepo, clock, cfg, bus, maintenanceService)
	orderService = orderSvc
	scheduleService = app.NewScheduleService(scheduleRepo, orderRepo, clock, orderSvc)
	deviceService = app.NewDeviceSessionService(orderRepo)
	reportService = app.NewReportService(orderRepo, catalogRepo, docRepo, generator, clock, cfg)
	backupService = app.NewBackupService(store, clock, bus)
}
