package app

import (
	"context"
	"sort"
	"time"

	"github.com/example/safeprag/internal/config"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// fixedClock implements secondary.Clock with a settable instant.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// testNow is the reference instant used across app tests.
var testNow = time.Date(2026, 9, 1, 14, 30, 5, 0, time.Local)

func newFixedClock() *fixedClock {
	return &fixedClock{now: testNow}
}

// mockOrderRepository implements secondary.OrderRepository in memory.
type mockOrderRepository struct {
	orders  []*models.ServiceOrder
	getErr  error
	saveErr error
}

func (m *mockOrderRepository) GetAll(ctx context.Context) ([]*models.ServiceOrder, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]*models.ServiceOrder, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*models.ServiceOrder, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepository) Save(ctx context.Context, order *models.ServiceOrder) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i, o := range m.orders {
		if o.ID == order.ID {
			m.orders[i] = order
			return nil
		}
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepository) ReplaceAll(ctx context.Context, orders []*models.ServiceOrder) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders = orders
	return nil
}

// mockScheduleRepository implements secondary.ScheduleRepository in
// memory.
type mockScheduleRepository struct {
	schedules []*models.Schedule
}

func (m *mockScheduleRepository) GetAll(ctx context.Context) ([]*models.Schedule, error) {
	out := make([]*models.Schedule, len(m.schedules))
	copy(out, m.schedules)
	return out, nil
}

func (m *mockScheduleRepository) GetByID(ctx context.Context, id string) (*models.Schedule, error) {
	for _, s := range m.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockScheduleRepository) Save(ctx context.Context, schedule *models.Schedule) error {
	for i, s := range m.schedules {
		if s.ID == schedule.ID {
			m.schedules[i] = schedule
			return nil
		}
	}
	m.schedules = append(m.schedules, schedule)
	return nil
}

func (m *mockScheduleRepository) ReplaceAll(ctx context.Context, schedules []*models.Schedule) error {
	m.schedules = schedules
	return nil
}

// mockOperatorRepository implements secondary.OperatorRepository.
type mockOperatorRepository struct {
	operator *models.Operator
}

func (m *mockOperatorRepository) Get(ctx context.Context) (*models.Operator, error) {
	return m.operator, nil
}

func (m *mockOperatorRepository) Save(ctx context.Context, op *models.Operator) error {
	m.operator = op
	return nil
}

// mockCatalogRepository implements secondary.CatalogRepository.
type mockCatalogRepository struct {
	clients  []*models.Client
	products []*models.Product
	company  *models.Company
}

func (m *mockCatalogRepository) GetClients(ctx context.Context) ([]*models.Client, error) {
	return m.clients, nil
}

func (m *mockCatalogRepository) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepository) GetProducts(ctx context.Context) ([]*models.Product, error) {
	return m.products, nil
}

func (m *mockCatalogRepository) GetCompany(ctx context.Context) (*models.Company, error) {
	return m.company, nil
}

// mockDocumentRepository implements secondary.DocumentRepository.
type mockDocumentRepository struct {
	docs map[string]*models.StoredDocument
}

func newMockDocumentRepository() *mockDocumentRepository {
	return &mockDocumentRepository{docs: make(map[string]*models.StoredDocument)}
}

func (m *mockDocumentRepository) GetAll(ctx context.Context) ([]*models.StoredDocument, error) {
	var out []*models.StoredDocument
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDocumentRepository) Get(ctx context.Context, orderNumber string) (*models.StoredDocument, error) {
	return m.docs[orderNumber], nil
}

func (m *mockDocumentRepository) Put(ctx context.Context, doc *models.StoredDocument) error {
	m.docs[doc.OrderNumber] = doc
	return nil
}

func (m *mockDocumentRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	for orderNumber, d := range m.docs {
		createdAt, err := time.Parse(time.RFC3339, d.CreatedAt)
		if err != nil {
			continue
		}
		if createdAt.Before(cutoff) {
			delete(m.docs, orderNumber)
			removed++
		}
	}
	return removed, nil
}

// mockKVStore implements secondary.KeyValueStore in memory.
type mockKVStore struct {
	data map[string]string
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: make(map[string]string)}
}

func (m *mockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockKVStore) Set(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Remove(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// mockGenerator implements secondary.DocumentGenerator.
type mockGenerator struct {
	ref  secondary.ArtifactRef
	err  error
	seen []*secondary.FinalizedOrderView
}

func (m *mockGenerator) Generate(ctx context.Context, view *secondary.FinalizedOrderView) (secondary.ArtifactRef, error) {
	m.seen = append(m.seen, view)
	if m.err != nil {
		return "", m.err
	}
	return m.ref, nil
}

// ============================================================================
// Fixtures
// ============================================================================

func testSchedule(id string) *models.Schedule {
	return &models.Schedule{
		ID:          id,
		ClientID:    "c1",
		ClientName:  "Padaria Central",
		ServiceType: "inspecao",
		Date:        testNow.Format(dayFormat),
		StartTime:   "08:00",
		EndTime:     "09:00",
		Status:      models.ScheduleStatusPending,
	}
}

// newTestOrderService wires an OrderService over fresh mocks. The
// maintenance service is real, over the same mock store and repo.
func newTestOrderService() (*OrderServiceImpl, *mockOrderRepository, *mockScheduleRepository, *mockOperatorRepository) {
	orderRepo := &mockOrderRepository{}
	scheduleRepo := &mockScheduleRepository{}
	operatorRepo := &mockOperatorRepository{
		operator: &models.Operator{Name: "Carlos Silva", Role: models.RoleControlador},
	}
	clock := newFixedClock()
	cfg := testConfig()
	maintenance := NewMaintenanceService(newMockKVStore(), orderRepo, clock, cfg)
	svc := NewOrderService(orderRepo, scheduleRepo, operatorRepo, clock, cfg, NewBus(), maintenance)
	return svc, orderRepo, scheduleRepo, operatorRepo
}

func testConfig() *config.Config {
	return config.Defaults()
}
