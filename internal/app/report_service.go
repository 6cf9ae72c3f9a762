package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/safeprag/internal/config"
	"github.com/example/safeprag/internal/core/device"
	"github.com/example/safeprag/internal/core/order"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface: building
// finalized order views and driving the document bridge.
type ReportServiceImpl struct {
	orderRepo   secondary.OrderRepository
	catalogRepo secondary.CatalogRepository
	docRepo     secondary.DocumentRepository
	generator   secondary.DocumentGenerator
	clock       secondary.Clock
	cfg         *config.Config
}

// NewReportService creates a new ReportService with injected
// dependencies.
func NewReportService(
	orderRepo secondary.OrderRepository,
	catalogRepo secondary.CatalogRepository,
	docRepo secondary.DocumentRepository,
	generator secondary.DocumentGenerator,
	clock secondary.Clock,
	cfg *config.Config,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		docRepo:     docRepo,
		generator:   generator,
		clock:       clock,
		cfg:         cfg,
	}
}

// GenerateOrderDocument renders the service-order document and stores
// its artifact reference. The order's state is never touched here: a
// bridge failure surfaces as *order.DocumentError and the completed
// transition stands.
func (s *ReportServiceImpl) GenerateOrderDocument(ctx context.Context, orderID string) (*models.StoredDocument, error) {
	view, err := s.buildView(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ref, err := s.generator.Generate(ctx, view)
	if err != nil {
		return nil, &order.DocumentError{OrderID: orderID, Err: err}
	}

	return s.record(ctx, view, ref)
}

// GenerateCertificate renders the service certificate for a finished
// order.
func (s *ReportServiceImpl) GenerateCertificate(ctx context.Context, orderID string, req primary.CertificateRequest) (*models.StoredDocument, error) {
	view, err := s.buildView(ctx, orderID)
	if err != nil {
		return nil, err
	}

	validity := req.ValidityDays
	if validity == 0 {
		validity = s.cfg.CertValidityDays
	}
	execution := req.ExecutionDate
	if execution == "" {
		execution = view.Order.Date
	}
	view.Certificate = &secondary.CertificateInfo{
		ExecutionDate: execution,
		ValidityDays:  validity,
		Methods:       req.Methods,
		TargetPests:   req.TargetPests,
	}

	ref, err := s.generator.Generate(ctx, view)
	if err != nil {
		return nil, &order.DocumentError{OrderID: orderID, Err: err}
	}

	return s.record(ctx, view, ref)
}

// ListDocuments returns stored document records, newest first, after
// age pruning.
func (s *ReportServiceImpl) ListDocuments(ctx context.Context) ([]*models.StoredDocument, error) {
	cutoff := s.clock.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	if _, err := s.docRepo.PruneOlderThan(ctx, cutoff); err != nil {
		return nil, err
	}

	docs, err := s.docRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt > docs[j].CreatedAt
	})
	return docs, nil
}

// buildView assembles the finalized order view: order core fields,
// aggregated device groups, and resolved catalog records.
func (s *ReportServiceImpl) buildView(ctx context.Context, orderID string) (*secondary.FinalizedOrderView, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("service order %s: %w", orderID, order.ErrNotFound)
	}

	client, err := s.catalogRepo.GetClientByID(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}
	company, err := s.catalogRepo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}

	return &secondary.FinalizedOrderView{
		OrderNumber: o.ID,
		Order:       o,
		Devices:     device.Group(o.SavedDevices),
		Client:      client,
		Company:     company,
		Product:     o.Product,
		Signatures:  o.Signatures,
	}, nil
}

// record stores the generated artifact's reference keyed by order
// number.
func (s *ReportServiceImpl) record(ctx context.Context, view *secondary.FinalizedOrderView, ref secondary.ArtifactRef) (*models.StoredDocument, error) {
	clientCode := ""
	clientBranch := view.Order.ClientBranch
	if view.Client != nil {
		clientCode = view.Client.Code
		if clientBranch == "" {
			clientBranch = view.Client.Branch
		}
	}

	doc := &models.StoredDocument{
		OrderNumber:  view.OrderNumber,
		Artifact:     string(ref),
		CreatedAt:    s.clock.Now().Format(time.RFC3339),
		ClientName:   view.Order.ClientName,
		ServiceType:  view.Order.ServiceType,
		ClientCode:   clientCode,
		ClientBranch: clientBranch,
		Technician:   view.Order.ControladorName,
	}

	if err := s.docRepo.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to record generated document: %w", err)
	}
	return doc, nil
}
