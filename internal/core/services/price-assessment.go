package services

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"price-verification-service/internal/config"
	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
)

// GoodsOption describes a goods code an analyst can assess.
type GoodsOption struct {
	Code        string
	Description string
	Kinds       []domain.ModelPath
	DataPoor    bool
}

type PriceAssessmentService struct {
	registry   *ModelRegistry
	catalog    *GoodsCatalogService
	dispatcher *PredictionDispatcher
	deriver    *CaveatDeriver
	metrics    ports.PredictionMetrics
	minYear    int
	now        func() time.Time
}

func NewPriceAssessmentService(
	registry *ModelRegistry,
	catalog *GoodsCatalogService,
	metrics ports.PredictionMetrics,
	cfg config.AssessmentConfig,
) *PriceAssessmentService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	minYear := cfg.MinTradeYear
	if minYear == 0 {
		minYear = domain.DefaultMinTradeYear
	}
	return &PriceAssessmentService{
		registry:   registry,
		catalog:    catalog,
		dispatcher: NewPredictionDispatcher(registry, metrics),
		deriver:    NewCaveatDeriver(catalog),
		metrics:    metrics,
		minYear:    minYear,
		now:        time.Now,
	}
}

// Assess validates the request, predicts the expected unit price for its
// goods code and derives the expected range. Invalid requests are rejected
// before any features are assembled.
func (s *PriceAssessmentService) Assess(ctx context.Context, req *domain.PredictionRequest) (*domain.PredictionResult, error) {
	if err := req.Validate(s.minYear, s.now()); err != nil {
		reason := "invalid_input"
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			reason = invalid.Field
		}
		s.metrics.ObserveRejection(reason)
		return nil, err
	}

	record := AssembleFeatures(req)
	estimate, err := s.dispatcher.Predict(ctx, req.GoodsCode, record)
	if err != nil {
		return nil, err
	}

	result := s.deriver.Derive(estimate.Value, req.GoodsCode)
	result.Currency = req.Currency
	result.Path = estimate.Path

	if req.DeclaredUnitPrice != nil {
		declared := *req.DeclaredUnitPrice
		result.DeclaredUnitPrice = &declared
		result.Verdict = result.Judge(declared)
	}

	if result.Caveat != nil {
		log.WithField("goods_code", req.GoodsCode).Warn("assessment for goods with insufficient training data")
	}

	return &result, nil
}

// ListGoods returns the goods codes offered for assessment.
func (s *PriceAssessmentService) ListGoods() []GoodsOption {
	codes := s.registry.SelectableCodes()
	out := make([]GoodsOption, 0, len(codes))
	for _, code := range codes {
		out = append(out, s.DescribeGoods(code))
	}
	return out
}

// DescribeGoods reports the catalog description and available models for a
// code. Unknown codes get the fallback description and no kinds.
func (s *PriceAssessmentService) DescribeGoods(code string) GoodsOption {
	return GoodsOption{
		Code:        code,
		Description: s.catalog.Describe(code),
		Kinds:       s.registry.Kinds(code),
		DataPoor:    domain.IsDataPoor(code),
	}
}

// ModelCount is the number of goods codes with at least one model.
func (s *PriceAssessmentService) ModelCount() int {
	return s.registry.Size()
}
