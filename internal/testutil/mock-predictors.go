package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
)

// MockLabeledPredictor is a mock of LabeledPredictor.
type MockLabeledPredictor struct {
	mock.Mock
}

func (m *MockLabeledPredictor) PredictRecord(record domain.FeatureRecord) (float64, error) {
	args := m.Called(record)
	return args.Get(0).(float64), args.Error(1)
}

// MockArrayPredictor is a mock of ArrayPredictor.
type MockArrayPredictor struct {
	mock.Mock
}

func (m *MockArrayPredictor) PredictVector(row []domain.FeatureValue) (float64, error) {
	args := m.Called(row)
	return args.Get(0).(float64), args.Error(1)
}

// MockGoodsCatalogSource is a mock of GoodsCatalogSource.
type MockGoodsCatalogSource struct {
	mock.Mock
}

func (m *MockGoodsCatalogSource) Name() string {
	return "mock"
}

func (m *MockGoodsCatalogSource) LoadDescriptions(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockPredictionMetrics is a mock of PredictionMetrics.
type MockPredictionMetrics struct {
	mock.Mock
}

func (m *MockPredictionMetrics) ObserveDispatch(path domain.ModelPath, code string, elapsed time.Duration, err error) {
	m.Called(path, code, elapsed, err)
}

func (m *MockPredictionMetrics) ObserveRejection(reason string) {
	m.Called(reason)
}

// ArtifactSet builds a registry input from the given maps, substituting empty
// maps for nil ones. Entries are passed through unchanged.
func ArtifactSet(pipelines map[string]ports.LabeledPredictor, raw map[string]ports.ArrayPredictor) ports.ArtifactSet {
	if pipelines == nil {
		pipelines = map[string]ports.LabeledPredictor{}
	}
	if raw == nil {
		raw = map[string]ports.ArrayPredictor{}
	}
	return ports.ArtifactSet{Raw: raw, Pipelines: pipelines}
}

// DenimRequest is the reference request used across tests.
func DenimRequest() *domain.PredictionRequest {
	return &domain.PredictionRequest{
		GoodsCode:       "52094200",
		TradeYear:       2023,
		Quantity:        1000.0,
		Tenor:           30,
		Freight:         500.0,
		Exporter:        "ABC Mills",
		ExporterCountry: "CHINA PEOPLE'S REPUBLIC (P.R)",
		Importer:        "XYZ Garments",
		OriginCountry:   "CHINA PEOPLE'S REPUBLIC (P.R)",
		Currency:        "USD",
		Incoterm:        "FOB",
		ShipmentFrom:    "CHINA PEOPLE'S REPUBLIC (P.R)",
		ShipmentTo:      "CHITTAGONG",
	}
}
