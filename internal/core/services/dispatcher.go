package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
)

// Estimate is a raw point estimate together with the path that produced it.
type Estimate struct {
	Value float64
	Path  domain.ModelPath
}

type PredictionDispatcher struct {
	registry *ModelRegistry
	metrics  ports.PredictionMetrics
}

func NewPredictionDispatcher(registry *ModelRegistry, metrics ports.PredictionMetrics) *PredictionDispatcher {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &PredictionDispatcher{registry: registry, metrics: metrics}
}

// Predict routes the record to the model registered for code: the pipeline
// model when one exists, else the raw model fed the flat vector. A code with
// neither fails with *domain.UnknownGoodsCodeError and no model is called.
//
// A request whose context is already done is not dispatched; the context error
// is returned wrapped with the code and the path that would have served it.
func (d *PredictionDispatcher) Predict(ctx context.Context, code string, record domain.FeatureRecord) (Estimate, error) {
	start := time.Now()
	entry, ok := d.registry.Lookup(code)

	if err := ctx.Err(); err != nil {
		d.metrics.ObserveDispatch(entry.Path, code, time.Since(start), err)
		return Estimate{Path: entry.Path}, fmt.Errorf("dispatch goods code %s via %s model: %w", code, entry.Path, err)
	}

	if !ok {
		err := &domain.UnknownGoodsCodeError{Code: code}
		d.metrics.ObserveDispatch(domain.ModelPathNone, code, time.Since(start), err)
		return Estimate{Path: domain.ModelPathNone}, err
	}

	var (
		value float64
		err   error
	)
	switch entry.Path {
	case domain.ModelPathPipeline:
		value, err = entry.Labeled.PredictRecord(record)
	default:
		value, err = entry.Array.PredictVector(record.Vector())
	}
	d.metrics.ObserveDispatch(entry.Path, code, time.Since(start), err)

	if err != nil {
		return Estimate{Path: entry.Path}, &domain.InferenceError{Code: code, Path: entry.Path, Err: err}
	}

	log.WithFields(log.Fields{
		"goods_code": code,
		"path":       entry.Path,
		"estimate":   value,
	}).Debug("prediction dispatched")

	return Estimate{Value: value, Path: entry.Path}, nil
}

type noopMetrics struct{}

func (noopMetrics) ObserveDispatch(domain.ModelPath, string, time.Duration, error) {}
func (noopMetrics) ObserveRejection(string)                                         {}
