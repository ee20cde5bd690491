package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
)

const namespace = "price_verification"

// unregisteredCode replaces caller-supplied codes that have no model, keeping
// the goods_code label bounded by the registry.
const unregisteredCode = "unregistered"

const outcomeCanceled = "canceled"

type predictionMetrics struct {
	dispatches *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	rejections *prometheus.CounterVec
}

// NewPredictionMetrics registers the dispatch collectors on reg.
func NewPredictionMetrics(reg prometheus.Registerer) ports.PredictionMetrics {
	m := &predictionMetrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Prediction dispatches by model path, goods code and outcome (ok, error, unknown_goods_code, canceled).",
		}, []string{"path", "goods_code", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Time spent inside model inference.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}, []string{"path"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_requests_total",
			Help:      "Requests rejected before dispatch, by offending field.",
		}, []string{"field"}),
	}
	reg.MustRegister(m.dispatches, m.latency, m.rejections)
	return m
}

func (m *predictionMetrics) ObserveDispatch(path domain.ModelPath, code string, elapsed time.Duration, err error) {
	if path == domain.ModelPathNone {
		code = unregisteredCode
	}
	result := outcome(err)
	m.dispatches.WithLabelValues(string(path), code, result).Inc()

	// Only dispatches that reached a model have an inference time.
	if path != domain.ModelPathNone && result != outcomeCanceled {
		m.latency.WithLabelValues(string(path)).Observe(elapsed.Seconds())
	}
}

func (m *predictionMetrics) ObserveRejection(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUnknownGoodsCode):
		return "unknown_goods_code"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return "error"
	}
}
