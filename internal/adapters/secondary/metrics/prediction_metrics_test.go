package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"price-verification-service/internal/core/domain"
)

func TestPredictionMetrics_ObserveDispatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPredictionMetrics(reg).(*predictionMetrics)

	m.ObserveDispatch(domain.ModelPathPipeline, "52094200", time.Millisecond, nil)
	m.ObserveDispatch(domain.ModelPathPipeline, "52094200", time.Millisecond, nil)
	m.ObserveDispatch(domain.ModelPathRaw, "96071100", time.Millisecond, errors.New("boom"))
	m.ObserveDispatch(domain.ModelPathNone, "00000000", 0, &domain.UnknownGoodsCodeError{Code: "00000000"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dispatches.WithLabelValues("pipeline", "52094200", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("raw", "96071100", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("none", "unregistered", "unknown_goods_code")))

	// unknown codes never reach a model, so no latency sample
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestPredictionMetrics_CanceledDispatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPredictionMetrics(reg).(*predictionMetrics)

	m.ObserveDispatch(domain.ModelPathPipeline, "52094200", 0, fmt.Errorf("dispatch: %w", context.Canceled))
	m.ObserveDispatch(domain.ModelPathNone, "00000000", 0, context.DeadlineExceeded)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("pipeline", "52094200", "canceled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("none", "unregistered", "canceled")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.latency))
}

func TestPredictionMetrics_ObserveRejection(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPredictionMetrics(reg).(*predictionMetrics)

	m.ObserveRejection("quantity")
	m.ObserveRejection("quantity")
	m.ObserveRejection("trade_year")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejections.WithLabelValues("quantity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("trade_year")))
}

func TestNewPredictionMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPredictionMetrics(reg)

	assert.Panics(t, func() { NewPredictionMetrics(reg) })
}
