package ports

import (
	"time"

	"price-verification-service/internal/core/domain"
)

// PredictionMetrics records dispatch outcomes.
type PredictionMetrics interface {
	// ObserveDispatch records one dispatch; path is ModelPathNone when no
	// model was found for the code.
	ObserveDispatch(path domain.ModelPath, code string, elapsed time.Duration, err error)

	// ObserveRejection records a request rejected before dispatch
	ObserveRejection(reason string)
}
