package ports

import (
	"price-verification-service/internal/core/domain"
)

// ============================================================================
// Predictors
// ============================================================================

// LabeledPredictor is a pipeline model: it accepts a labeled feature record
// and performs its own encoding and scaling.
type LabeledPredictor interface {
	PredictRecord(record domain.FeatureRecord) (float64, error)
}

// ArrayPredictor is a raw model: it accepts the flat feature vector in
// schema order with no preprocessing.
type ArrayPredictor interface {
	PredictVector(row []domain.FeatureValue) (float64, error)
}

// ArtifactSet holds the models discovered in an artifact directory, keyed
// by goods code.
type ArtifactSet struct {
	Raw       map[string]ArrayPredictor
	Pipelines map[string]LabeledPredictor
}
