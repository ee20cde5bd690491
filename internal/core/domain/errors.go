package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Price Verification Errors
// ============================================================================

var (
	ErrArtifactLoad     = errors.New("model artifact could not be loaded")
	ErrUnknownGoodsCode = errors.New("no model or pipeline exists for goods code")
	ErrInvalidInput     = errors.New("invalid prediction request")
	ErrInference        = errors.New("model inference failed")
	ErrCatalogSource    = errors.New("goods catalog source unavailable")
)

// ArtifactLoadError reports a model artifact that could not be read or decoded.
type ArtifactLoadError struct {
	File string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load model artifact %s: %v", e.File, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

func (e *ArtifactLoadError) Is(target error) bool { return target == ErrArtifactLoad }

// UnknownGoodsCodeError is returned when neither a pipeline nor a raw model
// is registered for the requested goods code.
type UnknownGoodsCodeError struct {
	Code string
}

func (e *UnknownGoodsCodeError) Error() string {
	return fmt.Sprintf("no model or pipeline exists for goods code %q", e.Code)
}

func (e *UnknownGoodsCodeError) Is(target error) bool { return target == ErrUnknownGoodsCode }

// InvalidInputError names the request field that failed validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// InferenceError wraps a failure raised by a model while predicting.
type InferenceError struct {
	Code string
	Path ModelPath
	Err  error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("predict goods code %s via %s model: %v", e.Code, e.Path, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

func (e *InferenceError) Is(target error) bool { return target == ErrInference }

// CatalogSourceError wraps a failure of an external goods catalog source.
type CatalogSourceError struct {
	Source string
	Err    error
}

func (e *CatalogSourceError) Error() string {
	return fmt.Sprintf("load goods catalog from %s: %v", e.Source, e.Err)
}

func (e *CatalogSourceError) Unwrap() error { return e.Err }

func (e *CatalogSourceError) Is(target error) bool { return target == ErrCatalogSource }
