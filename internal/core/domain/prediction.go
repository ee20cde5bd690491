package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const DefaultMinTradeYear = 2022

// Symmetric band applied around a point estimate. This is a fixed heuristic,
// not a fitted confidence interval.
const (
	RangeLowerFactor = 0.85
	RangeUpperFactor = 1.15
)

// ModelPath identifies which prediction path served a request.
type ModelPath string

const (
	ModelPathPipeline ModelPath = "pipeline"
	ModelPathRaw      ModelPath = "raw"
	ModelPathNone     ModelPath = "none"
)

type Verdict string

const (
	VerdictWithinRange   Verdict = "WITHIN_RANGE"
	VerdictUnderInvoiced Verdict = "UNDER_INVOICED"
	VerdictOverInvoiced  Verdict = "OVER_INVOICED"
)

// PredictionRequest carries the declared attributes of one import shipment.
type PredictionRequest struct {
	GoodsCode       string
	TradeYear       int
	Quantity        float64
	Tenor           int
	Freight         float64
	Exporter        string
	ExporterCountry string
	Importer        string
	OriginCountry   string
	Currency        string
	Incoterm        string
	ShipmentFrom    string
	ShipmentTo      string

	// DeclaredUnitPrice is optional; when set the result carries a verdict.
	DeclaredUnitPrice *float64
}

// Validate checks the numeric constraints of the request. Trade years run
// from minYear up to, but excluding, the current year.
func (r *PredictionRequest) Validate(minYear int, now time.Time) error {
	if strings.TrimSpace(r.GoodsCode) == "" {
		return &InvalidInputError{Field: "goods_code", Reason: "is required"}
	}
	if r.TradeYear < minYear || r.TradeYear >= now.Year() {
		return &InvalidInputError{
			Field:  "trade_year",
			Reason: fmt.Sprintf("must be between %d and %d", minYear, now.Year()-1),
		}
	}
	if err := nonNegative("quantity", r.Quantity); err != nil {
		return err
	}
	if r.Tenor < 0 {
		return &InvalidInputError{Field: "tenor", Reason: "must be >= 0"}
	}
	if err := nonNegative("freight", r.Freight); err != nil {
		return err
	}
	if r.DeclaredUnitPrice != nil {
		if err := nonNegative("declared_unit_price", *r.DeclaredUnitPrice); err != nil {
			return err
		}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &InvalidInputError{Field: field, Reason: "must be >= 0"}
	}
	return nil
}

// Caveat flags a goods category whose model had insufficient training data.
type Caveat struct {
	Code        string
	Description string
	Message     string
}

// PredictionResult is the per-request outcome of a price assessment.
type PredictionResult struct {
	GoodsCode         string
	GoodsDescription  string
	Point             float64
	Lower             float64
	Upper             float64
	Currency          string
	Path              ModelPath
	Caveat            *Caveat
	DeclaredUnitPrice *float64
	Verdict           Verdict
}

// Judge compares a declared unit price against the expected range.
func (r *PredictionResult) Judge(declared float64) Verdict {
	switch {
	case declared < r.Lower:
		return VerdictUnderInvoiced
	case declared > r.Upper:
		return VerdictOverInvoiced
	default:
		return VerdictWithinRange
	}
}
