package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"price-verification-service/internal/core/domain"
)

// MinMaxScaler mirrors a fitted scikit-learn MinMaxScaler.
type MinMaxScaler struct {
	Columns      []string   `json:"columns"`
	DataMin      []float64  `json:"data_min"`
	DataMax      []float64  `json:"data_max"`
	FeatureRange [2]float64 `json:"feature_range"`
}

// OrdinalEncoder mirrors a fitted scikit-learn OrdinalEncoder. Categories
// outside the fitted set map to UnknownValue, or fail when it is unset.
type OrdinalEncoder struct {
	Columns      []string   `json:"columns"`
	Categories   [][]string `json:"categories"`
	UnknownValue *float64   `json:"unknown_value,omitempty"`
}

// Preprocessor is a column transformer. Its output order is passthrough
// columns, then scaled columns, then encoded columns; remaining columns
// are dropped.
type Preprocessor struct {
	Passthrough []string        `json:"passthrough,omitempty"`
	MinMax      *MinMaxScaler   `json:"min_max,omitempty"`
	Ordinal     *OrdinalEncoder `json:"ordinal,omitempty"`
}

type pipelineDocument struct {
	Preprocessor Preprocessor    `json:"preprocessor"`
	Model        json.RawMessage `json:"model"`
}

type stepKind int

const (
	stepPassthrough stepKind = iota
	stepMinMax
	stepOrdinal
)

type columnStep struct {
	column string
	kind   stepKind

	// min-max
	dataMin float64
	scale   float64
	lo      float64

	// ordinal
	codes   map[string]float64
	unknown *float64
}

func (s columnStep) apply(v domain.FeatureValue) (float64, error) {
	switch s.kind {
	case stepMinMax:
		return (v.Number()-s.dataMin)*s.scale + s.lo, nil
	case stepOrdinal:
		if code, ok := s.codes[v.Text()]; ok {
			return code, nil
		}
		if s.unknown != nil {
			return *s.unknown, nil
		}
		return 0, fmt.Errorf("unknown category %q in column %s", v.Text(), s.column)
	default:
		return v.Number(), nil
	}
}

// PipelineModel applies its own preprocessing to a labeled record before
// evaluating the tree ensemble. Safe for concurrent use.
type PipelineModel struct {
	steps    []columnStep
	ensemble *TreeEnsemble
}

// NewPipelineModel compiles the preprocessor against the feature schema.
func NewPipelineModel(pre Preprocessor, trees []ObliviousTree, scale, bias float64) (*PipelineModel, error) {
	steps, err := compile(pre)
	if err != nil {
		return nil, err
	}
	ensemble, err := NewTreeEnsemble(trees, scale, bias, numericKinds(len(steps)))
	if err != nil {
		return nil, err
	}
	return &PipelineModel{steps: steps, ensemble: ensemble}, nil
}

// DecodePipelineModel reads a JSON pipeline artifact.
func DecodePipelineModel(r io.Reader) (*PipelineModel, error) {
	var doc pipelineDocument
	if err := decodeDocument(r, &doc); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	if len(doc.Model) == 0 {
		return nil, errors.New("pipeline has no model")
	}
	var model ensembleDocument
	if err := json.Unmarshal(doc.Model, &model); err != nil {
		return nil, fmt.Errorf("decode pipeline model: %w", err)
	}

	scale, bias := model.scaleBias()
	return NewPipelineModel(doc.Preprocessor, model.Trees, scale, bias)
}

func (m *PipelineModel) PredictRecord(record domain.FeatureRecord) (float64, error) {
	row := make([]domain.FeatureValue, len(m.steps))
	for i, s := range m.steps {
		v, ok := record.Value(s.column)
		if !ok {
			return 0, fmt.Errorf("record has no column %s", s.column)
		}
		x, err := s.apply(v)
		if err != nil {
			return 0, err
		}
		row[i] = domain.NumericValue(x)
	}
	return m.ensemble.Evaluate(row)
}

func compile(pre Preprocessor) ([]columnStep, error) {
	var steps []columnStep

	for _, col := range pre.Passthrough {
		if err := checkColumn(col, domain.FeatureNumeric); err != nil {
			return nil, fmt.Errorf("passthrough: %w", err)
		}
		steps = append(steps, columnStep{column: col, kind: stepPassthrough})
	}

	if mm := pre.MinMax; mm != nil {
		if len(mm.DataMin) != len(mm.Columns) || len(mm.DataMax) != len(mm.Columns) {
			return nil, fmt.Errorf("min_max: %d columns but %d data_min and %d data_max", len(mm.Columns), len(mm.DataMin), len(mm.DataMax))
		}
		lo, hi := mm.FeatureRange[0], mm.FeatureRange[1]
		if lo == 0 && hi == 0 {
			hi = 1
		}
		if hi <= lo {
			return nil, fmt.Errorf("min_max: invalid feature_range [%g, %g]", lo, hi)
		}
		for i, col := range mm.Columns {
			if err := checkColumn(col, domain.FeatureNumeric); err != nil {
				return nil, fmt.Errorf("min_max: %w", err)
			}
			span := mm.DataMax[i] - mm.DataMin[i]
			if span == 0 {
				span = 1
			}
			steps = append(steps, columnStep{
				column:  col,
				kind:    stepMinMax,
				dataMin: mm.DataMin[i],
				scale:   (hi - lo) / span,
				lo:      lo,
			})
		}
	}

	if oe := pre.Ordinal; oe != nil {
		if len(oe.Categories) != len(oe.Columns) {
			return nil, fmt.Errorf("ordinal: %d columns but %d category lists", len(oe.Columns), len(oe.Categories))
		}
		for i, col := range oe.Columns {
			if err := checkColumn(col, domain.FeatureCategorical); err != nil {
				return nil, fmt.Errorf("ordinal: %w", err)
			}
			codes := make(map[string]float64, len(oe.Categories[i]))
			for j, c := range oe.Categories[i] {
				codes[c] = float64(j)
			}
			steps = append(steps, columnStep{
				column:  col,
				kind:    stepOrdinal,
				codes:   codes,
				unknown: oe.UnknownValue,
			})
		}
	}

	if len(steps) == 0 {
		return nil, errors.New("preprocessor selects no columns")
	}
	return steps, nil
}

func checkColumn(name string, want domain.FeatureKind) error {
	i, ok := domain.ColumnIndex(name)
	if !ok {
		return fmt.Errorf("unknown column %q", name)
	}
	if got := domain.FeatureKinds()[i]; got != want {
		return fmt.Errorf("column %q is %s, want %s", name, got, want)
	}
	return nil
}

func numericKinds(n int) []domain.FeatureKind {
	return make([]domain.FeatureKind, n)
}
