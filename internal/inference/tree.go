// Package inference evaluates exported tree-ensemble price models in process.
//
// Models are oblivious decision trees in the layout CatBoost uses for its
// JSON export: every level of a tree shares one split, so a tree of depth d
// has 2^d leaves and the leaf index is the bit pattern of the split results.
package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"price-verification-service/internal/core/domain"
)

const maxTreeDepth = 16

type SplitType string

const (
	FloatSplit  SplitType = "FloatFeature"
	OneHotSplit SplitType = "OneHotFeature"
)

// Split is one level of an oblivious tree. A float split is true when the
// feature is strictly greater than Border; a one-hot split is true when the
// categorical feature equals Value.
type Split struct {
	Type         SplitType `json:"split_type"`
	FeatureIndex int       `json:"feature_index"`
	Border       float64   `json:"border,omitempty"`
	Value        string    `json:"value,omitempty"`
}

type ObliviousTree struct {
	Splits     []Split   `json:"splits"`
	LeafValues []float64 `json:"leaf_values"`
}

// TreeEnsemble is an immutable, validated set of oblivious trees. It holds
// no mutable state and is safe for concurrent use.
type TreeEnsemble struct {
	trees []ObliviousTree
	scale float64
	bias  float64
	kinds []domain.FeatureKind
}

// NewTreeEnsemble validates the trees against the expected input layout.
func NewTreeEnsemble(trees []ObliviousTree, scale, bias float64, kinds []domain.FeatureKind) (*TreeEnsemble, error) {
	if len(trees) == 0 {
		return nil, errors.New("model has no trees")
	}
	for i, t := range trees {
		if len(t.Splits) > maxTreeDepth {
			return nil, fmt.Errorf("tree %d: depth %d exceeds %d", i, len(t.Splits), maxTreeDepth)
		}
		if want := 1 << len(t.Splits); len(t.LeafValues) != want {
			return nil, fmt.Errorf("tree %d: %d leaf values for depth %d, want %d", i, len(t.LeafValues), len(t.Splits), want)
		}
		for j, s := range t.Splits {
			if s.FeatureIndex < 0 || s.FeatureIndex >= len(kinds) {
				return nil, fmt.Errorf("tree %d split %d: feature index %d out of range [0,%d)", i, j, s.FeatureIndex, len(kinds))
			}
			want, err := s.Type.featureKind()
			if err != nil {
				return nil, fmt.Errorf("tree %d split %d: %w", i, j, err)
			}
			if got := kinds[s.FeatureIndex]; got != want {
				return nil, fmt.Errorf("tree %d split %d: %s split on %s feature %d", i, j, s.Type, got, s.FeatureIndex)
			}
		}
	}

	owned := make([]ObliviousTree, len(trees))
	for i, t := range trees {
		owned[i] = ObliviousTree{
			Splits:     append([]Split(nil), t.Splits...),
			LeafValues: append([]float64(nil), t.LeafValues...),
		}
	}
	k := make([]domain.FeatureKind, len(kinds))
	copy(k, kinds)
	return &TreeEnsemble{trees: owned, scale: scale, bias: bias, kinds: k}, nil
}

func (t SplitType) featureKind() (domain.FeatureKind, error) {
	switch t {
	case FloatSplit:
		return domain.FeatureNumeric, nil
	case OneHotSplit:
		return domain.FeatureCategorical, nil
	default:
		return 0, fmt.Errorf("unsupported split type %q", t)
	}
}

// Width is the number of input features the ensemble expects.
func (m *TreeEnsemble) Width() int { return len(m.kinds) }

// Evaluate returns scale * sum(leaf values) + bias for one input row.
func (m *TreeEnsemble) Evaluate(row []domain.FeatureValue) (float64, error) {
	if len(row) != len(m.kinds) {
		return 0, fmt.Errorf("input has %d features, model expects %d", len(row), len(m.kinds))
	}

	var sum float64
	for _, t := range m.trees {
		leaf := 0
		for depth, s := range t.Splits {
			v := row[s.FeatureIndex]
			if v.Kind() != m.kinds[s.FeatureIndex] {
				return 0, fmt.Errorf("feature %d is %s, model expects %s", s.FeatureIndex, v.Kind(), m.kinds[s.FeatureIndex])
			}
			var hit bool
			if s.Type == FloatSplit {
				hit = v.Number() > s.Border
			} else {
				hit = v.Text() == s.Value
			}
			if hit {
				leaf |= 1 << depth
			}
		}
		sum += t.LeafValues[leaf]
	}
	return m.scale*sum + m.bias, nil
}

type ensembleDocument struct {
	Trees        []ObliviousTree `json:"oblivious_trees"`
	ScaleAndBias *scaleAndBias   `json:"scale_and_bias"`
}

// scaleAndBias decodes CatBoost's [scale, [bias]] pair.
type scaleAndBias struct {
	scale float64
	bias  float64
}

func (s *scaleAndBias) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("scale_and_bias: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("scale_and_bias: want [scale, [bias]], got %d elements", len(parts))
	}
	if err := json.Unmarshal(parts[0], &s.scale); err != nil {
		return fmt.Errorf("scale_and_bias scale: %w", err)
	}
	var bias []float64
	if err := json.Unmarshal(parts[1], &bias); err != nil {
		return fmt.Errorf("scale_and_bias bias: %w", err)
	}
	if len(bias) != 1 {
		return fmt.Errorf("scale_and_bias: want one bias, got %d", len(bias))
	}
	s.bias = bias[0]
	return nil
}

func (d ensembleDocument) scaleBias() (float64, float64) {
	if d.ScaleAndBias == nil {
		return 1, 0
	}
	return d.ScaleAndBias.scale, d.ScaleAndBias.bias
}

func (d ensembleDocument) build(kinds []domain.FeatureKind) (*TreeEnsemble, error) {
	scale, bias := d.scaleBias()
	return NewTreeEnsemble(d.Trees, scale, bias, kinds)
}

// decodeDocument decodes exactly one JSON value from r. Anything after it,
// other than whitespace, is an error.
func decodeDocument(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return errors.New("unexpected data after JSON document")
		}
		return fmt.Errorf("after JSON document: %w", err)
	}
	return nil
}

// RawModel predicts from the flat feature vector with no preprocessing.
type RawModel struct {
	ensemble *TreeEnsemble
}

func NewRawModel(ensemble *TreeEnsemble) (*RawModel, error) {
	if ensemble.Width() != domain.FeatureCount {
		return nil, fmt.Errorf("raw model expects %d features, want %d", ensemble.Width(), domain.FeatureCount)
	}
	return &RawModel{ensemble: ensemble}, nil
}

// DecodeRawModel reads a JSON tree-ensemble export whose feature indices
// address the schema-ordered feature vector.
func DecodeRawModel(r io.Reader) (*RawModel, error) {
	var doc ensembleDocument
	if err := decodeDocument(r, &doc); err != nil {
		return nil, fmt.Errorf("decode raw model: %w", err)
	}
	ensemble, err := doc.build(domain.FeatureKinds())
	if err != nil {
		return nil, err
	}
	return NewRawModel(ensemble)
}

func (m *RawModel) PredictVector(row []domain.FeatureValue) (float64, error) {
	return m.ensemble.Evaluate(row)
}
