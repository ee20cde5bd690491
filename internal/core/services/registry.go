package services

import (
	"reflect"
	"sort"

	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
)

// ModelEntry is the model resolved for a goods code. Exactly one of Labeled
// or Array is set, matching Path.
type ModelEntry struct {
	Path    domain.ModelPath
	Labeled ports.LabeledPredictor
	Array   ports.ArrayPredictor
}

// ModelRegistry maps goods codes to loaded models. It is built once at
// startup and never mutated, so it may be shared across goroutines.
type ModelRegistry struct {
	raw       map[string]ports.ArrayPredictor
	pipelines map[string]ports.LabeledPredictor
}

func NewModelRegistry(set ports.ArtifactSet) *ModelRegistry {
	r := &ModelRegistry{
		raw:       make(map[string]ports.ArrayPredictor, len(set.Raw)),
		pipelines: make(map[string]ports.LabeledPredictor, len(set.Pipelines)),
	}
	for code, m := range set.Raw {
		if !isNilModel(m) {
			r.raw[code] = m
		}
	}
	for code, m := range set.Pipelines {
		if !isNilModel(m) {
			r.pipelines[code] = m
		}
	}
	return r
}

// Lookup resolves the model for a code. A pipeline always takes priority
// over a raw model registered under the same code.
func (r *ModelRegistry) Lookup(code string) (ModelEntry, bool) {
	if p, ok := r.pipelines[code]; ok {
		return ModelEntry{Path: domain.ModelPathPipeline, Labeled: p}, true
	}
	if m, ok := r.raw[code]; ok {
		return ModelEntry{Path: domain.ModelPathRaw, Array: m}, true
	}
	return ModelEntry{Path: domain.ModelPathNone}, false
}

// Kinds lists the model variants registered for a code, pipeline first.
func (r *ModelRegistry) Kinds(code string) []domain.ModelPath {
	var kinds []domain.ModelPath
	if _, ok := r.pipelines[code]; ok {
		kinds = append(kinds, domain.ModelPathPipeline)
	}
	if _, ok := r.raw[code]; ok {
		kinds = append(kinds, domain.ModelPathRaw)
	}
	return kinds
}

// Codes returns every goods code with at least one model, sorted.
func (r *ModelRegistry) Codes() []string {
	seen := make(map[string]struct{}, len(r.raw)+len(r.pipelines))
	for c := range r.raw {
		seen[c] = struct{}{}
	}
	for c := range r.pipelines {
		seen[c] = struct{}{}
	}
	return sortedKeys(seen)
}

// SelectableCodes returns the codes offered to analysts: the pipeline codes
// when any pipeline is loaded, otherwise the raw model codes.
func (r *ModelRegistry) SelectableCodes() []string {
	keys := make(map[string]struct{})
	if len(r.pipelines) > 0 {
		for c := range r.pipelines {
			keys[c] = struct{}{}
		}
	} else {
		for c := range r.raw {
			keys[c] = struct{}{}
		}
	}
	return sortedKeys(keys)
}

func (r *ModelRegistry) Size() int { return len(r.Codes()) }

// isNilModel reports a nil interface or an interface holding a nil pointer.
func isNilModel(m interface{}) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
