package artifact

import (
	"fmt"
	"strings"

	"github.com/gyeh/drgscore/internal/model"
)

// UnknownCategory is the reserved label for values not seen at training time.
const UnknownCategory = "Unknown"

// encoder maps categorical labels to the integer codes assigned at training time.
type encoder struct {
	codes   map[string]int
	unknown int
}

func newEncoder(values []string) encoder {
	e := encoder{codes: make(map[string]int, len(values)), unknown: len(values)}
	for i, v := range values {
		if _, dup := e.codes[v]; !dup {
			e.codes[v] = i
		}
	}
	if code, ok := e.codes[UnknownCategory]; ok {
		e.unknown = code
	}
	return e
}

// encode never fails: empty and unseen values map to the Unknown code, or to one
// past the last known code when the table has no Unknown entry.
func (e encoder) encode(v string) int {
	if v == "" {
		return e.unknown
	}
	if code, ok := e.codes[v]; ok {
		return code
	}
	return e.unknown
}

// column describes how one feature column is filled from AdmissionFeatures.
type column struct {
	name        string
	categorical string // non-empty for label-encoded columns
}

func resolveColumns(names []string, encoders map[string]encoder) ([]column, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no feature columns", ErrMalformed)
	}
	var probe model.AdmissionFeatures
	cols := make([]column, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate feature column %q", ErrSchemaMismatch, name)
		}
		seen[name] = true

		if _, ok := probe.NumericFeature(name); ok {
			cols = append(cols, column{name: name})
			continue
		}
		base := strings.TrimSuffix(name, model.EncodedSuffix)
		if _, ok := probe.CategoricalFeature(base); ok {
			if _, ok := encoders[base]; !ok {
				return nil, fmt.Errorf("%w: column %q has no encoder table", ErrSchemaMismatch, name)
			}
			cols = append(cols, column{name: name, categorical: base})
			continue
		}
		return nil, fmt.Errorf("%w: unknown feature column %q", ErrSchemaMismatch, name)
	}
	return cols, nil
}

// Encode returns the training-time code for a categorical value.
func (h *Handle) Encode(name, value string) (int, bool) {
	e, ok := h.encoders[name]
	if !ok {
		return 0, false
	}
	return e.encode(value), true
}

// Columns returns the feature column order used at training time.
func (h *Handle) Columns() []string {
	names := make([]string, len(h.columns))
	for i, c := range h.columns {
		names[i] = c.name
	}
	return names
}

// Vector builds the feature vector for f in the artifact's column order.
func (h *Handle) Vector(f *model.AdmissionFeatures) []float64 {
	x := make([]float64, len(h.columns))
	for i, c := range h.columns {
		if c.categorical != "" {
			v, _ := f.CategoricalFeature(c.categorical)
			x[i] = float64(h.encoders[c.categorical].encode(v))
			continue
		}
		x[i], _ = f.NumericFeature(c.name)
	}
	return x
}
