package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gyeh/drgscore/internal/normalize"
)

// Artifact kinds.
const (
	KindGroupClassifier = "group_classifier"
	KindDenialPredictor = "denial_predictor"
)

var (
	// ErrMalformed is returned when an artifact is missing, unreadable or inconsistent.
	ErrMalformed = errors.New("malformed model artifact")
	// ErrSchemaMismatch is returned when an artifact's feature columns do not match
	// the features the normalizer produces.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)

// File is the on-disk JSON layout of a model artifact produced by the training pipeline.
type File struct {
	Kind              string              `json:"kind"`
	Version           string              `json:"version"`
	TrainedAt         time.Time           `json:"trained_at"`
	FeatureColumns    []string            `json:"feature_columns"`
	FeatureSchemaHash string              `json:"feature_schema_hash,omitempty"`
	Encoders          map[string][]string `json:"encoders,omitempty"`
	// Classes in training order; argmax ties resolve to the earliest class.
	Classes []string `json:"classes"`
	Model   Ensemble `json:"model"`
}

// Handle is a loaded, validated artifact. It is read-only after Load and safe to
// share between goroutines.
type Handle struct {
	path      string
	kind      string
	version   string
	trainedAt time.Time
	columns   []column
	encoders  map[string]encoder
	classes   []string
	model     Ensemble
}

// Load reads and validates the artifact at path. expectKind guards against wiring
// a denial model into the classifier slot and vice versa.
func Load(path, expectKind string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrMalformed, path, err)
	}
	defer f.Close()

	var af File
	if err := json.NewDecoder(f).Decode(&af); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformed, path, err)
	}
	if af.Kind != expectKind {
		return nil, fmt.Errorf("%w: %s has kind %q, want %q", ErrMalformed, path, af.Kind, expectKind)
	}

	h, err := newHandle(&af)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	h.path = path
	return h, nil
}

// Save writes an artifact as indented JSON, stamping the feature schema hash when unset.
func Save(path string, af *File) error {
	if af.FeatureSchemaHash == "" {
		af.FeatureSchemaHash = normalize.FeatureSchemaHash(af.FeatureColumns)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	data, err := json.MarshalIndent(af, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

func newHandle(af *File) (*Handle, error) {
	if len(af.Classes) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrMalformed)
	}
	seen := make(map[string]bool, len(af.Classes))
	for _, c := range af.Classes {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrMalformed, c)
		}
		seen[c] = true
	}
	if want := normalize.FeatureSchemaHash(af.FeatureColumns); af.FeatureSchemaHash != "" && af.FeatureSchemaHash != want {
		return nil, fmt.Errorf("%w: schema hash %s does not match columns (%s)", ErrSchemaMismatch, af.FeatureSchemaHash, want)
	}

	encoders := make(map[string]encoder, len(af.Encoders))
	for name, values := range af.Encoders {
		encoders[name] = newEncoder(values)
	}

	columns, err := resolveColumns(af.FeatureColumns, encoders)
	if err != nil {
		return nil, err
	}
	if err := af.Model.validate(len(columns), len(af.Classes)); err != nil {
		return nil, err
	}

	return &Handle{
		kind:      af.Kind,
		version:   af.Version,
		trainedAt: af.TrainedAt,
		columns:   columns,
		encoders:  encoders,
		classes:   append([]string(nil), af.Classes...),
		model:     af.Model,
	}, nil
}

// Path returns the file the handle was loaded from.
func (h *Handle) Path() string { return h.path }

// Version returns the artifact version string.
func (h *Handle) Version() string { return h.version }

// TrainedAt returns the training timestamp recorded in the artifact.
func (h *Handle) TrainedAt() time.Time { return h.trainedAt }

// Classes returns the class labels in training order.
func (h *Handle) Classes() []string {
	return append([]string(nil), h.classes...)
}
