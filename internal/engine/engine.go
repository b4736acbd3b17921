// Package engine coordinates the hybrid decision pipeline: normalized features in,
// group prediction, denial risk and case-mix assessment out.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/drgscore/internal/artifact"
	"github.com/gyeh/drgscore/internal/classify"
	"github.com/gyeh/drgscore/internal/config"
	"github.com/gyeh/drgscore/internal/metrics"
	"github.com/gyeh/drgscore/internal/risk"
)

// State is the load state of one learned sub-model.
type State int32

const (
	StateUnloaded State = iota
	StateLearned
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateLearned:
		return "learned"
	case StateFallback:
		return "fallback"
	default:
		return "unloaded"
	}
}

// slot holds one optional learned model. It loads at most once; a failed load
// leaves the slot in StateFallback for the life of the process.
type slot[T any] struct {
	name    string
	path    string
	load    func(path string) (T, error)
	once    sync.Once
	state   atomic.Int32
	learned T
	ok      bool
}

func (s *slot[T]) ensure(log zerolog.Logger) {
	s.once.Do(func() {
		if s.path == "" {
			log.Info().Str("model", s.name).Msg("no model artifact configured, using rule-based fallback")
			s.state.Store(int32(StateFallback))
			return
		}
		start := time.Now()
		v, err := s.load(s.path)
		if err != nil {
			log.Warn().Err(err).Str("model", s.name).Str("path", s.path).Msg("model load failed, using rule-based fallback")
			s.state.Store(int32(StateFallback))
			return
		}
		s.learned, s.ok = v, true
		s.state.Store(int32(StateLearned))
		log.Info().Str("model", s.name).Str("path", s.path).Dur("duration", time.Since(start)).Msg("model loaded")
	})
}

// preset installs an already-built model, skipping the artifact load.
func (s *slot[T]) preset(v T) {
	s.once.Do(func() {
		s.learned, s.ok = v, true
		s.state.Store(int32(StateLearned))
	})
}

func (s *slot[T]) get(log zerolog.Logger) (T, bool) {
	s.ensure(log)
	return s.learned, s.ok
}

// Engine is the decision orchestrator. Construct one per process and share it;
// all prediction methods are safe for concurrent use.
type Engine struct {
	cfg  config.Engine
	log  zerolog.Logger
	sink metrics.Sink

	classifier slot[classify.Classifier]
	scorer     slot[risk.Scorer]

	rulesClassifier classify.Classifier
	rulesScorer     risk.Scorer
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithSink sets the metrics sink. The default discards events.
func WithSink(s metrics.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithClassifier installs a learned classifier instead of loading one from disk.
func WithClassifier(c classify.Classifier) Option {
	return func(e *Engine) { e.classifier.preset(c) }
}

// WithScorer installs a learned risk scorer instead of loading one from disk.
func WithScorer(s risk.Scorer) Option {
	return func(e *Engine) { e.scorer.preset(s) }
}

// New builds an Engine. Unless cfg.LazyLoad is set, both model artifacts are loaded
// here; otherwise each loads on first use. Load failures never fail construction.
func New(cfg config.Engine, log zerolog.Logger, opts ...Option) *Engine {
	cfg.ApplyDefaults()
	e := &Engine{
		cfg:             cfg,
		log:             log,
		sink:            metrics.Nop{},
		rulesClassifier: classify.NewRules(cfg.Threshold()),
		rulesScorer:     risk.Rules{},
	}

	threshold := cfg.Threshold()
	e.classifier.name = "group_classifier"
	e.classifier.path = cfg.ClassifierModel
	e.classifier.load = func(path string) (classify.Classifier, error) {
		h, err := artifact.Load(path, artifact.KindGroupClassifier)
		if err != nil {
			return nil, err
		}
		c, err := classify.NewLearned(h, threshold)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	e.scorer.name = "denial_predictor"
	e.scorer.path = cfg.DenialModel
	e.scorer.load = func(path string) (risk.Scorer, error) {
		h, err := artifact.Load(path, artifact.KindDenialPredictor)
		if err != nil {
			return nil, err
		}
		s, err := risk.NewLearned(h)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	for _, o := range opts {
		o(e)
	}

	if !cfg.LazyLoad {
		e.classifier.ensure(log)
		e.scorer.ensure(log)
	}
	return e
}

// States reports the load state of the classifier and the denial scorer.
func (e *Engine) States() (classifier, scorer State) {
	return State(e.classifier.state.Load()), State(e.scorer.state.Load())
}

// Config returns the effective engine configuration.
func (e *Engine) Config() config.Engine {
	return e.cfg
}
