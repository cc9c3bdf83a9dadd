package model

import (
	"nested-models/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds model defaults.
type Config struct {
	// IDAttribute is the identity attribute used when a Type names none.
	IDAttribute string `mapstructure:"id_attribute" default:"id"`
}

// Validator checks the prospective attributes of a Set call.
type Validator interface {
	Validate(attrs map[string]any) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(attrs map[string]any) error

// Validate calls f.
func (f ValidatorFunc) Validate(attrs map[string]any) error {
	return f(attrs)
}

// MetricsRecorder receives model activity. core/metrics.Recorder implements it.
type MetricsRecorder interface {
	ObserveTransaction(modelType string, changed int)
	ObserveNotification(event string)
	ObserveReconcile(action string, count int)
	ObserveValidationFailure(modelType string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveTransaction(string, int)  {}
func (noopMetrics) ObserveNotification(string)      {}
func (noopMetrics) ObserveReconcile(string, int)    {}
func (noopMetrics) ObserveValidationFailure(string) {}

// EqualFunc decides whether two attribute values are equal.
type EqualFunc func(a, b any) bool

// Runtime carries the collaborators shared by every model and collection it
// creates.
type Runtime struct {
	logger      *zap.Logger
	metrics     MetricsRecorder
	equal       EqualFunc
	idAttribute string
	newCID      func() string
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(rt *Runtime) {
		if m != nil {
			rt.metrics = m
		}
	}
}

// WithEqual replaces the equality primitive used for change detection.
func WithEqual(fn EqualFunc) Option {
	return func(rt *Runtime) {
		if fn != nil {
			rt.equal = fn
		}
	}
}

// WithConfig applies cfg.
func WithConfig(cfg Config) Option {
	return func(rt *Runtime) {
		if cfg.IDAttribute != "" {
			rt.idAttribute = cfg.IDAttribute
		}
	}
}

// NewRuntime builds a runtime. Without options it logs nothing, records no
// metrics and uses "id" as identity attribute.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		logger:      zap.NewNop(),
		metrics:     noopMetrics{},
		equal:       Equal,
		idAttribute: "id",
		newCID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

var defaultRuntime = NewRuntime()

// DefaultRuntime returns the runtime used by New and NewCollection.
func DefaultRuntime() *Runtime {
	return defaultRuntime
}

// IDAttribute returns the runtime-wide default identity attribute.
func (rt *Runtime) IDAttribute() string {
	return rt.idAttribute
}

func (rt *Runtime) entityLogger(kind, cid string) *zap.Logger {
	return logger.WithEntity(rt.logger, kind, cid)
}
