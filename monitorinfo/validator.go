package monitorinfo

import (
	"go.uber.org/zap"

	"github.com/reoring/opendata"
	"github.com/reoring/opendata/metrics"
)

const recordKind = "MonitorInfo"

// Validator validates incoming records and reports the outcome through a
// logger and metrics. The zero value is not usable; use NewValidator.
type Validator struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger. Rejections are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) { v.metrics = m }
}

// NewValidator returns a Validator that logs to a no-op logger unless configured.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{logger: zap.NewNop()}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate behaves like MatchVariant and records the outcome.
func (v *Validator) Validate(cd opendata.CompositeData) (Variant, error) {
	variant, err := MatchVariant(cd)
	if err != nil {
		v.metrics.IncrementValidation(recordKind, metrics.OutcomeRejected)
		iss, _ := opendata.AsIssues(err)
		for _, it := range iss {
			v.metrics.IncrementIssue(recordKind, it.Code)
		}
		v.logger.Debug("rejected composite data",
			zap.String("record", recordKind),
			zap.Int("issues", len(iss)),
			zap.Error(err))
		return variant, err
	}
	v.metrics.IncrementValidation(recordKind, variant.String())
	if variant == Legacy {
		v.logger.Debug("accepted legacy composite data", zap.String("record", recordKind))
	}
	return variant, nil
}

// Decode validates cd once and rebuilds the MonitorInfo it describes, along
// with the generation it matched.
func (v *Validator) Decode(cd opendata.CompositeData) (MonitorInfo, Variant, error) {
	variant, err := v.Validate(cd)
	if err != nil {
		return MonitorInfo{}, variant, err
	}
	mi, err := decode(cd)
	if err != nil {
		v.logger.Debug("undecodable composite data",
			zap.String("record", recordKind),
			zap.Stringer("variant", variant),
			zap.Error(err))
	}
	return mi, variant, err
}
