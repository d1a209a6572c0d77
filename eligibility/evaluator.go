package eligibility

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/poiesic/policymatch/core"
)

// DefaultThreshold is the confidence at which a record becomes eligible.
const DefaultThreshold = 0.7

// NoProfileConfidence is reported for every record when no profile is known.
const NoProfileConfidence = 0.5

// ReasonProfileUnavailable is the only reason given without a profile.
const ReasonProfileUnavailable = "profile unavailable"

// Evaluator scores profiles against records. It is immutable after
// construction and safe for concurrent use.
type Evaluator struct {
	checks        []Check
	threshold     float64
	incomeCeiling core.IncomeBucket
	logger        *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithChecks replaces the default checks. Weights must sum to 1.
func WithChecks(checks ...Check) Option {
	return func(e *Evaluator) error {
		var sum float64
		for _, c := range checks {
			if c.Evaluate == nil || c.Weight < 0 {
				return fmt.Errorf("%w: check %q", ErrInvalidWeights, c.Kind)
			}
			sum += c.Weight
		}
		if math.Abs(sum-1) > 1e-9 {
			return fmt.Errorf("%w: got %.3f", ErrInvalidWeights, sum)
		}
		e.checks = checks
		return nil
	}
}

// WithThreshold sets the eligibility threshold.
// Default is 0.7.
func WithThreshold(threshold float64) Option {
	return func(e *Evaluator) error {
		if threshold < 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		e.threshold = threshold
		return nil
	}
}

// WithIncomeCeiling sets the highest income bucket accepted by low-income
// programs. Default is core.IncomeMinimal. Ignored with WithChecks.
func WithIncomeCeiling(ceiling core.IncomeBucket) Option {
	return func(e *Evaluator) error {
		e.incomeCeiling = ceiling
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEvaluator creates an Evaluator with the default checks.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		threshold:     DefaultThreshold,
		incomeCeiling: core.IncomeMinimal,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.checks == nil {
		e.checks = DefaultChecks(e.incomeCeiling)
	}
	e.logger = e.logger.With("component", "eligibility")
	return e, nil
}

// Threshold returns the eligibility threshold.
func (e *Evaluator) Threshold() float64 {
	return e.threshold
}

// Evaluate runs every check for profile against record.
// A nil profile short-circuits to eligible with confidence 0.5.
func (e *Evaluator) Evaluate(profile *core.UserProfile, record *core.PolicyRecord) *core.EligibilityResult {
	if profile == nil {
		return &core.EligibilityResult{
			Eligible:      true,
			Confidence:    NoProfileConfidence,
			FailedReasons: []string{ReasonProfileUnavailable},
		}
	}
	if record == nil {
		record = &core.PolicyRecord{}
	}

	result := &core.EligibilityResult{
		FailedReasons: []string{},
		Checks:        make([]core.CheckResult, 0, len(e.checks)),
	}

	var passed float64
	for _, c := range e.checks {
		ok, reason := e.run(c, profile, record)
		if ok {
			passed += c.Weight
		} else {
			result.FailedReasons = append(result.FailedReasons, reason)
		}
		result.Checks = append(result.Checks, core.CheckResult{
			Kind:   string(c.Kind),
			Weight: c.Weight,
			Passed: ok,
			Reason: reason,
		})
	}

	// Rounded so that sums such as 0.4+0.3 compare equal to 0.7
	result.Confidence = math.Min(1, math.Round(passed*1e9)/1e9)
	result.Eligible = result.Confidence >= e.threshold
	return result
}

// run evaluates one check. A panicking check counts as passed.
func (e *Evaluator) run(c Check, profile *core.UserProfile, record *core.PolicyRecord) (ok bool, reason string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("eligibility check panicked", "kind", c.Kind, "record", record.Id, "panic", r)
			ok, reason = true, fmt.Sprintf("%s check unavailable", c.Kind)
		}
	}()
	return c.Evaluate(profile, record)
}
