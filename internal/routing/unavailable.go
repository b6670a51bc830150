package routing

import "context"

// UnavailableOptimizer is an Optimizer that always fails with a fixed reason.
// It keeps the planner's fallback path serving routes when no directions
// provider is configured.
type UnavailableOptimizer struct {
	reason string
}

// NewUnavailableOptimizer creates an optimizer that fails with the given reason.
func NewUnavailableOptimizer(reason string) *UnavailableOptimizer {
	return &UnavailableOptimizer{reason: reason}
}

// Name returns the provider name.
func (o *UnavailableOptimizer) Name() string {
	return "unavailable"
}

// Optimize always fails.
func (o *UnavailableOptimizer) Optimize(_ context.Context, _ OptimizationRequest) (*OptimizationResult, error) {
	return nil, &Error{
		Provider: o.Name(),
		Code:     "NOT_CONFIGURED",
		Message:  o.reason,
		Err:      ErrProviderUnavailable,
	}
}

var _ Optimizer = (*UnavailableOptimizer)(nil)
