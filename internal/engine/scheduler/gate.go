package scheduler

import "go.trai.ch/mbs/internal/core/domain"

// ConcurrencyPolicy decides whether one more component may enter the building state.
type ConcurrencyPolicy interface {
	// AtThreshold reports whether building components already use up the allowance.
	AtThreshold(building int) bool
}

// Bounded permits at most max components building at once. A max of zero or
// less means no limit.
func Bounded(maxBuilds int) ConcurrencyPolicy {
	if maxBuilds <= 0 {
		return Unbounded()
	}
	return bounded(maxBuilds)
}

type bounded int

func (b bounded) AtThreshold(building int) bool {
	return int(b) <= building
}

// Unbounded never reports the threshold as reached.
func Unbounded() ConcurrencyPolicy {
	return unbounded{}
}

type unbounded struct{}

func (unbounded) AtThreshold(int) bool { return false }

// PolicyFor selects the policy for a configuration.
//
// Under the mock system every build completes inside the submitting worker, so
// concurrency is bounded by the worker pool size instead of the gate.
func PolicyFor(cfg *domain.Config) ConcurrencyPolicy {
	if cfg.System == domain.SystemMock {
		return Unbounded()
	}
	return Bounded(cfg.NumConcurrentBuilds)
}
