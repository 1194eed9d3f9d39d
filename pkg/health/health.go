// Package health runs registered dependency checks and aggregates the
// results. The storefront uses it to report whether the backend API and the
// local storage layer are reachable.
package health

import (
	"context"
	"time"
)

// Checker is a function that checks the health of a dependency.
type Checker func(ctx context.Context) error

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// CheckResult is the result of a single check.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report aggregates the results of all registered checks.
type Report struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Registry holds named dependency checkers.
type Registry struct {
	checkTimeout time.Duration
	checkers     map[string]Checker
	order        []string
}

// NewRegistry creates an empty registry with a per-run check timeout.
func NewRegistry(checkTimeout time.Duration) *Registry {
	if checkTimeout <= 0 {
		checkTimeout = 5 * time.Second
	}
	return &Registry{
		checkTimeout: checkTimeout,
		checkers:     make(map[string]Checker),
	}
}

// Register adds a named checker. Registering the same name twice replaces
// the earlier checker.
func (r *Registry) Register(name string, checker Checker) {
	if _, exists := r.checkers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.checkers[name] = checker
}

// Run executes every registered checker and returns the aggregated report.
// The report is down if any single check fails.
func (r *Registry) Run(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, r.checkTimeout)
	defer cancel()

	checks := make(map[string]CheckResult, len(r.checkers))
	overall := StatusUp

	for _, name := range r.order {
		if err := r.checkers[name](ctx); err != nil {
			checks[name] = CheckResult{Status: StatusDown, Error: err.Error()}
			overall = StatusDown
		} else {
			checks[name] = CheckResult{Status: StatusUp}
		}
	}

	return Report{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}
