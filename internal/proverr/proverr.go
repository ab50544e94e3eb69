// Package proverr defines the structured error kinds the core can raise, as
// described in spec.md §7. Every error the core returns to its driver is
// classified as exactly one of these kinds so the driver can decide whether
// to print a diagnostic and exit, or dump saturation state and continue.
package proverr

import (
	goerrors "gopkg.in/src-d/go-errors.v1"
)

var (
	// OutOfMemory is fatal: the driver tears down its memory reserve and
	// emits a resource-out report.
	OutOfMemory = goerrors.NewKind("out of memory: %s")

	// InputSemantic covers invalid sorts, arity mismatches, and other
	// malformed input that arrives at the core's constructors.
	InputSemantic = goerrors.NewKind("invalid input: %s")

	// ResourceLimit is raised when a configured cpu/memory/clause-count
	// limit is hit; termination is graceful and saturation state may be
	// dumped by the driver.
	ResourceLimit = goerrors.NewKind("resource limit exceeded: %s")

	// Assertion indicates an internal invariant violation (index
	// corruption, a property-invariant broken). It is a bug report, not a
	// normal outcome.
	Assertion = goerrors.NewKind("internal assertion failed: %s")

	// Incompleteness signals that a configured option has made the
	// calculus incomplete, so "unprocessed exhausted" must be reported as
	// "gave up" rather than "saturated".
	Incompleteness = goerrors.NewKind("calculus incomplete under current configuration: %s")
)

// Is reports whether err was produced by kind, looking through any
// github.com/pkg/errors wrapping.
func Is(kind *goerrors.Kind, err error) bool {
	return kind.Is(err)
}
