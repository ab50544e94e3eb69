// Package result defines the saturation run's terminal outcome and its
// mapping to process exit codes, per spec.md §6's exit-code table.
package result

import "github.com/augurlab/saturn/internal/clause"

// Outcome classifies how a saturation run ended.
type Outcome int

const (
	// ProofFound: the empty clause was derived.
	ProofFound Outcome = iota
	// ResourceOut: a configured cpu/memory/clause-count limit was hit.
	ResourceOut
	// Incomplete: unprocessed exhausted, but under a configuration known to
	// restrict completeness (spec.md §7, "Incompleteness-signal").
	Incomplete
	// Saturated: unprocessed exhausted under a complete configuration —
	// the input is counter-satisfiable.
	Saturated
	// UsageError: malformed input reached the core (spec.md §7,
	// "Input-semantic").
	UsageError
)

// ExitCode maps o to the process exit code spec.md §6 specifies.
func (o Outcome) ExitCode() int {
	switch o {
	case ProofFound:
		return 0
	case ResourceOut:
		return 1
	case Incomplete:
		return 2
	case Saturated:
		return 3
	default:
		return 4
	}
}

func (o Outcome) String() string {
	switch o {
	case ProofFound:
		return "proof found"
	case ResourceOut:
		return "resource out"
	case Incomplete:
		return "gave up (incomplete)"
	case Saturated:
		return "saturated (counter-satisfiable)"
	default:
		return "usage error"
	}
}

// Result is the full terminal state of a saturation run.
type Result struct {
	Outcome Outcome
	// Refutation is the empty clause when Outcome == ProofFound; its
	// Derivation, followed transitively through Parents, is the proof DAG
	// (spec.md §6, "Proof output").
	Refutation *clause.Clause
	// ProcessedCount and GeneratedCount report the final saturation
	// statistics, independent of the stats.Stats counters (which track
	// finer-grained operation counts).
	ProcessedCount int
	GeneratedCount int
}
