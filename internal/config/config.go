// Package config collects the core-configuration structs the driver hands
// to the saturation loop, per spec.md §6's CLI-flag table. Flags arrive
// from the driver as an untyped map (its own flag-parsing layer is out of
// scope); spf13/cast coerces each value to the expected type so the core
// never panics on a string-typed "42" where an int is wanted.
package config

import (
	"github.com/spf13/cast"

	"github.com/augurlab/saturn/internal/order"
)

// OrderWeightGeneration selects how per-symbol KBO/LPO weights are derived.
type OrderWeightGeneration int

const (
	WeightUniform OrderWeightGeneration = iota
	WeightArity
	WeightInvArity
)

// OrderPrecedenceGeneration selects how per-symbol precedence is derived.
type OrderPrecedenceGeneration int

const (
	PrecedenceByArity OrderPrecedenceGeneration = iota
	PrecedenceByArity2
	PrecedenceByFrequency
	PrecedenceByOccurrence
)

// FingerprintVariant selects the fingerprint index's position-set shape
// used for a given retrieval role (spec.md §6's fp-index/pm-from-index/
// pm-into-index/rw-bw-index flags).
type FingerprintVariant int

const (
	FP7 FingerprintVariant = iota
	FP16
	FP32
	FPNoIndex
)

// SubsumptionIndexing selects the FVI variant (spec.md §6).
type SubsumptionIndexing int

const (
	SubsumptionNone SubsumptionIndexing = iota
	SubsumptionDirect
	SubsumptionPerm
	SubsumptionPermOpt
)

// SplitMethod selects how clause splitting divides a clause into ground and
// variable-disjoint components, when splitting is enabled.
type SplitMethod int

const (
	SplitNone SplitMethod = iota
	SplitGroundVariable
	SplitVariableOnly
)

// Config is the fully-resolved configuration a saturation run is driven by.
type Config struct {
	TermOrdering             order.Kind
	OrderWeightGeneration    OrderWeightGeneration
	OrderPrecedenceGeneration OrderPrecedenceGeneration
	LiteralSelectionStrategy string
	ExpertHeuristic          string

	SplitClauses bool
	SplitMethod  SplitMethod

	DestructiveER      bool
	ForwardContextSR   bool
	BackwardContextSR  bool

	SubsumptionIndexing SubsumptionIndexing
	FPIndex             FingerprintVariant
	PMFromIndex         FingerprintVariant
	PMIntoIndex         FingerprintVariant
	RWBackwardIndex     FingerprintVariant

	// EnableCondensation turns on the condensation simplification rule,
	// left unimplemented upstream; off by default to match the historical
	// "declared but returns false" behaviour without losing completeness
	// when a caller opts in.
	EnableCondensation bool

	ProcessedClausesLimit int64
	TotalClauseSetLimit   int64

	CPULimitSeconds     int64
	SoftCPULimitSeconds int64
	MemoryLimitBytes    int64
}

// Default returns a Config matching a conservative, complete configuration:
// KBO ordering, no selection, weight-based heuristic, forward and backward
// contextual simplify-reflect on (destructive ER and condensation off), FP7
// fingerprints, direct subsumption indexing, no resource limits.
func Default() *Config {
	return &Config{
		TermOrdering:              order.KBO,
		OrderWeightGeneration:     WeightUniform,
		OrderPrecedenceGeneration: PrecedenceByArity,
		LiteralSelectionStrategy:  "NoSelection",
		ExpertHeuristic:           "ByWeight",
		SubsumptionIndexing:       SubsumptionDirect,
		FPIndex:                   FP7,
		PMFromIndex:               FP7,
		PMIntoIndex:               FP7,
		RWBackwardIndex:           FP7,
		ForwardContextSR:          true,
		BackwardContextSR:         true,
	}
}

// FromFlags builds a Config by overlaying raw (untyped, e.g. CLI-flag-parsed)
// values onto Default(), using spf13/cast to coerce each recognised key.
// Unrecognised keys are ignored: the driver's flag surface may carry
// options the core does not consume (spec.md §1, "out of scope").
func FromFlags(raw map[string]interface{}) *Config {
	c := Default()
	if v, ok := raw["term-ordering"]; ok {
		switch cast.ToString(v) {
		case "LPO", "LPO4":
			c.TermOrdering = order.LPO
		default:
			c.TermOrdering = order.KBO
		}
	}
	if v, ok := raw["literal-selection-strategy"]; ok {
		c.LiteralSelectionStrategy = cast.ToString(v)
	}
	if v, ok := raw["expert-heuristic"]; ok {
		c.ExpertHeuristic = cast.ToString(v)
	}
	if v, ok := raw["split-clauses"]; ok {
		c.SplitClauses = cast.ToBool(v)
	}
	if v, ok := raw["destructive-er"]; ok {
		c.DestructiveER = cast.ToBool(v)
	}
	if v, ok := raw["forward-context-sr"]; ok {
		c.ForwardContextSR = cast.ToBool(v)
	}
	if v, ok := raw["backward-context-sr"]; ok {
		c.BackwardContextSR = cast.ToBool(v)
	}
	if v, ok := raw["enable-condensation"]; ok {
		c.EnableCondensation = cast.ToBool(v)
	}
	if v, ok := raw["processed-clauses-limit"]; ok {
		c.ProcessedClausesLimit = cast.ToInt64(v)
	}
	if v, ok := raw["total-clause-set-limit"]; ok {
		c.TotalClauseSetLimit = cast.ToInt64(v)
	}
	if v, ok := raw["cpu-limit"]; ok {
		c.CPULimitSeconds = cast.ToInt64(v)
	}
	if v, ok := raw["soft-cpu-limit"]; ok {
		c.SoftCPULimitSeconds = cast.ToInt64(v)
	}
	if v, ok := raw["memory-limit"]; ok {
		c.MemoryLimitBytes = cast.ToInt64(v)
	}
	return c
}
