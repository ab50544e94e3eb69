// Package heuristic implements clause-selection priority functions, per
// spec.md §4 ("Heuristic evaluation") and §6's expert-heuristic flag: each
// configured evaluation function assigns a clause a priority (lower is
// selected sooner), and a weighted round-robin across functions picks the
// given clause each iteration, approximating a configurable mix of
// weight-based and age-based selection.
package heuristic

import "github.com/augurlab/saturn/internal/clause"

// EvalFunc computes one priority value for c; lower values are preferred.
type EvalFunc func(c *clause.Clause) int

// ByWeight prefers syntactically smaller clauses (spec.md: "symbolic
// weight" selection).
func ByWeight(c *clause.Clause) int { return c.Weight }

// ByAge prefers older clauses (lower Date), approximating a breadth-first
// component in the mix (spec.md: clause "age").
func ByAge(c *clause.Clause) int { return int(c.Date) }

// ByWeightFavoringConjecture scales weight down for clauses derived from the
// conjecture (weight/2 + 1), a goal-directed bias: conjecture-side clauses
// are explored more eagerly since they are more likely to contribute to a
// refutation.
func ByWeightFavoringConjecture(c *clause.Clause) int {
	w := c.Weight
	if c.Props.Has(clause.PropFromConjecture) {
		w = w/2 + 1
	}
	return w
}

// clauseWeightLiteralCount penalises clauses with many literals slightly
// beyond their raw weight, a cheap proxy for "more literals, harder to use."
func clauseWeightLiteralCount(c *clause.Clause) int {
	return c.Weight + len(c.Literals)
}

// ByWeightAndLiteralCount is the clause weight plus its literal count, so a
// clause with more literals ranks behind an equally heavy one with fewer.
func ByWeightAndLiteralCount(c *clause.Clause) int { return clauseWeightLiteralCount(c) }

// Slot pairs an evaluation function with how many given-clause selections in
// a row it should win, implementing the round-robin mixing scheme of
// spec.md's "Heuristic evaluation" (e.g. "weight 10 times, then age once").
type Slot struct {
	Eval  EvalFunc
	Share int
}

// Scheme is a configured, ordered mix of evaluation functions.
type Scheme struct {
	slots []Slot
	total int
	turn  int
}

// NewScheme returns a Scheme cycling through slots in proportion to their
// Share.
func NewScheme(slots ...Slot) *Scheme {
	total := 0
	for _, s := range slots {
		total += s.Share
	}
	if total == 0 {
		total = 1
	}
	return &Scheme{slots: slots, total: total}
}

// Default is the conventional "mostly weight, some age" mix.
func Default() *Scheme {
	return NewScheme(
		Slot{Eval: ByWeight, Share: 5},
		Slot{Eval: ByAge, Share: 1},
	)
}

// Next returns the evaluation function that should be used to rank
// candidates for this iteration of the given-clause loop, then advances the
// scheme's internal cycle.
func (s *Scheme) Next() EvalFunc {
	n := s.turn % s.total
	s.turn++
	for _, slot := range s.slots {
		if n < slot.Share {
			return slot.Eval
		}
		n -= slot.Share
	}
	return s.slots[0].Eval
}

// Best returns the candidate in pool minimising eval, or nil if pool is
// empty.
func Best(pool []*clause.Clause, eval EvalFunc) *clause.Clause {
	if len(pool) == 0 {
		return nil
	}
	best := pool[0]
	bestScore := eval(best)
	for _, c := range pool[1:] {
		if score := eval(c); score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// ByName resolves a configured evaluation-function name (spec.md §6's
// expert-heuristic flag) to an EvalFunc.
func ByName(name string) EvalFunc {
	switch name {
	case "ByAge":
		return ByAge
	case "ByWeightFavoringConjecture":
		return ByWeightFavoringConjecture
	case "ByWeightAndLiteralCount":
		return ByWeightAndLiteralCount
	default:
		return ByWeight
	}
}
