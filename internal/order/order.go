// Package order implements the term ordering of spec.md §4.3: a partial
// (KBO or LPO) order on terms, parameterised by an immutable Ordering
// Control Block (OCB).
package order

import (
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// Relation is the result of comparing two terms.
type Relation int

const (
	Incomparable Relation = iota
	Equal
	Greater
	Less
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "="
	case Greater:
		return ">"
	case Less:
		return "<"
	default:
		return "?"
	}
}

// Kind selects the ordering family an OCB implements.
type Kind int

const (
	KBO Kind = iota
	LPO
)

// DepthCapHook is called whenever a comparison aborts due to hitting
// MaxDepth, so callers can track stats.Stats.OrderingDepthCapHit without
// this package importing stats (avoiding an import cycle back from
// stats-consuming packages).
type DepthCapHook func()

// OCB (Ordering Control Block) holds the precedence and weight tables used
// by every comparison (spec.md §3); comparisons never modify it.
type OCB struct {
	Kind        Kind
	Precedence  map[symbol.Code]int
	Weight      map[symbol.Code]int
	VarWeight   int
	MaxDepth    int
	OnDepthCap  DepthCapHook
}

// NewOCB returns an OCB with an empty precedence/weight table; Weight
// defaults to 1 per symbol occurrence and VarWeight to 1, matching the
// term bank's default weighting (term.Bank.SetWeightFunc should be wired to
// the same table, see SPEC_FULL.md §4.0).
func NewOCB(kind Kind) *OCB {
	return &OCB{
		Kind:       kind,
		Precedence: make(map[symbol.Code]int),
		Weight:     make(map[symbol.Code]int),
		VarWeight:  1,
		MaxDepth:   4096,
	}
}

// WeightFunc returns a function suitable for term.Bank.SetWeightFunc,
// consistent with this OCB's weight table (spec.md invariant 1).
func (o *OCB) WeightFunc() func(symbol.Code) int {
	return func(c symbol.Code) int {
		if w, ok := o.Weight[c]; ok {
			return w
		}
		return 1
	}
}

func (o *OCB) weight(c symbol.Code) int {
	if c.IsVariable() {
		return o.VarWeight
	}
	if w, ok := o.Weight[c]; ok {
		return w
	}
	return 1
}

func (o *OCB) precedence(c symbol.Code) int {
	if p, ok := o.Precedence[c]; ok {
		return p
	}
	return int(c)
}

func (o *OCB) capHit() {
	if o.OnDepthCap != nil {
		o.OnDepthCap()
	}
}

// Compare returns the relation between s and t under this OCB. The result
// is stable under substitution and monotonic under context, as required by
// spec.md §4.3; recursion is capped at MaxDepth, returning Incomparable on
// cap hit (soundness-preserving per spec.md §4.3).
func (o *OCB) Compare(s, t *term.Term) Relation {
	if s == t {
		return Equal
	}
	switch o.Kind {
	case LPO:
		return o.lpo(s, t, o.MaxDepth)
	default:
		return o.kbo(s, t, o.MaxDepth)
	}
}

// --- KBO ---

func (o *OCB) kboWeight(t *term.Term) int {
	// t.Weight is cached using the same weight function when the term's
	// owning bank was configured via WeightFunc; recompute defensively so
	// Compare is correct even if the bank used a different weight table.
	if t.IsVariable() {
		return o.VarWeight
	}
	w := o.weight(t.F)
	for _, a := range t.Args {
		w += o.kboWeight(a)
	}
	return w
}

func (o *OCB) kbo(s, t *term.Term, depth int) Relation {
	if depth <= 0 {
		o.capHit()
		return Incomparable
	}
	if s == t {
		return Equal
	}

	sVars := term.VariableMultiset(s)
	tVars := term.VariableMultiset(t)
	if !dominates(sVars, tVars) && !dominates(tVars, sVars) {
		return Incomparable
	}

	ws, wt := o.kboWeight(s), o.kboWeight(t)

	switch {
	case ws > wt:
		if dominates(sVars, tVars) {
			return Greater
		}
		return Incomparable
	case ws < wt:
		if dominates(tVars, sVars) {
			return Less
		}
		return Incomparable
	default:
		return o.kboTieBreak(s, t, depth)
	}
}

// dominates reports whether, for every variable, a's occurrence count is >=
// b's (the "neither side may have a variable occurring more often" check,
// spec.md §4.3).
func dominates(a, b map[symbol.Code]int) bool {
	for v, bc := range b {
		if a[v] < bc {
			return false
		}
	}
	return true
}

func (o *OCB) kboTieBreak(s, t *term.Term, depth int) Relation {
	if s.IsVariable() || t.IsVariable() {
		// Equal weight with at least one side a variable, and variable
		// multisets dominate each other (checked above): only equal terms
		// reach here with both variable, otherwise incomparable.
		if s.IsVariable() && t.IsVariable() {
			if s.F == t.F {
				return Equal
			}
			return Incomparable
		}
		return Incomparable
	}
	ps, pt := o.precedence(s.F), o.precedence(t.F)
	switch {
	case ps > pt:
		return Greater
	case ps < pt:
		return Less
	}
	if len(s.Args) != len(t.Args) {
		return Incomparable
	}
	for i := range s.Args {
		switch o.kbo(s.Args[i], t.Args[i], depth-1) {
		case Equal:
			continue
		case Greater:
			return Greater
		case Less:
			return Less
		default:
			return Incomparable
		}
	}
	return Equal
}

// --- LPO ---

func (o *OCB) lpo(s, t *term.Term, depth int) Relation {
	if depth <= 0 {
		o.capHit()
		return Incomparable
	}
	if s == t {
		return Equal
	}
	if t.IsVariable() {
		if s.IsVariable() {
			return Incomparable
		}
		if containsVar(s, t.F) {
			return Greater
		}
		return Incomparable
	}
	if s.IsVariable() {
		if containsVar(t, s.F) {
			return Less
		}
		return Incomparable
	}

	// s > t if some argument of s is >= t.
	for _, si := range s.Args {
		switch o.lpo(si, t, depth-1) {
		case Equal, Greater:
			return Greater
		}
	}
	// symmetric check for t > s
	for _, ti := range t.Args {
		switch o.lpo(ti, s, depth-1) {
		case Equal, Greater:
			return Less
		}
	}

	ps, pt := o.precedence(s.F), o.precedence(t.F)
	if ps > pt {
		if o.lpoAllGreater(s, t.Args, depth-1) {
			return Greater
		}
		return Incomparable
	}
	if ps < pt {
		if o.lpoAllGreater(t, s.Args, depth-1) {
			return Less
		}
		return Incomparable
	}
	// equal heads: lexicographic comparison, s must dominate every
	// subsequent argument of t (and vice versa for the reverse direction).
	if len(s.Args) != len(t.Args) {
		return Incomparable
	}
	for i := range s.Args {
		switch o.lpo(s.Args[i], t.Args[i], depth-1) {
		case Equal:
			continue
		case Greater:
			if o.lpoAllGreater(s, t.Args[i+1:], depth-1) {
				return Greater
			}
			return Incomparable
		case Less:
			if o.lpoAllGreater(t, s.Args[i+1:], depth-1) {
				return Less
			}
			return Incomparable
		default:
			return Incomparable
		}
	}
	return Equal
}

func (o *OCB) lpoAllGreater(s *term.Term, ts []*term.Term, depth int) bool {
	for _, ti := range ts {
		if o.lpo(s, ti, depth) != Greater {
			return false
		}
	}
	return true
}

func containsVar(t *term.Term, v symbol.Code) bool {
	if t.IsVariable() {
		return t.F == v
	}
	for _, a := range t.Args {
		if containsVar(a, v) {
			return true
		}
	}
	return false
}
