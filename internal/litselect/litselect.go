// Package litselect implements the literal-selection strategies described
// in spec.md §4.9 ("Literal selection") and SPEC_FULL.md's supplemented
// strategy table. Selection marks a subset of a clause's negative literals
// (the P-prefixed variants may also mark one positive literal) as eligible
// for use in superposition/resolution inferences, approximating
// set-of-support.
//
// This is a deliberate subset of the ~20-strategy table in
// original_source/HEURISTICS/che_litselection.c: the strategies with the
// clearest calculus-level meaning, per SPEC_FULL.md's Open Question
// resolution.
package litselect

import (
	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/order"
)

// Strategy selects eligible literals of a clause, setting
// literal.PropSelected on the chosen subset (returned as a fresh slice;
// callers install it back onto the clause).
type Strategy func(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal

// NoSelection marks no literal selected: all maximal literals remain
// eligible for inference (ordinary superposition eligibility rules apply).
func NoSelection(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal {
	return cloneProps(lits, nil)
}

// SelectNegativeLiterals selects every maximal negative literal.
func SelectNegativeLiterals(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal {
	return selectMaximalNegative(ocb, lits, false)
}

// PSelectNegativeLiterals is SelectNegativeLiterals, but if no negative
// literal exists, selects the single maximal positive literal instead (so
// clauses with no negative literals still get a selection).
func PSelectNegativeLiterals(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal {
	return selectMaximalNegative(ocb, lits, true)
}

// SelectPureVarNegativeLiterals selects maximal negative literals that are
// pure variable equations (x ≄ y), a cheap restriction that still
// simulates set-of-support for clauses built from equality axioms.
func SelectPureVarNegativeLiterals(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal {
	out := cloneProps(lits, nil)
	idx := maximalIndices(ocb, out, func(l *literal.Literal) bool {
		return !l.Sign && l.LHS.IsVariable() && l.RHS.IsVariable()
	})
	for _, i := range idx {
		out[i].Props |= literal.PropSelected
	}
	return out
}

// PSelectPureVarNegativeLiterals is the P-prefixed variant of
// SelectPureVarNegativeLiterals.
func PSelectPureVarNegativeLiterals(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal {
	out := SelectPureVarNegativeLiterals(ocb, lits)
	if !anySelected(out) {
		selectSinglePositive(ocb, out)
	}
	return out
}

// SelectComplex prefers a maximal negative equational literal; failing
// that, selects the single smallest negative literal.
func SelectComplex(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal {
	out := cloneProps(lits, nil)
	idx := maximalIndices(ocb, out, func(l *literal.Literal) bool {
		return !l.Sign && !l.Props.Has(literal.PropPureEquality)
	})
	if len(idx) > 0 {
		for _, i := range idx {
			out[i].Props |= literal.PropSelected
		}
		return out
	}
	smallest := -1
	for i, l := range out {
		if l.Sign {
			continue
		}
		if smallest == -1 || l.Weight() < out[smallest].Weight() {
			smallest = i
		}
	}
	if smallest >= 0 {
		out[smallest].Props |= literal.PropSelected
	}
	return out
}

// PSelectComplex is the P-prefixed variant of SelectComplex.
func PSelectComplex(ocb *order.OCB, lits []*literal.Literal) []*literal.Literal {
	out := SelectComplex(ocb, lits)
	if !anySelected(out) {
		selectSinglePositive(ocb, out)
	}
	return out
}

func selectMaximalNegative(ocb *order.OCB, lits []*literal.Literal, pVariant bool) []*literal.Literal {
	out := cloneProps(lits, nil)
	idx := maximalIndices(ocb, out, func(l *literal.Literal) bool { return !l.Sign })
	for _, i := range idx {
		out[i].Props |= literal.PropSelected
	}
	if pVariant && len(idx) == 0 {
		selectSinglePositive(ocb, out)
	}
	return out
}

func selectSinglePositive(ocb *order.OCB, lits []*literal.Literal) {
	best := -1
	for i, l := range lits {
		if !l.Sign {
			continue
		}
		if best == -1 || ocb.Compare(l.MaximalSide(ocb), lits[best].MaximalSide(ocb)) == order.Greater {
			best = i
		}
	}
	if best >= 0 {
		lits[best].Props |= literal.PropSelected
	}
}

func anySelected(lits []*literal.Literal) bool {
	for _, l := range lits {
		if l.Props.Has(literal.PropSelected) {
			return true
		}
	}
	return false
}

// maximalIndices returns the indices of literals satisfying pred that are
// maximal among each other under the clause's multiset ordering (no other
// qualifying literal is strictly greater).
func maximalIndices(ocb *order.OCB, lits []*literal.Literal, pred func(*literal.Literal) bool) []int {
	var candidates []int
	for i, l := range lits {
		if pred(l) {
			candidates = append(candidates, i)
		}
	}
	var out []int
	for _, i := range candidates {
		dominated := false
		for _, j := range candidates {
			if i == j {
				continue
			}
			if literalGreater(ocb, lits[j], lits[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, i)
		}
	}
	return out
}

// literalGreater compares two literals by their maximal side under ocb, a
// simplification of the full multiset-of-literals ordering adequate for
// selection purposes.
func literalGreater(ocb *order.OCB, a, b *literal.Literal) bool {
	return ocb.Compare(a.MaximalSide(ocb), b.MaximalSide(ocb)) == order.Greater
}

func cloneProps(lits []*literal.Literal, _ []int) []*literal.Literal {
	out := make([]*literal.Literal, len(lits))
	for i, l := range lits {
		cp := *l
		cp.Props &^= literal.PropSelected
		out[i] = &cp
	}
	return out
}

// ByName resolves a configured strategy name to its Strategy function.
func ByName(name string) Strategy {
	switch name {
	case "NoSelection":
		return NoSelection
	case "SelectNegativeLiterals":
		return SelectNegativeLiterals
	case "PSelectNegativeLiterals":
		return PSelectNegativeLiterals
	case "SelectPureVarNegativeLiterals":
		return SelectPureVarNegativeLiterals
	case "PSelectPureVarNegativeLiterals":
		return PSelectPureVarNegativeLiterals
	case "SelectComplex":
		return SelectComplex
	case "PSelectComplex":
		return PSelectComplex
	default:
		return NoSelection
	}
}
