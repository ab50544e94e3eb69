// Package subsume implements clause subsumption, simplify-reflect, and
// condensation, per spec.md §4.8.
package subsume

import (
	"github.com/augurlab/saturn/internal/clause"
	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/subst"
	"github.com/augurlab/saturn/internal/term"
)

// tryMatchLiteral reports whether b is an instance of a (a·σ = b) under some
// extension σ of s binding only a's variables — the per-literal "more
// general" pre-order used by multiset matching (spec.md §4.8 step 2):
// signs must agree, and matching accounts for equation symmetry (a literal
// l≃r can match either orientation of an equation in the target).
func tryMatchLiteral(bank *term.Bank, a, b *literal.Literal, s *subst.Subst) bool {
	if a.Sign != b.Sign {
		return false
	}
	mark := s.Mark()
	if subst.Match(bank, a.LHS, b.LHS, s) && subst.Match(bank, a.RHS, b.RHS, s) {
		return true
	}
	s.BacktrackTo(mark)
	if subst.Match(bank, a.LHS, b.RHS, s) && subst.Match(bank, a.RHS, b.LHS, s) {
		return true
	}
	s.BacktrackTo(mark)
	return false
}

// Subsumes reports whether c subsumes d: there is a substitution σ such
// that every literal of c·σ appears, with multiplicity, in d (spec.md
// §4.8). Implemented as multiset matching by backtracking, after the quick
// literal-count / pos-neg-count / weight rejection.
func Subsumes(bank *term.Bank, c, d *clause.Clause) bool {
	if len(c.Literals) > len(d.Literals) {
		return false
	}
	cp, cn := c.PosNegCounts()
	dp, dn := d.PosNegCounts()
	if cp > dp || cn > dn {
		return false
	}
	if c.Weight > d.Weight {
		return false
	}
	s := subst.New()
	used := make([]bool, len(d.Literals))
	return subsumeRec(bank, c.Literals, d.Literals, used, s)
}

func subsumeRec(bank *term.Bank, cLits, dLits []*literal.Literal, used []bool, s *subst.Subst) bool {
	if len(cLits) == 0 {
		return true
	}
	head, rest := cLits[0], cLits[1:]
	for i, dl := range dLits {
		if used[i] {
			continue
		}
		mark := s.Mark()
		if tryMatchLiteral(bank, head, dl, s) {
			used[i] = true
			if subsumeRec(bank, rest, dLits, used, s) {
				return true
			}
			used[i] = false
		}
		s.BacktrackTo(mark)
	}
	return false
}

// UnitSubsumes is the specialised fast path for a unit clause c (spec.md
// §4.8, "Unit subsumption is a specialised fast path"): c subsumes d iff
// some literal of d is a (symmetry-aware) instance of c's single literal.
func UnitSubsumes(bank *term.Bank, c *clause.Clause, d *clause.Clause) bool {
	if len(c.Literals) != 1 {
		return Subsumes(bank, c, d)
	}
	unit := c.Literals[0]
	s := subst.New()
	for _, dl := range d.Literals {
		mark := s.Mark()
		if tryMatchLiteral(bank, unit, dl, s) {
			return true
		}
		s.BacktrackTo(mark)
	}
	return false
}

// SimplifyReflect eliminates literals of candidate that are made
// unsatisfiable (for ≄) or trivially true (for ≃, handled by tautology
// elimination elsewhere) by a unit equation l≃r drawn from units, at the
// top level: a literal s≄t is removed if s=l·σ, t=r·σ for some σ (spec.md
// §4.8). Returns the simplified literal list and whether anything changed.
func SimplifyReflect(bank *term.Bank, units []*literal.Literal, candidate []*literal.Literal) ([]*literal.Literal, bool) {
	out := make([]*literal.Literal, 0, len(candidate))
	changed := false
	for _, lit := range candidate {
		if lit.Sign {
			out = append(out, lit)
			continue
		}
		if reflects(bank, units, lit) {
			changed = true
			continue
		}
		out = append(out, lit)
	}
	return out, changed
}

func reflects(bank *term.Bank, units []*literal.Literal, lit *literal.Literal) bool {
	for _, u := range units {
		if !u.Sign {
			continue
		}
		if unitReflectsPair(bank, u, lit.LHS, lit.RHS) {
			return true
		}
	}
	return false
}

func unitReflectsPair(bank *term.Bank, unit *literal.Literal, s, t *term.Term) bool {
	sub := subst.New()
	mark := sub.Mark()
	if subst.Match(bank, unit.LHS, s, sub) && subst.Match(bank, unit.RHS, t, sub) {
		return true
	}
	sub.BacktrackTo(mark)
	if subst.Match(bank, unit.LHS, t, sub) && subst.Match(bank, unit.RHS, s, sub) {
		return true
	}
	return false
}

// StrongSimplifyReflect is the deep variant (spec.md §4.8, "Strong unit
// forward subsumption"): a pair (s,t) is reducible if directly matched by
// a unit as above, or recursively if s and t share a top symbol and every
// differing argument pair is itself reducible.
func StrongSimplifyReflect(bank *term.Bank, units []*literal.Literal, candidate []*literal.Literal) ([]*literal.Literal, bool) {
	out := make([]*literal.Literal, 0, len(candidate))
	changed := false
	for _, lit := range candidate {
		if lit.Sign {
			out = append(out, lit)
			continue
		}
		if deepReducible(bank, units, lit.LHS, lit.RHS) {
			changed = true
			continue
		}
		out = append(out, lit)
	}
	return out, changed
}

func deepReducible(bank *term.Bank, units []*literal.Literal, s, t *term.Term) bool {
	if reflectsPair(bank, units, s, t) {
		return true
	}
	if s.IsVariable() || t.IsVariable() {
		return false
	}
	if s.F != t.F || len(s.Args) != len(t.Args) {
		return false
	}
	for i := range s.Args {
		if s.Args[i] == t.Args[i] {
			continue
		}
		if !deepReducible(bank, units, s.Args[i], t.Args[i]) {
			return false
		}
	}
	return true
}

func reflectsPair(bank *term.Bank, units []*literal.Literal, s, t *term.Term) bool {
	for _, u := range units {
		if !u.Sign {
			continue
		}
		if unitReflectsPair(bank, u, s, t) {
			return true
		}
	}
	return false
}

// Condense eliminates a literal L from c when there is a single
// substitution σ under which every literal of c·σ is found among c's
// remaining literals — i.e. c·σ ⊆ c\{L} as a set, the classical
// condensation criterion (spec.md §4.8's Open Question, resolved in
// SPEC_FULL.md). Unlike Subsumes, this check never reserves a distinct
// target slot per source literal: several literals of c·σ are allowed to
// collapse onto the same surviving literal, which is exactly what makes
// P(x)∨P(a) condense to P(a) (x↦a sends both literals to P(a)). Returns
// the condensed literal list and whether anything changed; callers loop
// until no change since one condensation step can expose another.
func Condense(bank *term.Bank, lits []*literal.Literal) ([]*literal.Literal, bool) {
	for j := range lits {
		remainder := make([]*literal.Literal, 0, len(lits)-1)
		remainder = append(remainder, lits[:j]...)
		remainder = append(remainder, lits[j+1:]...)
		s := subst.New()
		if condensesInto(bank, lits, remainder, s) {
			return remainder, true
		}
	}
	return lits, false
}

// condensesInto reports whether every literal of cLits matches, under one
// shared (and progressively extended) substitution s, some literal of
// dLits — set containment, not the injective multiset matching Subsumes
// uses, so a single dLits literal may receive more than one cLits literal.
func condensesInto(bank *term.Bank, cLits, dLits []*literal.Literal, s *subst.Subst) bool {
	if len(cLits) == 0 {
		return true
	}
	head, rest := cLits[0], cLits[1:]
	for _, dl := range dLits {
		mark := s.Mark()
		if tryMatchLiteral(bank, head, dl, s) && condensesInto(bank, rest, dLits, s) {
			return true
		}
		s.BacktrackTo(mark)
	}
	return false
}
