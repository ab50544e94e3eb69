// Package infer implements the generating inference rules of spec.md §4.9:
// superposition (left and right), equality resolution, and equality
// factoring, the core of the superposition calculus. Each rule respects
// ordering eligibility (spec.md §4.9, "Inference eligibility") before firing.
package infer

import (
	"github.com/augurlab/saturn/internal/clause"
	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/order"
	"github.com/augurlab/saturn/internal/subst"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// RenameApart returns a copy of lits with every variable replaced by a fresh
// one, so that unifying against another clause's literals cannot accidentally
// capture a shared variable code (spec.md §4.9 requires premises be
// standardised apart before inference).
func RenameApart(bank *term.Bank, tab *symbol.Table, lits []*literal.Literal) []*literal.Literal {
	mapping := make(map[symbol.Code]*term.Term)
	out := make([]*literal.Literal, len(lits))
	for i, l := range lits {
		lhs := freshenTerm(bank, tab, mapping, l.LHS)
		rhs := freshenTerm(bank, tab, mapping, l.RHS)
		nl := literal.New(lhs, rhs, l.Sign)
		// Renaming does not change a literal's orientation, maximality, or
		// selection status; carry those flags forward rather than losing
		// them to literal.New's fresh-literal defaults.
		nl.Props |= l.Props & (literal.PropSelected | literal.PropOriented | literal.PropMaximal | literal.PropEligibleForResolution)
		out[i] = nl
	}
	return out
}

func freshenTerm(bank *term.Bank, tab *symbol.Table, mapping map[symbol.Code]*term.Term, t *term.Term) *term.Term {
	if t.IsVariable() {
		if nt, ok := mapping[t.F]; ok {
			return nt
		}
		sort := symbol.SortIndividual
		if e, ok := tab.ByCode(t.F); ok {
			sort = e.Result
		}
		entry := tab.DeclareVariable(sort)
		nt := bank.InsertVariable(entry.Code)
		mapping[t.F] = nt
		return nt
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]*term.Term, len(t.Args))
	changed := false
	for i, a := range t.Args {
		na := freshenTerm(bank, tab, mapping, a)
		if na != a {
			changed = true
		}
		args[i] = na
	}
	if !changed {
		return t
	}
	return bank.Insert(t.F, args...)
}

// eligible reports whether lits[idx] may serve as the inference literal,
// per spec.md §4.9: if any negative literal of lits carries
// literal.PropSelected, only selected negative literals are eligible;
// otherwise a literal is eligible iff no other literal of lits strictly
// dominates it under ocb.
func eligible(ocb *order.OCB, lits []*literal.Literal, idx int) bool {
	anySelected := false
	for _, l := range lits {
		if !l.Sign && l.Props.Has(literal.PropSelected) {
			anySelected = true
			break
		}
	}
	l := lits[idx]
	if anySelected {
		return !l.Sign && l.Props.Has(literal.PropSelected)
	}
	for j, other := range lits {
		if j == idx {
			continue
		}
		if ocb.Compare(other.MaximalSide(ocb), l.MaximalSide(ocb)) == order.Greater {
			return false
		}
	}
	return true
}

type subtermOccurrence struct {
	term *term.Term
	side int // 0 = LHS, 1 = RHS
	path []int
}

func collectOccurrences(t *term.Term, side int, path []int, out *[]subtermOccurrence) {
	if !t.IsVariable() {
		*out = append(*out, subtermOccurrence{term: t, side: side, path: append([]int(nil), path...)})
	}
	for i, a := range t.Args {
		collectOccurrences(a, side, append(path, i), out)
	}
}

func rewriteAt(bank *term.Bank, t *term.Term, path []int, replacement *term.Term) *term.Term {
	if len(path) == 0 {
		return replacement
	}
	args := append([]*term.Term(nil), t.Args...)
	args[path[0]] = rewriteAt(bank, t.Args[path[0]], path[1:], replacement)
	return bank.Insert(t.F, args...)
}

func sideTerm(l *literal.Literal, side int) *term.Term {
	if side == 0 {
		return l.LHS
	}
	return l.RHS
}

// Superposition rewrites every eligible subterm of into's literal at
// intoIdx with the instantiated right-hand side of from's equation at
// eqIdx, for every unifiable position, returning one resultant clause per
// successful position (spec.md §4.9, "Superposition (left and right)").
// Both premises must already be standardised apart (see RenameApart).
func Superposition(bank *term.Bank, ocb *order.OCB, from *clause.Clause, eqIdx int, into *clause.Clause, intoIdx int) []*clause.Clause {
	eq := from.Literals[eqIdx]
	if !eq.Sign || !eligible(ocb, from.Literals, eqIdx) {
		return nil
	}
	if !eligible(ocb, into.Literals, intoIdx) {
		return nil
	}
	target := into.Literals[intoIdx]

	var occs []subtermOccurrence
	collectOccurrences(target.LHS, 0, nil, &occs)
	collectOccurrences(target.RHS, 1, nil, &occs)

	sameLiteral := from.ID == into.ID && eqIdx == intoIdx
	var out []*clause.Clause
	for _, occ := range occs {
		if sameLiteral && occ.side == 0 && len(occ.path) == 0 {
			// Rewriting a literal's own unchanged LHS with itself, at its
			// own root, is vacuous; skip to avoid a no-op self-inference.
			// Any other occurrence (a different literal, a different
			// position, or the RHS) is a legitimate superposition.
			continue
		}
		s := subst.New()
		if !subst.Unify(bank, eq.LHS, occ.term, s) {
			continue
		}
		lInst := subst.Apply(bank, eq.LHS, s)
		rInst := subst.Apply(bank, eq.RHS, s)
		if !eq.Props.Has(literal.PropOriented) {
			if ocb.Compare(lInst, rInst) != order.Greater {
				continue
			}
		}

		fullSide := subst.Apply(bank, sideTerm(target, occ.side), s)
		rewrittenSide := rewriteAt(bank, fullSide, occ.path, rInst)

		var newLHS, newRHS *term.Term
		if occ.side == 0 {
			newLHS = rewrittenSide
			newRHS = subst.Apply(bank, target.RHS, s)
		} else {
			newLHS = subst.Apply(bank, target.LHS, s)
			newRHS = rewrittenSide
		}
		newTarget := literal.New(newLHS, newRHS, target.Sign)

		lits := make([]*literal.Literal, 0, len(from.Literals)+len(into.Literals)-1)
		for i, l := range from.Literals {
			if i == eqIdx {
				continue
			}
			lits = append(lits, l.Map(func(t *term.Term) *term.Term { return subst.Apply(bank, t, s) }))
		}
		for i, l := range into.Literals {
			if i == intoIdx {
				lits = append(lits, newTarget)
				continue
			}
			lits = append(lits, l.Map(func(t *term.Term) *term.Term { return subst.Apply(bank, t, s) }))
		}
		out = append(out, clause.WithLiterals(lits, "superposition", []clause.ID{from.ID, into.ID}))
	}
	return out
}

// EqualityResolution removes a negative literal s≄t at idx from c when s and
// t unify, applying the unifier to the remainder (spec.md §4.9, "Equality
// resolution"). Returns nil if the literal is not eligible or does not
// unify.
func EqualityResolution(bank *term.Bank, ocb *order.OCB, c *clause.Clause, idx int) *clause.Clause {
	lit := c.Literals[idx]
	if lit.Sign || !eligible(ocb, c.Literals, idx) {
		return nil
	}
	s := subst.New()
	if !subst.Unify(bank, lit.LHS, lit.RHS, s) {
		return nil
	}
	lits := make([]*literal.Literal, 0, len(c.Literals)-1)
	for i, l := range c.Literals {
		if i == idx {
			continue
		}
		lits = append(lits, l.Map(func(t *term.Term) *term.Term { return subst.Apply(bank, t, s) }))
	}
	return clause.WithLiterals(lits, "equality_resolution", []clause.ID{c.ID})
}

// EqualityFactoring combines two positive literals i (eligible/maximal) and
// j of c whose maximal sides unify, replacing them with j's substituted
// image and a new negative literal pairing the two minor sides (spec.md
// §4.9, "Equality factoring"). Returns nil if the rule's preconditions are
// not met.
func EqualityFactoring(bank *term.Bank, ocb *order.OCB, c *clause.Clause, i, j int) *clause.Clause {
	if i == j {
		return nil
	}
	li, lj := c.Literals[i], c.Literals[j]
	if !li.Sign || !lj.Sign || !eligible(ocb, c.Literals, i) {
		return nil
	}
	s := subst.New()
	if !subst.Unify(bank, li.MaximalSide(ocb), lj.MaximalSide(ocb), s) {
		return nil
	}
	minorSide := func(l *literal.Literal) *term.Term {
		if l.MaximalSide(ocb) == l.LHS {
			return l.RHS
		}
		return l.LHS
	}
	ti, tj := minorSide(li), minorSide(lj)
	newNeg := literal.New(subst.Apply(bank, ti, s), subst.Apply(bank, tj, s), false)
	newPos := lj.Map(func(t *term.Term) *term.Term { return subst.Apply(bank, t, s) })

	lits := make([]*literal.Literal, 0, len(c.Literals))
	for k, l := range c.Literals {
		if k == i || k == j {
			continue
		}
		lits = append(lits, l.Map(func(t *term.Term) *term.Term { return subst.Apply(bank, t, s) }))
	}
	lits = append(lits, newPos, newNeg)
	return clause.WithLiterals(lits, "equality_factoring", []clause.ID{c.ID})
}
