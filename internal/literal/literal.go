// Package literal implements the equation-as-literal representation of
// spec.md §3 ("Literal (equation)"): a positive or negative equation l≃r,
// with non-equational atoms encoded as P(t1..tn) ≃ $true.
package literal

import (
	"github.com/augurlab/saturn/internal/order"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// Properties are per-literal flags (spec.md §3).
type Properties uint16

const (
	PropOriented Properties = 1 << iota
	PropMaximal
	PropEligibleForResolution
	PropSelected
	PropPureEquality
)

func (p Properties) Has(bit Properties) bool { return p&bit != 0 }

// Literal is l ≃ r (Sign true) or l ≄ r (Sign false). A non-equational atom
// P(args) is represented as P(args) ≃ $true.
type Literal struct {
	LHS, RHS *term.Term
	Sign     bool
	Props    Properties
	weight   int
}

// trueName is the symbol name reserved for $true, the target of encoded
// atoms. It is declared once per symbol table by EnsureTrue.
const trueName = "$true"

// EnsureTrue declares (or returns the existing) $true constant in tab.
func EnsureTrue(tab *symbol.Table, bank *term.Bank) *term.Term {
	e := tab.Declare(trueName, 0, nil, symbol.SortBoolean, symbol.FlagInterpretedConstant)
	return bank.Insert(e.Code)
}

// NewAtom builds a non-equational literal P(args) (sign) ≃ $true.
func NewAtom(bank *term.Bank, tab *symbol.Table, pred symbol.Code, sign bool, args ...*term.Term) *Literal {
	lhs := bank.Insert(pred, args...)
	rhs := EnsureTrue(tab, bank)
	return New(lhs, rhs, sign)
}

// New builds a literal lhs (sign) rhs, computing its cached standard
// weight. A reflexive positive equation l≃l is a tautology; callers that
// must eliminate tautologies at construction time should check IsTrivial.
func New(lhs, rhs *term.Term, sign bool) *Literal {
	l := &Literal{LHS: lhs, RHS: rhs, Sign: sign}
	l.weight = lhs.Weight + rhs.Weight
	if lhs == rhs {
		l.Props |= PropPureEquality
	}
	return l
}

// Weight returns the cached standard weight: the sum of symbol weights
// across both sides (spec.md invariant 2 depends on this being exact).
func (l *Literal) Weight() int { return l.weight }

// IsTrivial reports whether l is a tautology (l≃l, positive) that should be
// eliminated at clause-construction time (spec.md §3 invariant).
func (l *Literal) IsTrivial() bool {
	return l.Sign && l.LHS == l.RHS
}

// IsFalsehood reports whether l is l≄l, i.e. unconditionally false.
func (l *Literal) IsFalsehood() bool {
	return !l.Sign && l.LHS == l.RHS
}

// Orient compares LHS and RHS under ocb and sets PropOriented if one side is
// strictly greater, swapping sides if necessary so LHS is the greater side.
// Returns the (possibly reoriented) literal; New literals are immutable
// elsewhere in the clause, so Orient returns a fresh *Literal rather than
// mutating in place when a swap is needed.
func (l *Literal) Orient(ocb *order.OCB) *Literal {
	switch ocb.Compare(l.LHS, l.RHS) {
	case order.Greater:
		out := *l
		out.Props |= PropOriented
		return &out
	case order.Less:
		out := &Literal{LHS: l.RHS, RHS: l.LHS, Sign: l.Sign, weight: l.weight}
		out.Props = l.Props | PropOriented
		return out
	default:
		out := *l
		out.Props &^= PropOriented
		return &out
	}
}

// MaximalSide returns the ordering-greater of LHS/RHS under ocb (or LHS if
// the two sides are incomparable, matching the canonical orientation
// convention), the side superposition eligibility and paramodulation
// consult (spec.md §4.9). An already-Oriented literal short-circuits the
// comparison: Orient's contract guarantees LHS is the greater side.
func (l *Literal) MaximalSide(ocb *order.OCB) *term.Term {
	if l.Props.Has(PropOriented) {
		return l.LHS
	}
	if ocb.Compare(l.RHS, l.LHS) == order.Greater {
		return l.RHS
	}
	return l.LHS
}

// Map returns a new literal with apply applied to both sides (or l itself
// when apply changes neither side). apply is
// typically subst.Apply bound to a bank and substitution; kept generic here
// to avoid literal depending on subst (subst already depends on term, and
// avoiding the reverse edge keeps the dependency graph a DAG per spec.md
// §5's arena-index philosophy).
func (l *Literal) Map(apply func(*term.Term) *term.Term) *Literal {
	lhs, rhs := apply(l.LHS), apply(l.RHS)
	if lhs == l.LHS && rhs == l.RHS {
		return l
	}
	return New(lhs, rhs, l.Sign)
}

// String renders the literal in traditional syntax, e.g. "f(a) ≃ b" or
// "f(a) ≄ b".
func (l *Literal) String(tab *symbol.Table) string {
	op := " ≄ "
	if l.Sign {
		op = " ≃ "
	}
	return l.LHS.String(tab) + op + l.RHS.String(tab)
}
