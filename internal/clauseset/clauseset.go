// Package clauseset defines the narrow interface the core's external
// collaborators (CNF conversion, the TPTP parser) use to hand clauses into
// the core, per spec.md §6: "the core consumes clauses already parsed into
// its data model via the formula/clause set constructor." The parser and
// CNF conversion themselves are out of scope (spec.md §1).
package clauseset

import (
	"github.com/augurlab/saturn/internal/clause"
	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// LiteralSpec is one literal of an incoming cnf(...) clause, in terms of an
// external collaborator's own term representation, before it is inserted
// into the core's hash-consed term bank.
type LiteralSpec struct {
	Functor symbol.Code
	Args    []*term.Term
	Sign    bool
	IsAtom  bool // true for a non-equational atom Functor(Args...), vs an lhs/rhs equation
	RHS     *term.Term
}

// ClauseSpec is one incoming cnf(name, role, literals) clause.
type ClauseSpec struct {
	Name     string
	Role     clause.Role
	Literals []LiteralSpec
}

// Constructor builds core clauses from ClauseSpecs, interning every term
// through bank so the hash-consing invariant holds from the moment a clause
// enters the core (spec.md §3 invariant: "if a term is stored in a term
// bank, any term pointer-equal to it is identical in structure").
type Constructor struct {
	bank *term.Bank
	tab  *symbol.Table
}

// NewConstructor returns a Constructor that interns incoming terms into
// bank.
func NewConstructor(bank *term.Bank, tab *symbol.Table) *Constructor {
	return &Constructor{bank: bank, tab: tab}
}

// Build converts spec into a core Clause, eliminating trivially tautological
// literals (spec.md §3, "an equation l ≃ l is a tautology and is eliminated
// at construction time").
func (c *Constructor) Build(spec ClauseSpec) *clause.Clause {
	lits := make([]*literal.Literal, 0, len(spec.Literals))
	for _, ls := range spec.Literals {
		var l *literal.Literal
		if ls.IsAtom {
			l = literal.NewAtom(c.bank, c.tab, ls.Functor, ls.Sign, ls.Args...)
		} else {
			lhs := c.bank.Insert(ls.Functor, ls.Args...)
			l = literal.New(lhs, ls.RHS, ls.Sign)
		}
		if l.IsTrivial() {
			continue
		}
		lits = append(lits, l)
	}
	cl := clause.New(lits, spec.Role)
	return cl
}

// BuildAll converts a batch of specs, preserving order.
func (c *Constructor) BuildAll(specs []ClauseSpec) []*clause.Clause {
	out := make([]*clause.Clause, 0, len(specs))
	for _, spec := range specs {
		out = append(out, c.Build(spec))
	}
	return out
}
