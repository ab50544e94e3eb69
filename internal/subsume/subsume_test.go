package subsume

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/augurlab/saturn/internal/clause"
	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

type fixture struct {
	tab  *symbol.Table
	bank *term.Bank
}

func newFixture() *fixture {
	tab := symbol.NewTable()
	bank := term.NewBank(tab)
	return &fixture{tab: tab, bank: bank}
}

func (f *fixture) constant(name string) *term.Term {
	e := f.tab.Declare(name, 0, nil, symbol.SortIndividual, 0)
	return f.bank.Insert(e.Code)
}

func (f *fixture) fn(name string, args ...*term.Term) *term.Term {
	e := f.tab.Declare(name, len(args), nil, symbol.SortIndividual, 0)
	return f.bank.Insert(e.Code, args...)
}

func (f *fixture) variable() *term.Term {
	e := f.tab.DeclareVariable(symbol.SortIndividual)
	return f.bank.InsertVariable(e.Code)
}

func (f *fixture) atom(name string, sign bool, args ...*term.Term) *literal.Literal {
	e := f.tab.Declare(name, len(args), nil, symbol.SortBoolean, symbol.FlagPredicate)
	return literal.NewAtom(f.bank, f.tab, e.Code, sign, args...)
}

func TestSubsumesGeneralClauseOverGroundInstance(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	x := f.variable()

	general := clause.New([]*literal.Literal{f.atom("P", true, x), f.atom("Q", true, x)}, clause.RoleAxiom)
	specific := clause.New([]*literal.Literal{f.atom("P", true, a), f.atom("Q", true, a), f.atom("R", true, a)}, clause.RoleAxiom)

	require.True(t, Subsumes(f.bank, general, specific))
	require.False(t, Subsumes(f.bank, specific, general), "a clause with more literals cannot subsume a shorter one")
}

func TestSubsumesRejectsSignMismatch(t *testing.T) {
	f := newFixture()
	a := f.constant("a")

	pos := clause.New([]*literal.Literal{f.atom("P", true, a)}, clause.RoleAxiom)
	neg := clause.New([]*literal.Literal{f.atom("P", false, a)}, clause.RoleAxiom)

	require.False(t, Subsumes(f.bank, pos, neg))
}

func TestUnitSubsumesMatchesEquationSymmetrically(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")
	ab := clause.New([]*literal.Literal{literal.New(a, b, true)}, clause.RoleAxiom)
	ba := clause.New([]*literal.Literal{literal.New(b, a, true)}, clause.RoleAxiom)

	require.True(t, UnitSubsumes(f.bank, ab, ba))
}

func TestSimplifyReflectDropsNegativeLiteralMatchingUnit(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")
	unit := literal.New(a, b, true)
	target := literal.New(a, b, false)
	keep := literal.New(b, a, true)

	out, changed := SimplifyReflect(f.bank, []*literal.Literal{unit}, []*literal.Literal{target, keep})
	require.True(t, changed)
	require.Len(t, out, 1)
	require.Same(t, keep, out[0])
}

func TestSimplifyReflectLeavesUnmatchedNegativeLiteral(t *testing.T) {
	f := newFixture()
	a, b, c := f.constant("a"), f.constant("b"), f.constant("c")
	unit := literal.New(a, b, true)
	target := literal.New(a, c, false)

	out, changed := SimplifyReflect(f.bank, []*literal.Literal{unit}, []*literal.Literal{target})
	require.False(t, changed)
	require.Equal(t, []*literal.Literal{target}, out)
}

// a≃b lets f(a)≄f(b) reduce recursively, even though no unit matches the
// whole pair directly.
func TestStrongSimplifyReflectRecursesIntoArguments(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")
	fa, fb := f.fn("f", a), f.fn("f", b)
	unit := literal.New(a, b, true)
	target := literal.New(fa, fb, false)

	out, changed := StrongSimplifyReflect(f.bank, []*literal.Literal{unit}, []*literal.Literal{target})
	require.True(t, changed)
	require.Empty(t, out)
}

// P(x) ∨ P(a) condenses to P(a): x matches a, so the variable literal
// self-subsumes the ground one.
func TestCondenseRemovesSelfSubsumedLiteral(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	x := f.variable()

	lits := []*literal.Literal{f.atom("P", true, x), f.atom("P", true, a)}
	out, changed := Condense(f.bank, lits)
	require.True(t, changed)
	require.Len(t, out, 1)
}

func TestCondenseIsNoopWhenNoLiteralIsRedundant(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")

	lits := []*literal.Literal{f.atom("P", true, a), f.atom("P", true, b)}
	out, changed := Condense(f.bank, lits)
	require.False(t, changed)
	require.Equal(t, lits, out)
}
