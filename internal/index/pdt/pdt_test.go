package pdt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/augurlab/saturn/internal/subst"
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

func TestMatchGeneralizationsFindsExactFunctionPattern(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)

	tree := New()
	pos := Position{ClauseID: "c1", Pattern: fa, Size: fa.Size}
	tree.Insert(pos)

	results := tree.MatchGeneralizations(f.bank, fa, 0, fa.Size)
	require.Len(t, results, 1)
	require.Equal(t, "c1", results[0].ClauseID)
}

func TestMatchGeneralizationsFindsVariablePatternForAnyQuery(t *testing.T) {
	f := newFixture()
	x := f.variable()
	a := f.constant("a")
	fa := f.fn("f", a)

	tree := New()
	tree.Insert(Position{ClauseID: "generalization", Pattern: x, Size: x.Size})

	results := tree.MatchGeneralizations(f.bank, fa, 0, fa.Size)
	require.Len(t, results, 1)
	require.Equal(t, "generalization", results[0].ClauseID)
}

func TestMatchGeneralizationsRejectsMismatchedFunctor(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	ga := f.fn("g", a)

	tree := New()
	tree.Insert(Position{ClauseID: "fpattern", Pattern: fa, Size: fa.Size})

	results := tree.MatchGeneralizations(f.bank, ga, 0, ga.Size)
	require.Empty(t, results)
}

func TestMatchGeneralizationsPrunesVariablePatternOnSizeLimit(t *testing.T) {
	f := newFixture()
	x := f.variable()
	a := f.constant("a")
	fa := f.fn("f", a)

	tree := New()
	tree.Insert(Position{ClauseID: "rule", Pattern: x, Size: fa.Size})

	results := tree.MatchGeneralizations(f.bank, fa, 0, fa.Size-1)
	require.Empty(t, results, "a sizeLimit below the variable rule's recorded minimum size must prune it")
}

func TestDeleteRemovesOnlyTheMatchingPosition(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)

	tree := New()
	kept := Position{ClauseID: "kept", Pattern: fa, Size: fa.Size}
	removed := Position{ClauseID: "removed", Pattern: fa, Size: fa.Size}
	tree.Insert(kept)
	tree.Insert(removed)

	tree.Delete(removed)

	results := tree.MatchGeneralizations(f.bank, fa, 0, fa.Size)
	require.Len(t, results, 1)
	require.Equal(t, "kept", results[0].ClauseID)
}

func TestFirstMatchBindsVariablePatternAndSucceeds(t *testing.T) {
	f := newFixture()
	x := f.variable()
	a := f.constant("a")
	fa := f.fn("f", a)

	tree := New()
	tree.Insert(Position{ClauseID: "rule", Pattern: x, Size: x.Size})

	s := subst.New()
	pos, ok := tree.FirstMatch(f.bank, fa, 0, s)
	require.True(t, ok)
	require.Equal(t, "rule", pos.ClauseID)

	bound, ok := s.Lookup(x.F)
	require.True(t, ok)
	require.Equal(t, fa, bound)
}

func TestFirstMatchReturnsFalseWhenNothingMatches(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	ga := f.fn("g", a)

	tree := New()
	tree.Insert(Position{ClauseID: "fpattern", Pattern: fa, Size: fa.Size})

	s := subst.New()
	_, ok := tree.FirstMatch(f.bank, ga, 0, s)
	require.False(t, ok)
}
