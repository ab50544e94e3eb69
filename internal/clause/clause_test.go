package clause

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

func newFixture() (*term.Bank, *symbol.Table) {
	tab := symbol.NewTable()
	return term.NewBank(tab), tab
}

func TestWeightInvariant(t *testing.T) {
	bank, tab := newFixture()
	a := tab.Declare("a", 0, nil, symbol.SortIndividual, 0)
	b := tab.Declare("b", 0, nil, symbol.SortIndividual, 0)
	at, bt := bank.Insert(a.Code), bank.Insert(b.Code)

	l1 := literal.New(at, bt, true)
	l2 := literal.New(bt, at, false)
	c := New([]*literal.Literal{l1, l2}, RoleAxiom)

	// Invariant 2 (spec §8): a clause's weight is the sum of its literals'
	// standard weights.
	require.Equal(t, l1.Weight()+l2.Weight(), c.Weight)
}

func TestIsEmptyAndIsTautology(t *testing.T) {
	bank, tab := newFixture()
	a := tab.Declare("a", 0, nil, symbol.SortIndividual, 0)
	at := bank.Insert(a.Code)

	empty := New(nil, RoleAxiom)
	require.True(t, empty.IsEmpty())

	tauto := New([]*literal.Literal{literal.New(at, at, true)}, RoleAxiom)
	require.True(t, tauto.IsTautology())

	b := tab.Declare("b", 0, nil, symbol.SortIndividual, 0)
	bt := bank.Insert(b.Code)
	complementary := New([]*literal.Literal{
		literal.New(at, bt, true),
		literal.New(at, bt, false),
	}, RoleAxiom)
	require.True(t, complementary.IsTautology())
}

func TestApplySimplificationPreservesIdentity(t *testing.T) {
	bank, tab := newFixture()
	a := tab.Declare("a", 0, nil, symbol.SortIndividual, 0)
	b := tab.Declare("b", 0, nil, symbol.SortIndividual, 0)
	at, bt := bank.Insert(a.Code), bank.Insert(b.Code)

	parent1 := New(nil, RoleAxiom)
	parent2 := New(nil, RoleAxiom)
	c := WithLiterals([]*literal.Literal{literal.New(at, bt, true)}, "superposition", []ID{parent1.ID, parent2.ID})
	originalID := c.ID
	originalRule := c.Derivation.Rule

	simplifier := parent1.ID
	c.ApplySimplification([]*literal.Literal{literal.New(bt, bt, true)}, "demodulation", simplifier)

	require.Equal(t, originalID, c.ID, "ApplySimplification must not change clause identity")
	require.Equal(t, originalRule, c.Derivation.Rule, "ApplySimplification must not overwrite the generating derivation")
	require.Len(t, c.Derivation.Simplifications, 1)
	require.Equal(t, "demodulation", c.Derivation.Simplifications[0].Rule)
	require.Equal(t, simplifier, c.Derivation.Simplifications[0].Simplifier)
}

func TestWithLiteralsAssignsFreshIdentity(t *testing.T) {
	bank, tab := newFixture()
	a := tab.Declare("a", 0, nil, symbol.SortIndividual, 0)
	at := bank.Insert(a.Code)

	parent := New([]*literal.Literal{literal.New(at, at, false)}, RoleAxiom)
	child := WithLiterals(parent.Literals, "equality_resolution", []ID{parent.ID})

	require.NotEqual(t, parent.ID, child.ID)
	require.Equal(t, []ID{parent.ID}, child.Derivation.Parents)
}
