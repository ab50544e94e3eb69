package symbol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeclareInternsByNameAndArity(t *testing.T) {
	tab := NewTable()
	a := tab.Declare("f", 2, nil, SortIndividual, 0)
	b := tab.Declare("f", 2, nil, SortIndividual, 0)
	require.Equal(t, a.Code, b.Code, "redeclaring the same name returns the existing entry")

	c := tab.Declare("g", 1, nil, SortIndividual, 0)
	require.NotEqual(t, a.Code, c.Code)
}

func TestDeclareVariableYieldsDistinctCodes(t *testing.T) {
	tab := NewTable()
	x := tab.DeclareVariable(SortIndividual)
	y := tab.DeclareVariable(SortIndividual)
	require.NotEqual(t, x.Code, y.Code)
	require.True(t, x.Code.IsVariable())
	require.True(t, y.Code.IsVariable())
}

func TestFunctionCodeIsNotAVariable(t *testing.T) {
	tab := NewTable()
	e := tab.Declare("a", 0, nil, SortIndividual, 0)
	require.False(t, e.Code.IsVariable())
}

func TestLookupAndByCodeAgree(t *testing.T) {
	tab := NewTable()
	e := tab.Declare("P", 1, nil, SortBoolean, FlagPredicate)

	byName, ok := tab.Lookup("P")
	require.True(t, ok)
	require.Equal(t, e, byName)

	byCode, ok := tab.ByCode(e.Code)
	require.True(t, ok)
	require.Equal(t, e, byCode)
}

func TestByCodeMissingReturnsFalse(t *testing.T) {
	tab := NewTable()
	_, ok := tab.ByCode(Code(9999))
	require.False(t, ok)
}

func TestSymbolsExcludesVariablesAndIsSorted(t *testing.T) {
	tab := NewTable()
	g := tab.Declare("g", 1, nil, SortIndividual, 0)
	a := tab.Declare("a", 0, nil, SortIndividual, 0)
	tab.DeclareVariable(SortIndividual)

	syms := tab.Symbols()
	require.Len(t, syms, 2)
	require.Contains(t, syms, g.Code)
	require.Contains(t, syms, a.Code)
	for i := 1; i < len(syms); i++ {
		require.Less(t, syms[i-1], syms[i])
	}
}

func TestSelectivityTracksOccurrenceCount(t *testing.T) {
	tab := NewTable()
	e := tab.Declare("P", 1, nil, SortBoolean, FlagPredicate)
	require.Zero(t, e.Selectivity())

	e.RecordOccurrence(true)
	e.RecordOccurrence(false)
	require.EqualValues(t, 2, e.Selectivity())
}
