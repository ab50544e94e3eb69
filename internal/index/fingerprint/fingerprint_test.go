package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

type fixture struct {
	tab  *symbol.Table
	bank *term.Bank
}

func newFixture() *fixture {
	tab := symbol.NewTable()
	return &fixture{tab: tab, bank: term.NewBank(tab)}
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

func TestFingerprintRootEntryIsVariableForBareVariable(t *testing.T) {
	f := newFixture()
	x := f.variable()
	k := Fingerprint(x, DefaultPositions)
	require.Equal(t, EntryVariable, k[0])
}

func TestFingerprintBelowVariablePosition(t *testing.T) {
	f := newFixture()
	x := f.variable()
	k := Fingerprint(x, DefaultPositions)
	// every position below the root is strictly below the root variable
	for _, e := range k[1:] {
		require.Equal(t, EntryBelowVariable, e)
	}
}

func TestFingerprintNotPresentBelowLeaf(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	k := Fingerprint(a, DefaultPositions)
	require.Equal(t, functionEntry(a.F), k[0])
	require.Equal(t, EntryNotPresent, k[1]) // position {0} is past a's arity
}

func TestCompatibleUnifyAcceptsVariableOnEitherSide(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	x := f.variable()
	ka := Fingerprint(a, DefaultPositions)
	kx := Fingerprint(x, DefaultPositions)
	require.True(t, Compatible(ka, kx, Unify))
	require.True(t, Compatible(kx, ka, Unify))
}

func TestCompatibleMatchGeneralizationsRequiresIndexedVariable(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")
	x := f.variable()
	ka, kb, kx := Fingerprint(a, DefaultPositions), Fingerprint(b, DefaultPositions), Fingerprint(x, DefaultPositions)

	require.True(t, Compatible(kx, ka, MatchGeneralizations), "an indexed variable generalises any query")
	require.False(t, Compatible(ka, kb, MatchGeneralizations), "distinct ground functions are never compatible")
}

func TestCompatibleRejectsMismatchedFunctionSymbols(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	gA := f.fn("g", a)
	fA := f.fn("f", a)
	require.False(t, Compatible(Fingerprint(fA, DefaultPositions), Fingerprint(gA, DefaultPositions), Unify))
}

func TestIndexInsertAndCandidatesRetrieveUnifiableRecord(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	x := f.variable()

	idx := New(nil)
	idx.Insert(fa, "c1", 0, 0, nil)

	cands := idx.Candidates(x, Unify)
	require.Len(t, cands, 1)
	require.Equal(t, fa, cands[0].Term)
}

// Candidates is a coarse bucket-level filter: it collapses distinct function
// symbols at the same position to one representative, so retrieval can only
// exclude a query once its *shape* (variable/below-variable/not-present vs.
// function) differs from the indexed term, not merely its function symbol.
func TestIndexCandidatesExcludesShapeMismatch(t *testing.T) {
	f := newFixture()
	a, c := f.constant("a"), f.constant("c")
	fa := f.fn("f", a) // position {0}: a function symbol present

	idx := New(nil)
	idx.Insert(fa, "c1", 0, 0, nil)

	cands := idx.Candidates(c, Unify) // position {0}: not present, c is 0-ary
	require.Empty(t, cands)
}

func TestIndexRemoveDropsOnlyMatchingOccurrence(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)

	idx := New(nil)
	idx.Insert(fa, "c1", 0, 0, nil)
	idx.Insert(fa, "c2", 0, 0, nil)
	idx.Remove(fa, "c1", 0, 0, nil)

	cands := idx.Candidates(fa, Unify)
	require.Len(t, cands, 1)
	require.Equal(t, "c2", cands[0].ClauseID)
}
