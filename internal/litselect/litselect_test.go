package litselect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/order"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

type fixture struct {
	tab  *symbol.Table
	ocb  *order.OCB
	bank *term.Bank
}

func newFixture() *fixture {
	tab := symbol.NewTable()
	ocb := order.NewOCB(order.KBO)
	bank := term.NewBank(tab)
	bank.SetWeightFunc(ocb.WeightFunc())
	return &fixture{tab: tab, ocb: ocb, bank: bank}
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

func selected(lits []*literal.Literal) []int {
	var out []int
	for i, l := range lits {
		if l.Props.Has(literal.PropSelected) {
			out = append(out, i)
		}
	}
	return out
}

func TestNoSelectionClearsExistingSelections(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	lit := f.atom("P", false, a)
	lit.Props |= literal.PropSelected

	out := NoSelection(f.ocb, []*literal.Literal{lit})
	require.Empty(t, selected(out))
}

func TestSelectNegativeLiteralsPicksTheHeavierOne(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	light := f.atom("Q", false, a)
	heavy := f.atom("P", false, fa)

	out := SelectNegativeLiterals(f.ocb, []*literal.Literal{light, heavy})
	require.Equal(t, []int{1}, selected(out))
}

func TestPSelectNegativeLiteralsFallsBackToPositive(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	light := f.atom("R", true, a)
	heavy := f.atom("S", true, fa)

	out := PSelectNegativeLiterals(f.ocb, []*literal.Literal{light, heavy})
	require.Equal(t, []int{1}, selected(out))
}

func TestSelectPureVarNegativeLiteralsIgnoresNonVariableAtoms(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	x, y := f.variable(), f.variable()
	pureVar := literal.New(x, y, false)
	atom := f.atom("P", false, a)

	out := SelectPureVarNegativeLiterals(f.ocb, []*literal.Literal{pureVar, atom})
	require.Equal(t, []int{0}, selected(out))
}

func TestPSelectPureVarNegativeLiteralsFallsBackWhenNoPureVarLiteral(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	light := f.atom("R", true, a)
	heavy := f.atom("S", true, fa)

	out := PSelectPureVarNegativeLiterals(f.ocb, []*literal.Literal{light, heavy})
	require.Equal(t, []int{1}, selected(out))
}

func TestSelectComplexPrefersTheHeavierOrdinaryNegative(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	light := f.atom("Q", false, a)
	heavy := f.atom("P", false, fa)

	out := SelectComplex(f.ocb, []*literal.Literal{light, heavy})
	require.Equal(t, []int{1}, selected(out))
}

// When every negative literal is a degenerate self-equation (PropPureEquality,
// l≄l with LHS and RHS the same term) the maximal-negative search excludes
// them all, and SelectComplex falls back to the single smallest one.
func TestSelectComplexFallsBackToSmallestWhenAllNegativesArePureEqualities(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)
	small := literal.New(a, a, false)
	large := literal.New(fa, fa, false)
	require.True(t, small.Props.Has(literal.PropPureEquality))
	require.True(t, large.Props.Has(literal.PropPureEquality))

	out := SelectComplex(f.ocb, []*literal.Literal{large, small})
	require.Equal(t, []int{1}, selected(out))
}

func TestByNameResolvesKnownStrategiesAndDefaultsToNoSelection(t *testing.T) {
	require.NotNil(t, ByName("SelectNegativeLiterals"))
	require.NotNil(t, ByName("PSelectComplex"))

	f := newFixture()
	a := f.constant("a")
	lit := f.atom("P", false, a)
	lit.Props |= literal.PropSelected
	out := ByName("does-not-exist")(f.ocb, []*literal.Literal{lit})
	require.Empty(t, selected(out), "unknown strategy names must fall back to NoSelection")
}
