package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"

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

// f(a) -> b rewrites g(f(a)) to g(b) at a nested position.
func TestNormalizeRewritesNestedSubterm(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")
	fa := f.fn("f", a)
	gfa := f.fn("g", fa)

	set := NewSet(f.ocb)
	set.AddRule("rule1", fa, b, true, f.bank.BumpDate())

	out, changed := set.Normalize(f.bank, gfa)
	require.True(t, changed)
	require.Equal(t, f.fn("g", b), out)
}

// f(x) -> a normalizes any ground instance through the variable pattern.
func TestNormalizeMatchesVariablePattern(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")
	x := f.variable()
	fx := f.fn("f", x)
	fb := f.fn("f", b)

	set := NewSet(f.ocb)
	set.AddRule("rule1", fx, a, true, f.bank.BumpDate())

	out, changed := set.Normalize(f.bank, fb)
	require.True(t, changed)
	require.Equal(t, a, out)
}

func TestNormalizeIsNoopWithoutMatchingRule(t *testing.T) {
	f := newFixture()
	a := f.constant("a")
	fa := f.fn("f", a)

	set := NewSet(f.ocb)
	out, changed := set.Normalize(f.bank, fa)
	require.False(t, changed)
	require.Equal(t, fa, out)
}

// An unorientable rule only fires when the instantiated RHS is ordering-
// smaller than the instantiated LHS; here a -> b has equal weights and the
// default precedence (the symbol code) puts a, declared first, below b, so
// a is not greater than b and the rule does not fire.
func TestNormalizeSkipsUnorientedRuleWhenRHSNotSmaller(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")

	set := NewSet(f.ocb)
	set.AddRule("rule1", a, b, false, f.bank.BumpDate())

	out, changed := set.Normalize(f.bank, a)
	require.False(t, changed)
	require.Equal(t, a, out)
}

func TestRemoveRuleStopsFurtherRewriting(t *testing.T) {
	f := newFixture()
	a, b := f.constant("a"), f.constant("b")
	fa := f.fn("f", a)

	set := NewSet(f.ocb)
	set.AddRule("rule1", fa, b, true, f.bank.BumpDate())
	set.RemoveRule("rule1")

	out, changed := set.Normalize(f.bank, fa)
	require.False(t, changed)
	require.Equal(t, fa, out)
}
