// Package rewrite implements the demodulation engine of spec.md §4.7: it
// normalises a term against a set of oriented unit equations, skipping
// terms already known normal via the per-term rw_date cache.
package rewrite

import (
	"github.com/augurlab/saturn/internal/index/pdt"
	"github.com/augurlab/saturn/internal/order"
	"github.com/augurlab/saturn/internal/subst"
	"github.com/augurlab/saturn/internal/term"
)

// Rule is one oriented unit equation LHS -> RHS, or an unorientable unit
// equation used only after re-checking orientation at the instantiated
// level (spec.md §4.7, "Rewriting respects the ordering").
type Rule struct {
	ClauseID string
	LHS, RHS *term.Term
	Oriented bool
	Date     term.RWDate
}

// Set is one processed positive-unit rewrite-rule set, indexed by a PDT
// over left-hand sides.
type Set struct {
	tree   *pdt.Tree
	rules  map[string]*Rule
	latest term.RWDate
	ocb    *order.OCB
}

// NewSet returns an empty rewrite-rule set. ocb is used to re-check
// orientation of unorientable equations after instantiation.
func NewSet(ocb *order.OCB) *Set {
	return &Set{tree: pdt.New(), rules: make(map[string]*Rule), ocb: ocb}
}

// LatestDate returns the set's current generation counter.
func (s *Set) LatestDate() term.RWDate { return s.latest }

func (s *Set) key(clauseID string) pdt.Position {
	return pdt.Position{ClauseID: clauseID, LiteralIdx: 0, Side: 0, Path: nil}
}

// AddRule inserts an oriented (or unorientable) unit equation at date,
// bumping the set's generation. date should come from the owning term
// bank's BumpDate so that RWDate comparisons stay meaningful.
func (s *Set) AddRule(clauseID string, lhs, rhs *term.Term, oriented bool, date term.RWDate) {
	r := &Rule{ClauseID: clauseID, LHS: lhs, RHS: rhs, Oriented: oriented, Date: date}
	s.rules[clauseID] = r
	pos := s.key(clauseID)
	pos.Pattern = lhs
	pos.RuleDate = date
	pos.Size = lhs.Size
	s.tree.Insert(pos)
	if date > s.latest {
		s.latest = date
	}
}

// RemoveRule deletes the rule contributed by clauseID, e.g. when that
// clause is retracted by back-simplification.
func (s *Set) RemoveRule(clauseID string) {
	r, ok := s.rules[clauseID]
	if !ok {
		return
	}
	pos := s.key(clauseID)
	pos.Pattern = r.LHS
	s.tree.Delete(pos)
	delete(s.rules, clauseID)
}

// Normalize rewrites t to its canonical form under s, per spec.md §4.7's
// three-step procedure. Returns the normal form and whether any rewrite
// step fired.
func (s *Set) Normalize(bank *term.Bank, t *term.Term) (*term.Term, bool) {
	out := s.normalize(bank, t)
	return out, out != t
}

func (s *Set) normalize(bank *term.Bank, t *term.Term) *term.Term {
	if t.RWDate >= s.latest {
		return t
	}
	if replaced, ok := s.rewriteRoot(bank, t); ok {
		return s.normalize(bank, replaced)
	}
	if len(t.Args) == 0 {
		t.RWDate = s.latest
		return t
	}
	changed := false
	args := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		na := s.normalize(bank, a)
		if na != a {
			changed = true
		}
		args[i] = na
	}
	result := t
	if changed {
		result = bank.Insert(t.F, args...)
	}
	result.RWDate = s.latest
	return result
}

// rewriteRoot takes the first rule whose LHS matches t at the root, in tree
// order (see pdt.Tree.FirstMatch). An unoriented rule is applied only if t
// is greater than the instantiated RHS; if it is not, t is not rewritten at
// the root and later matching rules are not tried.
func (s *Set) rewriteRoot(bank *term.Bank, t *term.Term) (*term.Term, bool) {
	sub := subst.New()
	pos, ok := s.tree.FirstMatch(bank, t, t.RWDate, sub)
	if !ok {
		return nil, false
	}
	rule := s.rules[pos.ClauseID]
	rhsInst := subst.Apply(bank, rule.RHS, sub)
	if !rule.Oriented {
		if s.ocb.Compare(t, rhsInst) != order.Greater {
			return nil, false
		}
	}
	return rhsInst, true
}
