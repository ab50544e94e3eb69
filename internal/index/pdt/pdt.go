// Package pdt implements the perfect discrimination tree of spec.md §3 and
// §4.4: a trie indexed by the pre-order symbol sequence of terms, used to
// retrieve candidate rewrite rules and unit equations for matching.
//
// Unlike a byte-string trie, a PDT must let a single "variable" edge at a
// node match an entire, arbitrarily-shaped query subtree. That traversal is
// driven here by an ordinary recursive walk over term structure (pattern
// variables are arity-0 by construction, so the pattern side never needs to
// "skip" unknown structure — recursion simply bottoms out at the variable
// edge). Each internal node's leaf set, once a pattern is fully consumed, is
// stored in a github.com/hashicorp/go-immutable-radix tree keyed by an
// encoded clause-position: this gives the leaf sets structural sharing and
// cheap persistent snapshots across saturation generations, instead of a
// plain mutable slice.
package pdt

import (
	"fmt"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/augurlab/saturn/internal/subst"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// Position identifies one indexed occurrence: a clause, a literal within
// it, a side (0=LHS,1=RHS), and a term path (spec.md §3, "PDT node").
type Position struct {
	ClauseID   string
	LiteralIdx int
	Side       int
	Path       []int
	Pattern    *term.Term
	// RuleDate is the creation date of the rule this position belongs to.
	// It is folded into each node's minimum date on insert; retrieval does
	// not prune on it.
	RuleDate term.RWDate
	Size     int
}

func (p Position) key() []byte {
	return []byte(fmt.Sprintf("%s|%d|%d|%v", p.ClauseID, p.LiteralIdx, p.Side, p.Path))
}

type node struct {
	children map[symbol.Code]*node
	varChild *node
	leaves   *iradix.Tree
	minDate  term.RWDate
	minSize  int
	hasMin   bool
}

func newNode() *node {
	return &node{children: make(map[symbol.Code]*node), leaves: iradix.New()}
}

func (n *node) updateMin(date term.RWDate, size int) {
	if !n.hasMin || date < n.minDate {
		n.minDate = date
	}
	if !n.hasMin || size < n.minSize {
		n.minSize = size
	}
	n.hasMin = true
}

// Tree is a PDT over one set of indexed patterns (e.g. one processed unit
// rewrite-rule set).
type Tree struct {
	root *node
}

// New returns an empty PDT.
func New() *Tree {
	return &Tree{root: newNode()}
}

// Insert indexes pos.Pattern, attaching pos at the resulting leaf.
func (t *Tree) Insert(pos Position) {
	n := t.root
	n.updateMin(pos.RuleDate, pos.Size)
	n = insertTerm(n, pos.Pattern, pos.RuleDate, pos.Size)
	n.leaves, _, _ = n.leaves.Insert(pos.key(), pos)
}

func insertTerm(n *node, pat *term.Term, date term.RWDate, size int) *node {
	var next *node
	if pat.IsVariable() {
		if n.varChild == nil {
			n.varChild = newNode()
		}
		next = n.varChild
	} else {
		child, ok := n.children[pat.F]
		if !ok {
			child = newNode()
			n.children[pat.F] = child
		}
		next = child
		for _, a := range pat.Args {
			next = insertTerm(next, a, date, size)
		}
	}
	next.updateMin(date, size)
	return next
}

// Delete removes pos from the tree. Node pruning for emptied branches is
// not performed (a documented simplification — stale min-age/min-size
// bounds only reduce pruning effectiveness, never correctness, since they
// are used purely to skip candidates, with subst.Match re-verifying every
// surviving candidate).
func (t *Tree) Delete(pos Position) {
	n := t.root
	n = descendTerm(n, pos.Pattern)
	if n == nil {
		return
	}
	n.leaves, _, _ = n.leaves.Delete(pos.key())
}

func descendTerm(n *node, pat *term.Term) *node {
	if pat.IsVariable() {
		return n.varChild
	}
	child, ok := n.children[pat.F]
	if !ok {
		return nil
	}
	for _, a := range pat.Args {
		child = descendTerm(child, a)
		if child == nil {
			return nil
		}
	}
	return child
}

// Candidate wraps a matched leaf position; it carries no substitution, so
// callers re-run the match to obtain one.
type Candidate struct {
	Position Position
}

// MatchGeneralizations returns every indexed pattern that matches (is more
// general than) query: patterns l such that l·σ = query for some σ, i.e.
// subst.Match(pattern, query, s) succeeds. sizeLimit prunes variable edges
// whose minimum recorded size exceeds it; queryDate is not used for pruning
// (see matchOne), so rule-date filtering is left to the caller.
func (t *Tree) MatchGeneralizations(bank *term.Bank, query *term.Term, queryDate term.RWDate, sizeLimit int) []Position {
	leaves := matchOne(t.root, query, queryDate, sizeLimit, true)
	var out []Position
	for _, leaf := range leaves {
		leaf.leaves.Root().Walk(func(k []byte, v interface{}) bool {
			out = append(out, v.(Position))
			return false
		})
	}
	return out
}

// matchOne returns the leaf nodes reachable by consuming query against n,
// following exact function-symbol edges and the pooled variable edge.
// When pruneSize is set, a variable edge whose minimum recorded size
// exceeds sizeLimit is skipped. queryDate is not consulted: nodes track
// only a minimum rule date, which cannot show that every leaf below is
// older than the query, and neither this walk nor the rewrite engine
// checks pos.RuleDate.
func matchOne(n *node, t *term.Term, queryDate term.RWDate, sizeLimit int, pruneSize bool) []*node {
	var results []*node
	if n.varChild != nil {
		if !pruneSize || !n.varChild.hasMin || n.varChild.minSize <= sizeLimit {
			results = append(results, n.varChild)
		}
	}
	if child, ok := n.children[t.F]; ok {
		leaves := []*node{child}
		for _, a := range t.Args {
			var nextLeaves []*node
			for _, l := range leaves {
				nextLeaves = append(nextLeaves, matchOne(l, a, queryDate, sizeLimit, pruneSize)...)
			}
			leaves = nextLeaves
			if len(leaves) == 0 {
				break
			}
		}
		results = append(results, leaves...)
	}
	return results
}

// FirstMatch returns the first matching leaf position (in tree order:
// variable-edge leaves before function-symbol leaves at each node, and
// positions within one leaf in encoded-key order) whose pattern actually
// matches query under subst.Match, extending
// s in place, plus true — or false if none match. This is the operation
// the rewrite engine uses: "the first matching leaf wins" (spec.md §4.4).
func (t *Tree) FirstMatch(bank *term.Bank, query *term.Term, queryDate term.RWDate, s *subst.Subst) (Position, bool) {
	candidates := t.MatchGeneralizations(bank, query, queryDate, query.Size)
	for _, c := range candidates {
		mark := s.Mark()
		if subst.Match(bank, c.Pattern, query, s) {
			return c, true
		}
		s.BacktrackTo(mark)
	}
	return Position{}, false
}
