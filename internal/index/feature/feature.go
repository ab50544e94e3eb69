// Package feature implements the feature-vector index (FVI) of spec.md §3
// and §4.6: clauses are indexed by a vector of small non-negative integers,
// supporting retrieval of all clauses whose vector is componentwise ≤ (for
// forward subsumption) or ≥ (for backward subsumption) the query's.
package feature

import (
	"sort"

	"github.com/augurlab/saturn/internal/clause"
	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// Vector is a clause's feature vector: literal counts, then three entries
// per known symbol (positive occurrence count, negative occurrence count,
// maximum depth). The exact coordinate list is fixed per Index instance by
// its symbol ordering.
type Vector []int

// Builder computes Vectors using a fixed, ordered list of symbol codes, so
// that every clause passed to the same Builder produces comparable vectors.
type Builder struct {
	table   *symbol.Table
	symbols []symbol.Code
}

// NewBuilder returns a Builder over the given symbols, in a fixed order
// (coordinate order is permutation-optimised by the caller; see
// OrderBySelectivity).
func NewBuilder(table *symbol.Table, symbols []symbol.Code) *Builder {
	return &Builder{table: table, symbols: symbols}
}

// OrderBySelectivity sorts symbols by ascending Entry.Selectivity(), so the
// permutation-optimised FVI variant described in spec.md §4.6 places the
// most selective (rarest) coordinates first, pruning tries sooner.
func OrderBySelectivity(table *symbol.Table, codes []symbol.Code) []symbol.Code {
	out := append([]symbol.Code(nil), codes...)
	sel := make(map[symbol.Code]int64, len(codes))
	for _, c := range out {
		if e, ok := table.ByCode(c); ok {
			sel[c] = e.Selectivity()
		}
	}
	sort.Slice(out, func(i, j int) bool { return sel[out[i]] < sel[out[j]] })
	return out
}

// Vector computes the feature vector of c: [literalCount, posCount,
// negCount, then for each symbol: positive occurrences, negative
// occurrences, max depth].
func (b *Builder) Vector(c *clause.Clause) Vector {
	pos, neg := c.PosNegCounts()
	v := Vector{len(c.Literals), pos, neg}
	counts := make(map[symbol.Code][3]int) // [posCount, negCount, maxDepth]
	for _, l := range c.Literals {
		accumulate(counts, l, 0)
	}
	for _, s := range b.symbols {
		e := counts[s]
		v = append(v, e[0], e[1], e[2])
	}
	return v
}

func accumulate(counts map[symbol.Code][3]int, l *literal.Literal, _ int) {
	walkCount(counts, l.LHS, l.Sign, 0)
	walkCount(counts, l.RHS, l.Sign, 0)
}

func walkCount(counts map[symbol.Code][3]int, t *term.Term, sign bool, depth int) {
	if !t.IsVariable() {
		e := counts[t.F]
		if sign {
			e[0]++
		} else {
			e[1]++
		}
		if depth > e[2] {
			e[2] = depth
		}
		counts[t.F] = e
	}
	for _, a := range t.Args {
		walkCount(counts, a, sign, depth+1)
	}
}

// LEq reports whether a ≤ b componentwise (forward-subsumption direction).
func (a Vector) LEq(b Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}

// GEq reports whether a ≥ b componentwise (backward-subsumption direction).
func (a Vector) GEq(b Vector) bool {
	return b.LEq(a)
}

// trieNode is one edge level of the sparse FVI trie (spec.md §4.6: "sparse
// and built incrementally").
type trieNode struct {
	children map[int]*trieNode
	clauses  []*clause.Clause
}

func newTrieNode() *trieNode { return &trieNode{children: make(map[int]*trieNode)} }

// Index is the sparse FVI trie over one Builder's coordinate space.
type Index struct {
	builder *Builder
	root    *trieNode
}

// New returns an empty FVI using builder to compute vectors.
func New(builder *Builder) *Index {
	return &Index{builder: builder, root: newTrieNode()}
}

// Insert adds c, indexed under its feature vector.
func (idx *Index) Insert(c *clause.Clause) {
	v := idx.builder.Vector(c)
	n := idx.root
	for _, coord := range v {
		child, ok := n.children[coord]
		if !ok {
			child = newTrieNode()
			n.children[coord] = child
		}
		n = child
	}
	n.clauses = append(n.clauses, c)
}

// Remove deletes c from the index (a linear scan at the terminal node;
// acceptable since clause counts at one exact feature vector are small in
// practice).
func (idx *Index) Remove(c *clause.Clause) {
	v := idx.builder.Vector(c)
	n := idx.root
	for _, coord := range v {
		child, ok := n.children[coord]
		if !ok {
			return
		}
		n = child
	}
	for i, cc := range n.clauses {
		if cc.ID == c.ID {
			n.clauses = append(n.clauses[:i], n.clauses[i+1:]...)
			return
		}
	}
}

// CandidatesForForwardSubsumption returns every clause whose feature vector
// is componentwise ≤ query's: these are the only clauses that could subsume
// query (spec.md §4.6, §4.8 "quick reject").
func (idx *Index) CandidatesForForwardSubsumption(query Vector) []*clause.Clause {
	var out []*clause.Clause
	idx.walkLEq(idx.root, query, 0, &out)
	return out
}

func (idx *Index) walkLEq(n *trieNode, query Vector, i int, out *[]*clause.Clause) {
	if i == len(query) {
		*out = append(*out, n.clauses...)
		return
	}
	for coord, child := range n.children {
		if coord <= query[i] {
			idx.walkLEq(child, query, i+1, out)
		}
	}
}

// CandidatesForBackwardSubsumption returns every clause whose feature
// vector is componentwise ≥ query's: candidates query could subsume.
func (idx *Index) CandidatesForBackwardSubsumption(query Vector) []*clause.Clause {
	var out []*clause.Clause
	idx.walkGEq(idx.root, query, 0, &out)
	return out
}

func (idx *Index) walkGEq(n *trieNode, query Vector, i int, out *[]*clause.Clause) {
	if i == len(query) {
		*out = append(*out, n.clauses...)
		return
	}
	for coord, child := range n.children {
		if coord >= query[i] {
			idx.walkGEq(child, query, i+1, out)
		}
	}
}
