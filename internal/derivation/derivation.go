// Package derivation unwinds a clause's Derivation record into the proof
// DAG spec.md §6 exposes on success: "the derivation DAG rooted at the
// empty clause; each node carries (inference-rule, parent-clause-ids,
// substitution-trace, literal-position)."
package derivation

import (
	"github.com/augurlab/saturn/internal/clause"
)

// Node is one proof-DAG node: the clause it records, the inference rule
// that produced it (empty for an initial/input clause), and the
// already-resolved parent nodes.
type Node struct {
	Clause  *clause.Clause
	Rule    string
	Parents []*Node
	// Simplifications mirrors clause.Derivation.Simplifications, resolved
	// against the same clause lookup as Parents (SPEC_FULL.md's
	// supplemented proof-output detail).
	Simplifications []SimplificationRef
}

// SimplificationRef resolves a clause.SimplificationStep's simplifier ID to
// the actual clause, when available in the lookup table passed to Unwind.
type SimplificationRef struct {
	Rule       string
	Simplifier *clause.Clause
}

// Lookup resolves a clause.ID to the clause instance that produced it,
// across every set the saturation loop maintains (processed, archive,
// initial input) — callers typically back this with a single map built
// once the run concludes.
type Lookup func(id clause.ID) (*clause.Clause, bool)

// Unwind builds the full proof DAG rooted at root, resolving parent and
// simplifier references via lookup. Nodes are memoised by clause ID so a
// clause used as a parent in more than one place is not rebuilt (spec.md
// invariant 3: "a processed clause's derivation is acyclic").
func Unwind(root *clause.Clause, lookup Lookup) *Node {
	seen := make(map[clause.ID]*Node)
	return unwind(root, lookup, seen)
}

func unwind(c *clause.Clause, lookup Lookup, seen map[clause.ID]*Node) *Node {
	if n, ok := seen[c.ID]; ok {
		return n
	}
	n := &Node{Clause: c}
	seen[c.ID] = n
	if c.Derivation == nil {
		return n
	}
	n.Rule = c.Derivation.Rule
	for _, pid := range c.Derivation.Parents {
		if pc, ok := lookup(pid); ok {
			n.Parents = append(n.Parents, unwind(pc, lookup, seen))
		}
	}
	for _, step := range c.Derivation.Simplifications {
		ref := SimplificationRef{Rule: step.Rule}
		if sc, ok := lookup(step.Simplifier); ok {
			ref.Simplifier = sc
		}
		n.Simplifications = append(n.Simplifications, ref)
	}
	return n
}

// Depth returns the length of the longest parent chain reachable from n,
// i.e. the proof's derivation depth (0 for an input clause).
func Depth(n *Node) int {
	if len(n.Parents) == 0 {
		return 0
	}
	max := 0
	for _, p := range n.Parents {
		if d := Depth(p); d > max {
			max = d
		}
	}
	return max + 1
}

// Clauses returns every distinct clause reachable from n, root included, in
// no particular order — the proof's full premise set.
func Clauses(n *Node) []*clause.Clause {
	seen := make(map[clause.ID]bool)
	var out []*clause.Clause
	var walk func(*Node)
	walk = func(x *Node) {
		if seen[x.Clause.ID] {
			return
		}
		seen[x.Clause.ID] = true
		out = append(out, x.Clause)
		for _, p := range x.Parents {
			walk(p)
		}
	}
	walk(n)
	return out
}
