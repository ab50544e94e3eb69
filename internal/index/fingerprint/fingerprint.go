// Package fingerprint implements the fingerprint index of spec.md §3 and
// §4.5: terms are indexed by a fixed-shape positional signature (a
// fingerprint), and two fingerprints are compatible for unification or
// matching according to a precomputed compatibility table.
package fingerprint

import (
	"github.com/cespare/xxhash"

	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// Entry is one value of a fingerprint tuple at a fixed position.
type Entry int8

const (
	EntryNotPresent Entry = iota // position is below a leaf (term too shallow)
	EntryVariable                // position holds a variable
	EntryBelowVariable           // position is strictly below a variable
	entryFunctionBase            // function codes are encoded as entryFunctionBase+code
)

func functionEntry(c symbol.Code) Entry {
	return entryFunctionBase + Entry(c)
}

// Position is a path into a term (sequence of 0-based argument indices),
// e.g. [] for the root, [0] for the first argument, [0,1] for that
// argument's second argument.
type Position []int

// DefaultPositions is a representative position set, "ε, 1, 2, 1.1, 1.2,
// 2.1, 2.2" per spec.md §4.5.
var DefaultPositions = []Position{
	{}, {0}, {1}, {0, 0}, {0, 1}, {1, 0}, {1, 1},
}

// Key is the fingerprint tuple for one term under a fixed position set.
type Key []Entry

func at(t *term.Term, pos Position) Entry {
	cur := t
	for _, idx := range pos {
		if cur.IsVariable() {
			return EntryBelowVariable
		}
		if idx >= len(cur.Args) {
			return EntryNotPresent
		}
		cur = cur.Args[idx]
	}
	if cur.IsVariable() {
		return EntryVariable
	}
	return functionEntry(cur.F)
}

// Fingerprint computes t's fingerprint under positions.
func Fingerprint(t *term.Term, positions []Position) Key {
	k := make(Key, len(positions))
	for i, p := range positions {
		k[i] = at(t, p)
	}
	return k
}

// compatibleEntry reports whether indexed (an indexed key entry) and query
// (a query key entry) are compatible for mode at one coordinate.
func compatibleEntry(indexed, query Entry, mode Mode) bool {
	if indexed == query {
		return true
	}
	switch mode {
	case Unify:
		// A variable on either side can unify with anything; a
		// below-variable position imposes no constraint since the real
		// subterm there is unknown until instantiated.
		if indexed == EntryVariable || query == EntryVariable {
			return true
		}
		if indexed == EntryBelowVariable || query == EntryBelowVariable {
			return true
		}
		return false
	case MatchGeneralizations:
		// Indexed term must be a generalisation of the query: indexed
		// variable matches anything; indexed concrete function must equal
		// query's (already excluded by indexed==query check above).
		if indexed == EntryVariable || indexed == EntryBelowVariable {
			return true
		}
		return false
	case MatchInstances:
		// Indexed term must be an instance of the query: query variable
		// matches anything indexed.
		if query == EntryVariable || query == EntryBelowVariable {
			return true
		}
		return false
	}
	return false
}

// Mode selects the retrieval semantics (spec.md §4.5).
type Mode int

const (
	Unify Mode = iota
	MatchGeneralizations
	MatchInstances
)

// Compatible reports whether indexed and query keys are compatible for
// mode, applying compatibleEntry coordinate-wise.
func Compatible(indexed, query Key, mode Mode) bool {
	if len(indexed) != len(query) {
		return false
	}
	for i := range indexed {
		if !compatibleEntry(indexed[i], query[i], mode) {
			return false
		}
	}
	return true
}

// Record is one indexed term occurrence.
type Record struct {
	Term     *term.Term
	ClauseID string
	LitIdx   int
	Side     int
	Path     []int
	hash     uint64
}

// Index maps fingerprint keys (with function codes collapsed, see
// keyString) to the records stored under them. Each record carries an
// xxhash of its occurrence coordinates (clause id, literal index, side,
// path), which Remove uses to find the records to drop; Candidates does no
// deduplication.
type Index struct {
	positions []Position
	buckets   map[string][]*Record
}

// New returns an empty fingerprint index over positions (DefaultPositions
// if nil).
func New(positions []Position) *Index {
	if positions == nil {
		positions = DefaultPositions
	}
	return &Index{positions: positions, buckets: make(map[string][]*Record)}
}

func keyString(k Key) string {
	buf := make([]byte, len(k))
	for i, e := range k {
		buf[i] = byte(e)
		if e >= entryFunctionBase {
			// collapse to a representative byte per bucket granularity;
			// full disambiguation happens via the stored Term pointer.
			buf[i] = byte(entryFunctionBase)
		}
	}
	return string(buf)
}

// dedupHash produces a cheap per-record key from the occurrence's clause id,
// literal index, side and path, using xxhash; the term itself is not hashed.
func dedupHash(t *term.Term, clauseID string, litIdx, side int, path []int) uint64 {
	h := xxhash.New()
	_, _ = h.Write([]byte(clauseID))
	_, _ = h.Write([]byte{byte(litIdx), byte(side)})
	for _, p := range path {
		_, _ = h.Write([]byte{byte(p)})
	}
	return h.Sum64()
}

// Insert adds one occurrence of t to the index.
func (idx *Index) Insert(t *term.Term, clauseID string, litIdx, side int, path []int) {
	k := Fingerprint(t, idx.positions)
	ks := keyString(k)
	r := &Record{
		Term: t, ClauseID: clauseID, LitIdx: litIdx, Side: side, Path: path,
		hash: dedupHash(t, clauseID, litIdx, side, path),
	}
	idx.buckets[ks] = append(idx.buckets[ks], r)
}

// Remove deletes every record matching the given occurrence coordinates.
func (idx *Index) Remove(t *term.Term, clauseID string, litIdx, side int, path []int) {
	k := Fingerprint(t, idx.positions)
	ks := keyString(k)
	h := dedupHash(t, clauseID, litIdx, side, path)
	recs := idx.buckets[ks]
	out := recs[:0]
	for _, r := range recs {
		if r.hash != h {
			out = append(out, r)
		}
	}
	idx.buckets[ks] = out
}

// Candidates returns every stored record whose key is compatible with
// query's fingerprint under mode. This is a coarse filter: callers must
// still perform the exact unify/match check on the candidate term (spec.md
// §4.5, "then perform the exact operation on the candidate term").
func (idx *Index) Candidates(query *term.Term, mode Mode) []*Record {
	qk := Fingerprint(query, idx.positions)
	var out []*Record
	for bucketKey, recs := range idx.buckets {
		ik := decodeBucketKey(bucketKey)
		if bucketKeyCompatible(ik, qk, mode) {
			out = append(out, recs...)
		}
	}
	return out
}

// decodeBucketKey and bucketKeyCompatible exist because keyString
// collapses all function codes to one representative byte for bucketing
// (the exact function code is re-checked by the caller's exact match, so
// the coarser bucket key only needs to preserve the
// variable/below-variable/not-present/function distinction).
func decodeBucketKey(s string) Key {
	k := make(Key, len(s))
	for i := range s {
		k[i] = Entry(s[i])
	}
	return k
}

func bucketKeyCompatible(indexed, query Key, mode Mode) bool {
	if len(indexed) != len(query) {
		return false
	}
	for i := range indexed {
		iv := indexed[i]
		qv := query[i]
		// Any indexed entry >= entryFunctionBase was collapsed to the
		// representative value; treat the query's function entries as
		// needing only "indexed is some function" at the bucket stage.
		if iv >= entryFunctionBase {
			iv = entryFunctionBase
		}
		qvCollapsed := qv
		if qvCollapsed >= entryFunctionBase {
			qvCollapsed = entryFunctionBase
		}
		if !bucketCompatible(iv, qvCollapsed, mode) {
			return false
		}
	}
	return true
}

func bucketCompatible(indexed, query Entry, mode Mode) bool {
	if indexed == query {
		return true
	}
	switch mode {
	case Unify:
		return indexed == EntryVariable || query == EntryVariable ||
			indexed == EntryBelowVariable || query == EntryBelowVariable
	case MatchGeneralizations:
		return indexed == EntryVariable || indexed == EntryBelowVariable
	case MatchInstances:
		return query == EntryVariable || query == EntryBelowVariable
	}
	return false
}
