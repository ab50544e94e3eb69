// Package term implements the shared term representation of spec.md §3-4.1:
// a hash-consed DAG of terms, owned by a Bank, with cached weight/size and a
// rewrite timestamp used to skip re-testing terms against stale demodulators.
package term

import (
	"fmt"

	"github.com/mitchellh/hashstructure"

	"github.com/augurlab/saturn/internal/symbol"
)

// RWDate is a monotonically increasing generation counter. Each processed
// rewrite-rule set bumps its own date on insertion; each term records the
// last date it was tested against, so the rewrite engine can skip terms
// already known normal w.r.t. the current rule set (spec.md §3, §4.7).
type RWDate uint64

// Term is a DAG node. Two terms from the same Bank are structurally equal
// iff they are the same pointer (the hash-consing invariant, spec.md §3).
type Term struct {
	F        symbol.Code
	Args     []*Term
	Weight   int
	Size     int
	RWDate   RWDate
	hash     uint64 // hash-consing bucket key, not identity
}

// IsVariable reports whether this term is a bank-resident variable.
func (t *Term) IsVariable() bool { return t.F.IsVariable() }

// Arity returns len(Args).
func (t *Term) Arity() int { return len(t.Args) }

// String renders the term using sym to resolve names; falls back to the raw
// code if sym is nil or the code is unknown.
func (t *Term) String(tab *symbol.Table) string {
	name := fmt.Sprintf("#%d", t.F)
	if tab != nil {
		if e, ok := tab.ByCode(t.F); ok {
			name = e.Name
		}
	}
	if len(t.Args) == 0 {
		return name
	}
	s := name + "("
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String(tab)
	}
	return s + ")"
}

// bucketKey is hashed to produce a term's hash-consing bucket. It carries
// each argument's identity hash rather than the argument *Term itself:
// hashstructure would otherwise deep-hash every exported field it finds by
// reflection, including RWDate, which the rewrite engine mutates in place
// on already-bank-resident nodes. Keying on RWDate would let an existing
// term's bucket key change after rewriting, breaking the hash-consing
// invariant that a pointer-equal lookup always finds it again.
type bucketKey struct {
	F    symbol.Code
	Args []uint64
}

// Bank is a hash-consed arena of terms. Terms live as long as the Bank;
// there is no individual term deallocation (spec.md §9's arena-allocation
// re-architecture). A Bank is not safe for concurrent use (spec.md §4.1).
type Bank struct {
	Table     *symbol.Table
	buckets   map[uint64][]*Term
	variables map[symbol.Code]*Term
	currentDate RWDate
	weightFn  func(symbol.Code) int
}

// NewBank returns an empty term bank backed by table. Terms are weighted
// uniformly (weight 1 per symbol occurrence) until SetWeightFunc installs a
// per-symbol weight table (normally done once, before any term relevant to
// ordering comparisons is inserted, by passing the OCB's
// order.OCB.WeightFunc — see invariant 1 in spec.md §8).
func NewBank(table *symbol.Table) *Bank {
	return &Bank{
		Table:     table,
		buckets:   make(map[uint64][]*Term),
		variables: make(map[symbol.Code]*Term),
	}
}

// SetWeightFunc installs fn as the per-symbol weight function used for
// terms inserted from this point forward. It does not retroactively
// reweight already-cached terms.
func (b *Bank) SetWeightFunc(fn func(symbol.Code) int) {
	b.weightFn = fn
}

// Date returns the bank's current rewrite generation.
func (b *Bank) Date() RWDate { return b.currentDate }

// BumpDate advances the bank's rewrite generation and returns the new
// value. The saturation loop calls it once per rewrite-rule insertion.
func (b *Bank) BumpDate() RWDate {
	b.currentDate++
	return b.currentDate
}

// identityHash returns a's hash-consing identity: its own immutable bucket
// hash for a function term (computed once at allocation, from F and
// argument identity alone — never from RWDate), or a stable per-code hash
// for a variable, which has no bucket hash of its own.
func identityHash(a *Term) uint64 {
	if a.IsVariable() {
		h, err := hashstructure.Hash(struct{ Variable symbol.Code }{a.F}, nil)
		if err != nil {
			return uint64(a.F)
		}
		return h
	}
	return a.hash
}

func hashBucket(f symbol.Code, args []*Term) uint64 {
	argHashes := make([]uint64, len(args))
	for i, a := range args {
		argHashes[i] = identityHash(a)
	}
	h, err := hashstructure.Hash(bucketKey{F: f, Args: argHashes}, nil)
	if err != nil {
		// hashstructure only fails on unsupported types; bucketKey is
		// always a Code plus a []uint64, so this can't happen with
		// well-formed callers. Fall back to a degenerate bucket rather
		// than panicking mid-insert.
		return uint64(f)
	}
	return h
}

// Insert canonicalises args (they must already be bank-resident) and
// returns the unique bank-resident term for (f, args), allocating one if
// absent.
func (b *Bank) Insert(f symbol.Code, args ...*Term) *Term {
	key := hashBucket(f, args)
	for _, cand := range b.buckets[key] {
		if cand.F == f && sameArgs(cand.Args, args) {
			return cand
		}
	}
	t := &Term{F: f, Args: append([]*Term(nil), args...), hash: key}
	t.Size = 1
	t.Weight = b.symbolWeight(f)
	for _, a := range args {
		t.Size += a.Size
		t.Weight += a.Weight
	}
	b.buckets[key] = append(b.buckets[key], t)
	return t
}

func sameArgs(a, c []*Term) bool {
	if len(a) != len(c) {
		return false
	}
	for i := range a {
		if a[i] != c[i] {
			return false
		}
	}
	return true
}

func (b *Bank) symbolWeight(f symbol.Code) int {
	if f.IsVariable() {
		return 1
	}
	if b.weightFn != nil {
		return b.weightFn(f)
	}
	return 1
}

// InsertVariable returns the unique variable term for code within this
// bank, allocating it on first use.
func (b *Bank) InsertVariable(code symbol.Code) *Term {
	if t, ok := b.variables[code]; ok {
		return t
	}
	t := &Term{F: code, Weight: 1, Size: 1}
	b.variables[code] = t
	return t
}

// CopyInto recursively inserts term (which may belong to a different Bank)
// into dst, returning the dst-resident equivalent. Used for cross-bank
// transport of substitutions and renamed clauses.
func CopyInto(dst *Bank, term *Term) *Term {
	if term.IsVariable() {
		return dst.InsertVariable(term.F)
	}
	if len(term.Args) == 0 {
		return dst.Insert(term.F)
	}
	args := make([]*Term, len(term.Args))
	for i, a := range term.Args {
		args[i] = CopyInto(dst, a)
	}
	return dst.Insert(term.F, args...)
}

// Walk calls visit for term and every subterm, pre-order.
func Walk(t *Term, visit func(*Term)) {
	visit(t)
	for _, a := range t.Args {
		Walk(a, visit)
	}
}

// Variables returns the set of distinct variable codes occurring in t.
func Variables(t *Term) map[symbol.Code]*Term {
	out := make(map[symbol.Code]*Term)
	Walk(t, func(u *Term) {
		if u.IsVariable() {
			out[u.F] = u
		}
	})
	return out
}

// VariableMultiset counts occurrences of each variable in t, needed by KBO's
// variable-count-domination check (spec.md §4.3).
func VariableMultiset(t *Term) map[symbol.Code]int {
	out := make(map[symbol.Code]int)
	Walk(t, func(u *Term) {
		if u.IsVariable() {
			out[u.F]++
		}
	})
	return out
}
