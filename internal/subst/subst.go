// Package subst implements the backtrackable substitution stack and the
// matching/unification algorithms of spec.md §3 ("Substitution") and §4.2.
package subst

import (
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// binding records one variable's image, in insertion order, so the stack
// can be popped back to any earlier position (spec.md: "Backtracking pops
// to a recorded stack position and clears slots.").
type binding struct {
	code  symbol.Code
	image *term.Term
}

// Subst is a backtrackable variable→term binding stack. Each variable's
// current binding is available in O(1) via slots, matching spec.md's "a
// slot in its bank" description (here, a map keyed by variable code, which
// plays the same role without requiring per-bank variable slot arrays).
type Subst struct {
	stack []binding
	slots map[symbol.Code]*term.Term
}

// New returns an empty substitution.
func New() *Subst {
	return &Subst{slots: make(map[symbol.Code]*term.Term)}
}

// Pos is an opaque stack position usable with BacktrackTo.
type Pos int

// Mark returns the current stack position.
func (s *Subst) Mark() Pos { return Pos(len(s.stack)) }

// BacktrackTo pops all bindings added since pos, clearing their slots.
func (s *Subst) BacktrackTo(pos Pos) {
	for len(s.stack) > int(pos) {
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		delete(s.slots, top.code)
	}
}

// Lookup returns the current image of code, if bound.
func (s *Subst) Lookup(code symbol.Code) (*term.Term, bool) {
	t, ok := s.slots[code]
	return t, ok
}

func (s *Subst) bind(code symbol.Code, image *term.Term) {
	s.stack = append(s.stack, binding{code: code, image: image})
	s.slots[code] = image
}

// Chase follows variable bindings in t until reaching a bound compound
// term, an unbound variable, or a constant.
func (s *Subst) Chase(t *term.Term) *term.Term {
	for t.IsVariable() {
		next, ok := s.Lookup(t.F)
		if !ok {
			return t
		}
		t = next
	}
	return t
}

// Match extends subst so that pattern·subst = target structurally. It does
// not bind variables occurring in target (spec.md §4.2). On failure, the
// substitution is restored to its entry position and Match returns false.
func Match(bank *term.Bank, pattern, target *term.Term, s *Subst) bool {
	mark := s.Mark()
	if matchRec(pattern, target, s) {
		return true
	}
	s.BacktrackTo(mark)
	return false
}

func matchRec(pattern, target *term.Term, s *Subst) bool {
	if pattern.IsVariable() {
		if bound, ok := s.Lookup(pattern.F); ok {
			return bound == target
		}
		s.bind(pattern.F, target)
		return true
	}
	if target.IsVariable() {
		return false
	}
	if pattern.F != target.F || len(pattern.Args) != len(target.Args) {
		return false
	}
	for i := range pattern.Args {
		if !matchRec(pattern.Args[i], target.Args[i], s) {
			return false
		}
	}
	return true
}

// Unify computes a most general unifier of s and t under subst, using
// Robinson-style unification with an occurs check. Arguments of compound
// terms with equal heads are unified left to right; the first mismatch
// aborts the remaining attempts (spec.md §4.2 tie-break). On failure the
// substitution is restored to its entry position.
func Unify(bank *term.Bank, a, b *term.Term, s *Subst) bool {
	mark := s.Mark()
	if unifyRec(a, b, s) {
		return true
	}
	s.BacktrackTo(mark)
	return false
}

func unifyRec(a, b *term.Term, s *Subst) bool {
	a = s.Chase(a)
	b = s.Chase(b)
	if a == b {
		return true
	}
	if a.IsVariable() {
		if occurs(a.F, b, s) {
			return false
		}
		s.bind(a.F, b)
		return true
	}
	if b.IsVariable() {
		if occurs(b.F, a, s) {
			return false
		}
		s.bind(b.F, a)
		return true
	}
	if a.F != b.F || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !unifyRec(a.Args[i], b.Args[i], s) {
			return false
		}
	}
	return true
}

func occurs(v symbol.Code, t *term.Term, s *Subst) bool {
	t = s.Chase(t)
	if t.IsVariable() {
		return t.F == v
	}
	for _, a := range t.Args {
		if occurs(v, a, s) {
			return true
		}
	}
	return false
}

// Apply returns the bank-resident term obtained by replacing each variable
// in t bound in s with its (recursively chased) image. Idempotent if s is
// idempotent; applying the empty substitution returns t unchanged (spec.md
// §8, round-trip property 6).
func Apply(bank *term.Bank, t *term.Term, s *Subst) *term.Term {
	if len(s.stack) == 0 {
		return t
	}
	return applyRec(bank, t, s)
}

func applyRec(bank *term.Bank, t *term.Term, s *Subst) *term.Term {
	if t.IsVariable() {
		img, ok := s.Lookup(t.F)
		if !ok {
			return t
		}
		return applyRec(bank, img, s)
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]*term.Term, len(t.Args))
	changed := false
	for i, a := range t.Args {
		na := applyRec(bank, a, s)
		if na != a {
			changed = true
		}
		args[i] = na
	}
	if !changed {
		return t
	}
	return bank.Insert(t.F, args...)
}
