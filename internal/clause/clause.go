// Package clause implements the clause representation of spec.md §3
// ("Clause"): a multiset of literals with a derivation record, evaluations,
// and lifecycle properties.
package clause

import (
	"strings"

	uuid "github.com/satori/go.uuid"

	"github.com/augurlab/saturn/internal/literal"
)

// Properties are per-clause lifecycle/role flags (spec.md §3).
type Properties uint16

const (
	PropInitial Properties = 1 << iota
	PropFromConjecture
	PropProcessed
	PropIsGoal
	PropDeleteMe
	PropSubsumesWatchlist
)

func (p Properties) Has(bit Properties) bool { return p&bit != 0 }

// Role mirrors the TPTP roles the clause constructor accepts (spec.md §6).
type Role int

const (
	RoleAxiom Role = iota
	RoleConjecture
	RoleNegatedConjecture
	RoleHypothesis
	RoleWatchlist
)

// Set names the partition a processed clause belongs to (spec.md §4.9).
type Set int

const (
	SetUnprocessed Set = iota
	SetPosRules
	SetPosEquations
	SetNegUnits
	SetNonUnits
	SetArchive
)

// ID uniquely identifies a clause across its lifetime, independent of
// storage location, so derivation records stay valid as clauses move
// between sets (spec.md §9's stable-handle note).
type ID = uuid.UUID

// Clause is a multiset of literals plus bookkeeping. Literals are stored as
// a slice rather than spec.md's linked list; Go slices give the same O(1)
// append/iterate behaviour with better cache locality, and nothing in the
// calculus depends on linked-list-specific aliasing.
type Clause struct {
	ID       ID
	Literals []*literal.Literal
	Weight   int
	Date     int64
	Props    Properties
	Role     Role
	Set      Set

	Derivation *Derivation

	// Evaluations holds heuristic-assigned priorities, one per configured
	// evaluation function, consulted by the saturation loop's clause
	// selection (spec.md §4, "Heuristic evaluation").
	Evaluations []int
}

// Derivation records the inference rule and parent clauses that produced a
// clause, per spec.md §3 and §6. Parents are referenced by ID, not pointer,
// so a clause can move between sets without invalidating any derivation
// record that already points to it (spec.md §9).
type Derivation struct {
	Rule    string
	Parents []ID
	// Simplifications records the forward-simplification steps (rule name
	// + simplifier clause id) a clause underwent before or after the
	// generating inference, supplementing spec.md §6's "Proof output" per
	// SPEC_FULL.md.
	Simplifications []SimplificationStep
}

// SimplificationStep is one demodulation/subsumption/simplify-reflect step
// applied to a clause.
type SimplificationStep struct {
	Rule      string
	Simplifier ID
}

// New builds a clause from lits, eliminating trivial (tautological)
// literals is the caller's responsibility (see spec.md §3 invariant: "a
// tautology is eliminated at construction time" applies to the owning
// literal, not the clause as a whole — a clause containing any positive
// l≃l literal is itself a tautology and should be discarded by the
// saturation loop, not silently rewritten here).
func New(lits []*literal.Literal, role Role) *Clause {
	c := &Clause{
		ID:       uuid.Must(uuid.NewV4()),
		Literals: lits,
		Role:     role,
	}
	c.recomputeWeight()
	if role == RoleConjecture || role == RoleNegatedConjecture {
		c.Props |= PropFromConjecture
	}
	return c
}

func (c *Clause) recomputeWeight() {
	w := 0
	for _, l := range c.Literals {
		w += l.Weight()
	}
	c.Weight = w
}

// IsEmpty reports whether c has no literals (a derived contradiction).
func (c *Clause) IsEmpty() bool { return len(c.Literals) == 0 }

// IsTautology reports whether c contains a trivially true literal (l≃l,
// positive) or complementary literal pair under Go-pointer equality (a
// ground variant; the general ordering-aware check lives in subsume).
func (c *Clause) IsTautology() bool {
	for _, l := range c.Literals {
		if l.IsTrivial() {
			return true
		}
	}
	for i := range c.Literals {
		for j := i + 1; j < len(c.Literals); j++ {
			a, b := c.Literals[i], c.Literals[j]
			if a.Sign != b.Sign && a.LHS == b.LHS && a.RHS == b.RHS {
				return true
			}
			if a.Sign != b.Sign && a.LHS == b.RHS && a.RHS == b.LHS {
				return true
			}
		}
	}
	return false
}

// PosNegCounts returns the number of positive and negative literals.
func (c *Clause) PosNegCounts() (pos, neg int) {
	for _, l := range c.Literals {
		if l.Sign {
			pos++
		} else {
			neg++
		}
	}
	return
}

// WithLiterals returns a new clause derived from c by inference, replacing
// its literal list and recording derivation.
func WithLiterals(lits []*literal.Literal, rule string, parents []ID) *Clause {
	c := New(lits, RoleAxiom)
	c.Derivation = &Derivation{Rule: rule, Parents: parents}
	return c
}

// ApplySimplification replaces c's literals in place with lits (the result
// of a demodulation, simplify-reflect, or condensation step) and records the
// step in c.Derivation.Simplifications, per SPEC_FULL.md's supplemented
// proof-output detail. Unlike WithLiterals, c's identity and generating
// derivation are preserved: a simplified clause is still "the same" clause
// for subsumption-history and back-simplification bookkeeping purposes.
func (c *Clause) ApplySimplification(lits []*literal.Literal, rule string, simplifier ID) {
	c.Literals = lits
	c.recomputeWeight()
	if c.Derivation == nil {
		c.Derivation = &Derivation{}
	}
	c.Derivation.Simplifications = append(c.Derivation.Simplifications, SimplificationStep{Rule: rule, Simplifier: simplifier})
}

// RemoveLiteralAt returns a new slice holding c's literals with the one at
// index i removed; c itself is not modified.
func RemoveLiteralAt(c *Clause, i int) []*literal.Literal {
	out := make([]*literal.Literal, 0, len(c.Literals)-1)
	out = append(out, c.Literals[:i]...)
	out = append(out, c.Literals[i+1:]...)
	return out
}

// String renders the clause as a disjunction, e.g. "f(a) ≃ b | ¬P(x)".
func (c *Clause) String(strFn func(*literal.Literal) string) string {
	if c.IsEmpty() {
		return "[]"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = strFn(l)
	}
	return strings.Join(parts, " | ")
}
