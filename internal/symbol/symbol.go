// Package symbol implements the symbol table described in spec.md §3-4.1:
// it maps identifiers to dense function codes and tracks arity, sort, and
// property flags (predicate, interpreted, AC, skolem, ...).
package symbol

import (
	"fmt"
	"sort"
)

// Code identifies a function symbol or, if negative, a variable. Variable
// codes encode sort in their low bit, per spec.md §3 ("Function symbol").
type Code int32

// IsVariable reports whether code denotes a variable rather than a function
// symbol.
func (c Code) IsVariable() bool { return c < 0 }

// Sort is an interned identifier; equality is code equality by construction
// (two Sorts obtained from the same Table for the same name are equal).
type Sort struct {
	name string
	id   int32
}

func (s Sort) String() string { return s.name }

// Predefined sorts every Table starts with.
var (
	SortIndividual = Sort{name: "$i", id: 0}
	SortBoolean    = Sort{name: "$o", id: 1}
)

// Flags are property bits attached to a function symbol.
type Flags uint16

const (
	FlagPredicate Flags = 1 << iota
	FlagAC
	FlagCommutative
	FlagSkolem
	FlagAssociative
	FlagInterpretedConstant
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Entry is the per-symbol record stored in the table.
type Entry struct {
	Code     Code
	Name     string
	Arity    int
	ArgSorts []Sort
	Result   Sort
	Flags    Flags

	// occurrences is running bookkeeping used by the feature-vector index
	// (spec_full.md §4.6) to estimate per-symbol selectivity; it is purely
	// additive and never consulted for correctness.
	posOccurrences int64
	negOccurrences int64
}

// Table interns function symbols and variables for one term bank. A Table
// is not safe for concurrent use.
type Table struct {
	byName map[string]*Entry
	byCode map[Code]*Entry
	sorts  map[string]Sort
	nextFn Code
	nextVar Code
}

// NewTable returns an empty symbol table seeded with the predefined sorts.
func NewTable() *Table {
	t := &Table{
		byName: make(map[string]*Entry),
		byCode: make(map[Code]*Entry),
		sorts:  make(map[string]Sort),
		nextFn: 1,
		nextVar: -1,
	}
	t.sorts[SortIndividual.name] = SortIndividual
	t.sorts[SortBoolean.name] = SortBoolean
	return t
}

// Sort interns a sort name, declaring it if this is the first use.
func (t *Table) Sort(name string) Sort {
	if s, ok := t.sorts[name]; ok {
		return s
	}
	s := Sort{name: name, id: int32(len(t.sorts))}
	t.sorts[name] = s
	return s
}

// Declare interns a function symbol by name, returning the existing entry if
// name was already declared and a fresh entry otherwise. The arity, sorts
// and flags of a repeated declaration are ignored: redeclaring a name with
// a different arity returns the original entry and reports no error.
func (t *Table) Declare(name string, arity int, argSorts []Sort, result Sort, flags Flags) *Entry {
	if e, ok := t.byName[name]; ok {
		return e
	}
	e := &Entry{
		Code:     t.nextFn,
		Name:     name,
		Arity:    arity,
		ArgSorts: argSorts,
		Result:   result,
		Flags:    flags,
	}
	t.byName[name] = e
	t.byCode[e.Code] = e
	t.nextFn++
	return e
}

// DeclareVariable returns the entry for a fresh variable of the given sort.
// Each call yields a distinct code.
func (t *Table) DeclareVariable(sort Sort) *Entry {
	code := t.nextVar
	t.nextVar -= 2
	if sort.id%2 != 0 {
		code--
	}
	e := &Entry{Code: code, Name: fmt.Sprintf("X%d", -code), Arity: 0, Result: sort}
	t.byCode[code] = e
	return e
}

// Lookup returns the entry for a previously declared name.
func (t *Table) Lookup(name string) (*Entry, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// ByCode returns the entry for a code, whether function symbol or variable.
func (t *Table) ByCode(c Code) (*Entry, bool) {
	e, ok := t.byCode[c]
	return e, ok
}

// Symbols returns every declared function symbol code (variables excluded),
// in a stable order, for building fixed-coordinate structures such as an
// feature.Builder.
func (t *Table) Symbols() []Code {
	out := make([]Code, 0, len(t.byName))
	for _, e := range t.byName {
		out = append(out, e.Code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RecordOccurrence updates the running positive/negative occurrence count
// used by the feature-vector index's selectivity estimate.
func (e *Entry) RecordOccurrence(positive bool) {
	if positive {
		e.posOccurrences++
	} else {
		e.negOccurrences++
	}
}

// Selectivity is a cheap proxy for how rarely this symbol occurs; lower is
// more selective. Used only to order FVI coordinates, never for soundness.
func (e *Entry) Selectivity() int64 {
	return e.posOccurrences + e.negOccurrences
}
