// Package saturate implements the given-clause saturation main loop of
// spec.md §4.9, wiring together the term bank, ordering, indices,
// simplification engine, and inference rules owned by the other internal
// packages.
package saturate

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/augurlab/saturn/internal/clause"
	"github.com/augurlab/saturn/internal/config"
	"github.com/augurlab/saturn/internal/heuristic"
	"github.com/augurlab/saturn/internal/index/feature"
	"github.com/augurlab/saturn/internal/index/fingerprint"
	"github.com/augurlab/saturn/internal/infer"
	"github.com/augurlab/saturn/internal/literal"
	"github.com/augurlab/saturn/internal/litselect"
	"github.com/augurlab/saturn/internal/order"
	"github.com/augurlab/saturn/internal/result"
	"github.com/augurlab/saturn/internal/rewrite"
	"github.com/augurlab/saturn/internal/stats"
	"github.com/augurlab/saturn/internal/subsume"
	"github.com/augurlab/saturn/internal/symbol"
	"github.com/augurlab/saturn/internal/term"
)

// Engine owns every mutable structure a saturation run touches: the
// processed/unprocessed partition, the rewrite-rule set used for
// demodulation, and the feature-vector index used for subsumption
// candidate retrieval (spec.md §4.9's State description).
type Engine struct {
	Bank   *term.Bank
	Table  *symbol.Table
	OCB    *order.OCB
	Cfg    *config.Config
	Stats  *stats.Stats
	Log    *logrus.Logger
	Scheme *heuristic.Scheme

	selector litselect.Strategy
	rewrites *rewrite.Set
	fvi      *feature.Index
	builder  *feature.Builder

	// fpInto indexes every non-variable subterm of every processed
	// clause's literals, so generate() can retrieve superposition-into
	// candidates for a query equation without scanning every processed
	// clause (spec.md §4.5, "used for paramodulation-from,
	// paramodulation-into... candidate retrieval").
	fpInto *fingerprint.Index

	Processed   []*clause.Clause
	Unprocessed []*clause.Clause
	Archive     []*clause.Clause

	byID    map[clause.ID]*clause.Clause
	byIDStr map[string]*clause.Clause
}

// New returns an Engine ready to accept initial clauses via AddInitial.
func New(bank *term.Bank, tab *symbol.Table, ocb *order.OCB, cfg *config.Config, st *stats.Stats) *Engine {
	builder := feature.NewBuilder(tab, feature.OrderBySelectivity(tab, tab.Symbols()))
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	return &Engine{
		Bank:     bank,
		Table:    tab,
		OCB:      ocb,
		Cfg:      cfg,
		Stats:    st,
		Log:      log,
		Scheme:   heuristic.NewScheme(heuristic.Slot{Eval: heuristic.ByName(cfg.ExpertHeuristic), Share: 1}),
		selector: litselect.ByName(cfg.LiteralSelectionStrategy),
		rewrites: rewrite.NewSet(ocb),
		fvi:      feature.New(builder),
		builder:  builder,
		fpInto:   fingerprint.New(nil),
		byID:     make(map[clause.ID]*clause.Clause),
		byIDStr:  make(map[string]*clause.Clause),
	}
}

// AddInitial seeds the unprocessed set with the input clauses, per spec.md
// §4.9's initial state (every input clause starts life unprocessed).
func (e *Engine) AddInitial(clauses ...*clause.Clause) {
	for _, c := range clauses {
		c.Literals = e.selector(e.OCB, c.Literals)
		e.register(c)
		e.Unprocessed = append(e.Unprocessed, c)
	}
}

func (e *Engine) register(c *clause.Clause) {
	e.byID[c.ID] = c
	e.byIDStr[c.ID.String()] = c
}

// Lookup resolves a clause ID to the clause instance, across every set this
// engine has ever held, for use by derivation.Unwind.
func (e *Engine) Lookup(id clause.ID) (*clause.Clause, bool) {
	c, ok := e.byID[id]
	return c, ok
}

func (e *Engine) walkFingerprint(visit func(t *term.Term, litIdx, side int, path []int), litIdx, side int, path []int, t *term.Term) {
	if !t.IsVariable() {
		visit(t, litIdx, side, append([]int(nil), path...))
	}
	for i, a := range t.Args {
		e.walkFingerprint(visit, litIdx, side, append(path, i), a)
	}
}

func (e *Engine) registerInto(c *clause.Clause) {
	cid := c.ID.String()
	for i, l := range c.Literals {
		e.walkFingerprint(func(t *term.Term, litIdx, side int, path []int) {
			e.fpInto.Insert(t, cid, litIdx, side, path)
		}, i, 0, nil, l.LHS)
		e.walkFingerprint(func(t *term.Term, litIdx, side int, path []int) {
			e.fpInto.Insert(t, cid, litIdx, side, path)
		}, i, 1, nil, l.RHS)
	}
}

func (e *Engine) unregisterInto(c *clause.Clause) {
	cid := c.ID.String()
	for i, l := range c.Literals {
		e.walkFingerprint(func(t *term.Term, litIdx, side int, path []int) {
			e.fpInto.Remove(t, cid, litIdx, side, path)
		}, i, 0, nil, l.LHS)
		e.walkFingerprint(func(t *term.Term, litIdx, side int, path []int) {
			e.fpInto.Remove(t, cid, litIdx, side, path)
		}, i, 1, nil, l.RHS)
	}
}

func (e *Engine) normalizeOnce(lits []*literal.Literal) ([]*literal.Literal, bool) {
	out := make([]*literal.Literal, len(lits))
	changed := false
	for i, l := range lits {
		newLHS, ch1 := e.rewrites.Normalize(e.Bank, l.LHS)
		newRHS, ch2 := e.rewrites.Normalize(e.Bank, l.RHS)
		if ch1 || ch2 {
			changed = true
			e.Stats.Rewrite()
			out[i] = literal.New(newLHS, newRHS, l.Sign)
		} else {
			out[i] = l
		}
	}
	return out, changed
}

func (e *Engine) positiveUnits() []*literal.Literal {
	var out []*literal.Literal
	for _, p := range e.Processed {
		if len(p.Literals) == 1 && p.Literals[0].Sign {
			out = append(out, p.Literals[0])
		}
	}
	return out
}

// dropFalsehoods removes every unconditionally-false literal (s≄s) from
// lits: it is never satisfiable as a disjunct, so keeping it around only
// blocks the clause's tautology/empty checks from seeing what the rest of
// the clause actually reduces to. This is the simplifying counterpart to
// literal.IsTrivial's positive case, applied without the ordering
// eligibility gate a generating equality-resolution inference would need.
func dropFalsehoods(lits []*literal.Literal) ([]*literal.Literal, bool) {
	changed := false
	for _, l := range lits {
		if l.IsFalsehood() {
			changed = true
			break
		}
	}
	if !changed {
		return lits, false
	}
	out := make([]*literal.Literal, 0, len(lits))
	for _, l := range lits {
		if !l.IsFalsehood() {
			out = append(out, l)
		}
	}
	return out, true
}

func (e *Engine) forwardSubsumed(c *clause.Clause) bool {
	v := e.builder.Vector(c)
	for _, cand := range e.fvi.CandidatesForForwardSubsumption(v) {
		if cand.ID == c.ID {
			continue
		}
		e.Stats.Subsumption()
		if subsume.Subsumes(e.Bank, cand, c) {
			return true
		}
	}
	return false
}

// forwardSimplify rewrites c against the processed rewrite set and unit
// equations to a fixpoint, discarding it if it becomes a tautology or is
// forward-subsumed by an already-processed clause (spec.md §4.9 step 2).
// Reports whether c survives.
func (e *Engine) forwardSimplify(c *clause.Clause) bool {
	for {
		progressed := false
		if lits, changed := e.normalizeOnce(c.Literals); changed {
			c.ApplySimplification(lits, "demodulation", clause.ID{})
			progressed = true
		}
		if lits, changed := dropFalsehoods(c.Literals); changed {
			c.ApplySimplification(lits, "reflexivity_resolution", clause.ID{})
			progressed = true
		}
		if e.Cfg.ForwardContextSR {
			if lits, changed := subsume.SimplifyReflect(e.Bank, e.positiveUnits(), c.Literals); changed {
				c.ApplySimplification(lits, "simplify_reflect", clause.ID{})
				progressed = true
			}
		}
		if e.Cfg.EnableCondensation {
			if lits, changed := subsume.Condense(e.Bank, c.Literals); changed {
				c.ApplySimplification(lits, "condensation", clause.ID{})
				progressed = true
			}
		}
		if c.IsTautology() {
			return false
		}
		if !progressed {
			break
		}
	}
	return !e.forwardSubsumed(c)
}

// backSimplify uses g — if it is an orientable unit equation — as a new
// demodulator against every processed clause, uses g's positive unit
// equation (orientable or not) to contextually simplify-reflect processed
// clauses' negative literals when BackwardContextSR is enabled, and uses g
// directly to check backward subsumption, per spec.md §4.9 step 4.
// Rewritten/reflected clauses return to unprocessed for re-evaluation;
// subsumed clauses move to the archive.
func (e *Engine) backSimplify(g *clause.Clause) {
	addedRule := false
	var backUnit []*literal.Literal
	if len(g.Literals) == 1 && g.Literals[0].Sign {
		backUnit = g.Literals[:1]
		oriented := g.Literals[0].Orient(e.OCB)
		if oriented.Props.Has(literal.PropOriented) {
			date := e.Bank.BumpDate()
			e.rewrites.AddRule(g.ID.String(), oriented.LHS, oriented.RHS, true, date)
			addedRule = true
		}
	}

	survivors := e.Processed[:0]
	for _, p := range e.Processed {
		e.Stats.Subsumption()
		if subsume.Subsumes(e.Bank, g, p) {
			e.fvi.Remove(p)
			e.unregisterInto(p)
			e.Archive = append(e.Archive, p)
			continue
		}
		if addedRule {
			if lits, changed := e.normalizeOnce(p.Literals); changed {
				e.fvi.Remove(p)
				e.unregisterInto(p)
				p.ApplySimplification(lits, "back_demodulation", g.ID)
				e.Unprocessed = append(e.Unprocessed, p)
				continue
			}
		}
		if e.Cfg.BackwardContextSR && backUnit != nil {
			if lits, changed := subsume.SimplifyReflect(e.Bank, backUnit, p.Literals); changed {
				e.fvi.Remove(p)
				e.unregisterInto(p)
				p.ApplySimplification(lits, "simplify_reflect", g.ID)
				e.Unprocessed = append(e.Unprocessed, p)
				continue
			}
		}
		survivors = append(survivors, p)
	}
	e.Processed = survivors
}

func (e *Engine) renameClause(c *clause.Clause) *clause.Clause {
	lits := infer.RenameApart(e.Bank, e.Table, c.Literals)
	rc := clause.New(lits, c.Role)
	rc.ID = c.ID
	return rc
}

// generate produces every child obtainable from g by superposition with a
// processed clause, equality factoring within g, and equality resolution on
// g, per spec.md §4.9 step 6. The "g supplies the equation" direction is
// driven by fpInto candidate retrieval rather than a scan of every
// processed clause (spec.md §4.5); the reverse direction iterates g's
// literals directly since g is a single clause.
func (e *Engine) generate(g *clause.Clause) []*clause.Clause {
	var out []*clause.Clause

	gFrom := e.renameClause(g)
	for i, l := range gFrom.Literals {
		if !l.Sign {
			continue
		}
		records := e.fpInto.Candidates(l.MaximalSide(e.OCB), fingerprint.Unify)
		e.Stats.FPRetrieval()
		tried := make(map[string]bool)
		for _, rec := range records {
			key := rec.ClauseID + "#" + strconv.Itoa(rec.LitIdx)
			if tried[key] {
				continue
			}
			tried[key] = true
			p, ok := e.byIDStr[rec.ClauseID]
			if !ok || p.ID == g.ID {
				continue
			}
			out = append(out, infer.Superposition(e.Bank, e.OCB, gFrom, i, p, rec.LitIdx)...)
		}
	}

	for _, p := range e.Processed {
		if p.ID == g.ID {
			continue
		}
		pFrom := e.renameClause(p)
		for i, l := range pFrom.Literals {
			if !l.Sign {
				continue
			}
			for j := range g.Literals {
				out = append(out, infer.Superposition(e.Bank, e.OCB, pFrom, i, g, j)...)
			}
		}
	}

	for i := range g.Literals {
		for j := i + 1; j < len(g.Literals); j++ {
			if c := infer.EqualityFactoring(e.Bank, e.OCB, g, i, j); c != nil {
				out = append(out, c)
			}
		}
	}

	for i, l := range g.Literals {
		if l.Sign {
			continue
		}
		if c := infer.EqualityResolution(e.Bank, e.OCB, g, i); c != nil {
			out = append(out, c)
		}
	}

	for range out {
		e.Stats.ClauseGenerated()
	}
	return out
}

func (e *Engine) selectGiven() *clause.Clause {
	eval := e.Scheme.Next()
	best := heuristic.Best(e.Unprocessed, eval)
	for i, c := range e.Unprocessed {
		if c.ID == best.ID {
			e.Unprocessed = append(e.Unprocessed[:i], e.Unprocessed[i+1:]...)
			break
		}
	}
	return best
}

func (e *Engine) snapshot() (int, int) {
	return len(e.Processed), int(e.Stats.Snapshot().ClausesGenerated)
}

// Run executes the given-clause loop until it derives the empty clause,
// exhausts the unprocessed set, or ctx is cancelled (spec.md §4.9,
// "Termination conditions"; §5, "soft-timeout and hard-timeout are honoured
// between iterations").
func (e *Engine) Run(ctx context.Context) (*result.Result, error) {
	for {
		select {
		case <-ctx.Done():
			processed, generated := e.snapshot()
			return &result.Result{Outcome: result.ResourceOut, ProcessedCount: processed, GeneratedCount: generated}, nil
		default:
		}

		if e.Cfg.ProcessedClausesLimit > 0 && int64(len(e.Processed)) >= e.Cfg.ProcessedClausesLimit {
			processed, generated := e.snapshot()
			return &result.Result{Outcome: result.ResourceOut, ProcessedCount: processed, GeneratedCount: generated}, nil
		}
		if e.Cfg.TotalClauseSetLimit > 0 && int64(len(e.Processed)+len(e.Unprocessed)) >= e.Cfg.TotalClauseSetLimit {
			processed, generated := e.snapshot()
			return &result.Result{Outcome: result.ResourceOut, ProcessedCount: processed, GeneratedCount: generated}, nil
		}

		if len(e.Unprocessed) == 0 {
			outcome := result.Saturated
			if e.Cfg.DestructiveER {
				outcome = result.Incomplete
			}
			processed, generated := e.snapshot()
			e.Log.WithField("outcome", outcome.String()).Info("unprocessed exhausted")
			return &result.Result{Outcome: outcome, ProcessedCount: processed, GeneratedCount: generated}, nil
		}

		g := e.selectGiven()
		if !e.forwardSimplify(g) {
			e.Stats.ClauseDiscarded()
			continue
		}
		if g.IsEmpty() {
			e.Stats.ClauseProcessed()
			processed, generated := e.snapshot()
			return &result.Result{Outcome: result.ProofFound, Refutation: g, ProcessedCount: processed + 1, GeneratedCount: generated}, nil
		}

		e.backSimplify(g)
		g.Literals = e.selector(e.OCB, g.Literals)
		e.Processed = append(e.Processed, g)
		e.fvi.Insert(g)
		e.registerInto(g)
		e.register(g)
		e.Stats.ClauseProcessed()
		e.Log.WithFields(logrus.Fields{"clause": g.ID.String(), "weight": g.Weight}).Debug("processed given clause")

		for _, child := range e.generate(g) {
			e.register(child)
			if !e.forwardSimplify(child) {
				e.Stats.ClauseDiscarded()
				continue
			}
			if child.IsEmpty() {
				processed, generated := e.snapshot()
				return &result.Result{Outcome: result.ProofFound, Refutation: child, ProcessedCount: processed, GeneratedCount: generated}, nil
			}
			e.Unprocessed = append(e.Unprocessed, child)
		}
	}
}
