// Package stats carries the process-wide counters the original prover kept
// as C globals (subsumption calls, unification steps, ordering depth-limit
// hits, index retrieval counts). Here they live in a single value threaded
// through the saturation context, per spec.md §9's re-architecture note.
package stats

import "sync/atomic"

// Stats accumulates counters for one saturation run. All fields are updated
// with atomics so a Stats value can be read concurrently with a running
// saturation loop (e.g. for a progress monitor), even though the loop
// itself is single-threaded.
type Stats struct {
	ClausesProcessed   int64
	ClausesGenerated   int64
	ClausesDiscarded   int64
	UnificationAttempts int64
	MatchAttempts      int64
	SubsumptionChecks  int64
	RewriteSteps       int64
	OrderingDepthCapHits int64
	PDTRetrievals      int64
	FPRetrievals       int64
	FVIRetrievals      int64
}

func (s *Stats) incr(p *int64) { atomic.AddInt64(p, 1) }

func (s *Stats) ClauseProcessed()    { s.incr(&s.ClausesProcessed) }
func (s *Stats) ClauseGenerated()    { s.incr(&s.ClausesGenerated) }
func (s *Stats) ClauseDiscarded()    { s.incr(&s.ClausesDiscarded) }
func (s *Stats) Unification()        { s.incr(&s.UnificationAttempts) }
func (s *Stats) Match()              { s.incr(&s.MatchAttempts) }
func (s *Stats) Subsumption()        { s.incr(&s.SubsumptionChecks) }
func (s *Stats) Rewrite()            { s.incr(&s.RewriteSteps) }
func (s *Stats) OrderingDepthCapHit() { s.incr(&s.OrderingDepthCapHits) }
func (s *Stats) PDTRetrieval()       { s.incr(&s.PDTRetrievals) }
func (s *Stats) FPRetrieval()        { s.incr(&s.FPRetrievals) }
func (s *Stats) FVIRetrieval()       { s.incr(&s.FVIRetrievals) }

// Snapshot returns a copy safe to log or print without racing further
// updates.
func (s *Stats) Snapshot() Stats {
	return Stats{
		ClausesProcessed:     atomic.LoadInt64(&s.ClausesProcessed),
		ClausesGenerated:     atomic.LoadInt64(&s.ClausesGenerated),
		ClausesDiscarded:     atomic.LoadInt64(&s.ClausesDiscarded),
		UnificationAttempts:  atomic.LoadInt64(&s.UnificationAttempts),
		MatchAttempts:        atomic.LoadInt64(&s.MatchAttempts),
		SubsumptionChecks:    atomic.LoadInt64(&s.SubsumptionChecks),
		RewriteSteps:         atomic.LoadInt64(&s.RewriteSteps),
		OrderingDepthCapHits: atomic.LoadInt64(&s.OrderingDepthCapHits),
		PDTRetrievals:        atomic.LoadInt64(&s.PDTRetrievals),
		FPRetrievals:         atomic.LoadInt64(&s.FPRetrievals),
		FVIRetrievals:        atomic.LoadInt64(&s.FVIRetrievals),
	}
}
