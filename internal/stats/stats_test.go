package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersIncrementIndependently(t *testing.T) {
	var s Stats
	s.ClauseProcessed()
	s.ClauseProcessed()
	s.ClauseGenerated()
	s.Subsumption()

	require.EqualValues(t, 2, s.ClausesProcessed)
	require.EqualValues(t, 1, s.ClausesGenerated)
	require.EqualValues(t, 0, s.ClausesDiscarded)
	require.EqualValues(t, 1, s.SubsumptionChecks)
}

func TestSnapshotIsAnIndependentCopy(t *testing.T) {
	var s Stats
	s.Rewrite()
	snap := s.Snapshot()
	s.Rewrite()

	require.EqualValues(t, 1, snap.RewriteSteps)
	require.EqualValues(t, 2, s.RewriteSteps)
}

func TestConcurrentIncrementsAreRaceFree(t *testing.T) {
	var s Stats
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Unification()
		}()
	}
	wg.Wait()
	require.EqualValues(t, 100, s.UnificationAttempts)
}
