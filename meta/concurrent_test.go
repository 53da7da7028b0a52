package meta

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"
)

// TestConcurrentSearch tests that an Engine is safe for concurrent use.
// Multiple goroutines search the same Engine instance and check every
// answer, then the counters are compared with the number of searches.
func TestConcurrentSearch(t *testing.T) {
	cases := []struct {
		input string
		want  []int
	}{
		{"xaabbb", []int{1, 6, 1, 3, 3, 6}},
		{"ab", []int{0, 2, 0, 1, 1, 2}},
		{"ba", nil},
		{"", nil},
	}

	for _, strategy := range EngineStrategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			engine := compileWith(t, "(a+)(b+)", strategy)

			const numGoroutines = 50
			const numIterations = 20

			var wg sync.WaitGroup
			var failures atomic.Int64

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range numIterations {
						for _, tc := range cases {
							got, err := engine.FindSubmatchIndex(tc.input)
							if err != nil || !slices.Equal(got, tc.want) {
								failures.Add(1)
							}
						}
					}
				}()
			}
			wg.Wait()

			if n := failures.Load(); n > 0 {
				t.Errorf("%d concurrent searches returned a wrong answer", n)
			}

			s := engine.Stats()
			total := s.RecursiveSearches + s.LoopSearches + s.BacktrackSearches + s.ThompsonSearches + s.PikeVMSearches +
				s.PrefilterRejects
			if total < numGoroutines*numIterations*uint64(len(cases)) {
				t.Errorf("searches counted = %d, want at least %d", total, numGoroutines*numIterations*len(cases))
			}
		})
	}
}
