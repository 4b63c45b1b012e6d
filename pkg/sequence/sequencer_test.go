package sequence

import (
	"sort"
	"sync"
	"testing"
)

func TestNextIsStrictlyIncreasing(t *testing.T) {
	s := NewSequencer(0)
	if s.Current() != 0 {
		t.Fatalf("Current=%d want 0", s.Current())
	}
	prev := uint64(0)
	for i := 0; i < 100; i++ {
		n := s.Next()
		if n <= prev {
			t.Fatalf("Next=%d not greater than %d", n, prev)
		}
		prev = n
	}
	if s.Current() != 100 {
		t.Fatalf("Current=%d want 100", s.Current())
	}
}

func TestNewSequencerStart(t *testing.T) {
	s := NewSequencer(41)
	if n := s.Next(); n != 42 {
		t.Fatalf("Next=%d want 42", n)
	}
}

func TestConcurrentNextUnique(t *testing.T) {
	s := NewSequencer(0)

	const workers = 32
	const perWorker = 1000
	results := make([][]uint64, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			ids := make([]uint64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				ids = append(ids, s.Next())
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	all := make([]uint64, 0, workers*perWorker)
	for _, ids := range results {
		// 單一呼叫者看到的序號一定遞增
		for i := 1; i < len(ids); i++ {
			if ids[i] <= ids[i-1] {
				t.Fatalf("per-caller order broken: %d after %d", ids[i], ids[i-1])
			}
		}
		all = append(all, ids...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	for i := 1; i < len(all); i++ {
		if all[i] == all[i-1] {
			t.Fatalf("duplicate id %d", all[i])
		}
	}
	if got := s.Current(); got != workers*perWorker {
		t.Fatalf("Current=%d want %d", got, workers*perWorker)
	}
}
