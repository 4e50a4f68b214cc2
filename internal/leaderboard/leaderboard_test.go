package leaderboard

import (
	"fmt"
	"sync"
	"testing"
)

func TestSubmitRanksDescending(t *testing.T) {
	s := NewStore()
	s.Submit("alice", 120)
	s.Submit("bob", 400)
	s.Submit("carol", 250)

	top := s.Top(3)
	want := []Entry{{"bob", 400}, {"carol", 250}, {"alice", 120}}
	for i, e := range want {
		if top[i] != e {
			t.Errorf("rank %d = %+v, want %+v", i+1, top[i], e)
		}
	}
}

func TestEqualScoresKeepSubmissionOrder(t *testing.T) {
	s := NewStore()
	s.Submit("first", 100)
	s.Submit("second", 100)
	s.Submit("third", 100)

	top := s.Top(3)
	for i, name := range []string{"first", "second", "third"} {
		if top[i].Name != name {
			t.Errorf("rank %d = %q, want %q", i+1, top[i].Name, name)
		}
	}
}

func TestNegativeScoreRejected(t *testing.T) {
	s := NewStore()
	s.Submit("cheater", -5)
	if s.Len() != 0 {
		t.Errorf("store has %d entries after negative submit, want 0", s.Len())
	}

	s.Submit("honest", 0)
	if s.Len() != 1 {
		t.Errorf("zero score rejected; store has %d entries, want 1", s.Len())
	}
}

func TestCapDropsLowestScores(t *testing.T) {
	s := NewStore()
	for i := 0; i <= MaxEntries; i++ {
		s.Submit(fmt.Sprintf("p%d", i), i)
	}

	if s.Len() != MaxEntries {
		t.Fatalf("store has %d entries, want cap %d", s.Len(), MaxEntries)
	}
	top := s.Top(MaxEntries)
	if top[len(top)-1].Score != 1 {
		t.Errorf("lowest retained score = %d, want 1 (score 0 evicted)", top[len(top)-1].Score)
	}
}

func TestTopBounds(t *testing.T) {
	s := NewStore()
	s.Submit("only", 10)

	if got := s.Top(5); len(got) != 1 {
		t.Errorf("Top(5) on 1 entry returned %d entries", len(got))
	}
	if got := s.Top(0); len(got) != 0 {
		t.Errorf("Top(0) returned %d entries", len(got))
	}
}

func TestTopReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Submit("a", 10)

	top := s.Top(1)
	top[0].Name = "mutated"
	if s.Top(1)[0].Name != "a" {
		t.Error("mutating the returned slice changed the store")
	}
}

func TestConcurrentSubmits(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Submit(fmt.Sprintf("p%d", n), n*50+j)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != MaxEntries {
		t.Errorf("store has %d entries, want cap %d", s.Len(), MaxEntries)
	}
	top := s.Top(MaxEntries)
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("ranking broken at %d: %d before %d", i, top[i-1].Score, top[i].Score)
		}
	}
}
