package target

import (
	"math/rand"
	"testing"
)

func TestSelectEmpty(t *testing.T) {
	s := NewSelector(DefaultPool, rand.NewSource(1))
	if _, ok := s.Select(nil); ok {
		t.Fatalf("expected no target from an empty list")
	}
}

func TestSelectPoolOfOneIsDeterministic(t *testing.T) {
	ranked := []Detection{det(Robot, 0, 0, 1, 1), det(Tank, 5, 5, 1, 1)}
	s := NewSelector(1, rand.NewSource(99))
	for i := 0; i < 100; i++ {
		got, ok := s.Select(ranked)
		if !ok || got != ranked[0] {
			t.Fatalf("expected top ranked entry, got %v (ok=%v)", got, ok)
		}
	}
}

func TestSelectStaysInsidePool(t *testing.T) {
	ranked := make([]Detection, 10)
	for i := range ranked {
		ranked[i] = det(Soldier, i*20, 0, 10, 10)
	}
	s := NewSelector(4, rand.NewSource(3))
	seen := make(map[int]int)
	for i := 0; i < 2000; i++ {
		got, ok := s.Select(ranked)
		if !ok {
			t.Fatalf("expected a target")
		}
		idx := got.Box.Min.X / 20
		if idx >= 4 {
			t.Fatalf("selected entry %d outside the pool", idx)
		}
		seen[idx]++
	}
	for i := 0; i < 4; i++ {
		if seen[i] < 350 {
			t.Fatalf("pool entry %d picked only %d times out of 2000", i, seen[i])
		}
	}
}

func TestSelectShortListUsesWholeList(t *testing.T) {
	tank := det(Tank, 0, 0, 145, 55)
	soldier := det(Soldier, 300, 0, 10, 28)
	s := NewSelector(DefaultPool, rand.NewSource(11))
	counts := map[Class]int{}
	for i := 0; i < 1000; i++ {
		got, _ := s.Select([]Detection{tank, soldier})
		counts[got.Class]++
	}
	if counts[Tank] < 400 || counts[Soldier] < 400 {
		t.Fatalf("expected roughly even picks, got %v", counts)
	}
}

func TestNewSelectorClampsPool(t *testing.T) {
	if got := NewSelector(0, rand.NewSource(1)).Pool(); got != 1 {
		t.Fatalf("expected pool 1, got %d", got)
	}
}
