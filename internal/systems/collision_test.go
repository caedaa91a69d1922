package systems

import (
	"testing"

	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/hqmap"
)

func TestWalkable(t *testing.T) {
	m := hqmap.Generate()

	spawn, ok := m.SpawnOf("Commander Marcus")
	if !ok {
		t.Fatal("No spawn for Commander Marcus")
	}
	if !Walkable(m, spawn) {
		t.Errorf("Spawn tile %s must be walkable", spawn)
	}
	if Walkable(m, domain.Position{X: 0, Y: 0}) {
		t.Error("Outer wall corner reported walkable")
	}
	if Walkable(m, domain.Position{X: -3, Y: 10}) {
		t.Error("Out-of-bounds tile reported walkable")
	}
}

func TestWalkableNeighbors(t *testing.T) {
	m := hqmap.Generate()

	// Тайл в углу коридора: север и запад заняты внешней стеной,
	// остаются восток и юг. Порядок обхода фиксированный.
	got := WalkableNeighbors(m, domain.Position{X: 1, Y: 1})
	want := []domain.Position{{X: 2, Y: 1}, {X: 1, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("Expected %d neighbors, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbor %d = %s, want %s", i, got[i], want[i])
		}
	}
}
