package persona

import (
	"context"
	"testing"

	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/hqmap"
)

func TestStayDecider(t *testing.T) {
	p := FromScratch(DefaultScratch("Commander Marcus"), nil)
	p.Tile = domain.Position{X: 10, Y: 7}
	p.ActDescription = "coordinating the cycle"
	p.Pronunciatio = "🗺️"

	d, err := StayDecider{}.Decide(context.Background(), p, View{})
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Next != p.Tile {
		t.Errorf("Next = %s, want %s", d.Next, p.Tile)
	}
	if d.Pronunciatio != "🗺️" || d.Description != "coordinating the cycle" {
		t.Errorf("Annotations lost: %q %q", d.Pronunciatio, d.Description)
	}

	// Без пиктограммы подставляется дефолтная
	p.Pronunciatio = ""
	d, _ = StayDecider{}.Decide(context.Background(), p, View{})
	if d.Pronunciatio != glyphIdle.Text() {
		t.Errorf("Default pronunciatio = %q, want %q", d.Pronunciatio, glyphIdle.Text())
	}
}

func TestRoutedDecider_FollowsPlannedPath(t *testing.T) {
	m := hqmap.Generate()
	p := FromScratch(DefaultScratch("Commander Marcus"), nil)
	p.Tile, _ = m.SpawnOf("Commander Marcus")
	p.PlannedPath = []domain.Position{p.Tile.Shift(1, 0), p.Tile.Shift(2, 0)}

	d, err := RoutedDecider{}.Decide(context.Background(), p, View{Maze: m})
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Next != p.Tile.Shift(1, 0) {
		t.Errorf("Next = %s, want %s", d.Next, p.Tile.Shift(1, 0))
	}
	if len(p.PlannedPath) != 1 {
		t.Errorf("Path not consumed: %v", p.PlannedPath)
	}
	if d.Pronunciatio != glyphWalk.Text() {
		t.Errorf("Walking pronunciatio = %q", d.Pronunciatio)
	}
}

func TestRoutedDecider_RoutesToTargetArena(t *testing.T) {
	m := hqmap.Generate()
	p := FromScratch(DefaultScratch("Commander Marcus"), nil)
	p.Tile, _ = m.SpawnOf("Commander Marcus")

	view := View{Maze: m, TargetArena: "Treasury"}

	// Персона шагает к Treasury, пока не дойдет; лимит шагов защищает
	// тест от зацикливания.
	for step := 0; step < 200; step++ {
		if m.ArenaAt(p.Tile) == "Treasury" {
			break
		}
		d, err := RoutedDecider{}.Decide(context.Background(), p, view)
		if err != nil {
			t.Fatalf("Decide failed at step %d: %v", step, err)
		}
		if d.Next == p.Tile {
			t.Fatalf("Stalled at %s on step %d", p.Tile, step)
		}
		p.Tile = d.Next
	}
	if got := m.ArenaAt(p.Tile); got != "Treasury" {
		t.Fatalf("Persona ended in %q at %s, want Treasury", got, p.Tile)
	}
}

func TestRoutedDecider_StaysWithoutTarget(t *testing.T) {
	m := hqmap.Generate()
	p := FromScratch(DefaultScratch("Commander Marcus"), nil)
	p.Tile, _ = m.SpawnOf("Commander Marcus")

	// 1. Ни пути, ни назначенной арены
	d, err := RoutedDecider{}.Decide(context.Background(), p, View{Maze: m})
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Next != p.Tile {
		t.Errorf("Next = %s, want stay at %s", d.Next, p.Tile)
	}
	if d.Pronunciatio != glyphIdle.Text() {
		t.Errorf("Idle pronunciatio = %q", d.Pronunciatio)
	}

	// 2. Назначенная арена совпадает с текущей
	d, _ = RoutedDecider{}.Decide(context.Background(), p, View{Maze: m, TargetArena: m.ArenaAt(p.Tile)})
	if d.Next != p.Tile {
		t.Errorf("Persona left its own arena: %s", d.Next)
	}
}
