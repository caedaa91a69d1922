package storage

import (
	"os"
	"testing"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// testMeta возвращает валидные метаданные посевного запуска.
func testMeta() domain.RunMeta {
	return domain.RunMeta{
		ForkSimCode:  "genesis",
		StartDate:    "February 23, 2026",
		CurrTime:     "February 23, 2026, 00:00:00",
		SecPerStep:   10,
		MazeName:     "travian_hq",
		PersonaNames: []string{"Commander Marcus", "Scout Varro"},
		Step:         0,
	}
}

// seedRun раскладывает на диске минимальный валидный запуск: метаданные,
// посевной environment и скаффолды обеих персон.
func seedRun(t *testing.T, root, temp, sim string) *Store {
	t.Helper()

	s := New(root, temp, sim)
	if err := s.SaveMeta(testMeta()); err != nil {
		t.Fatalf("SaveMeta failed: %v", err)
	}

	env := api.EnvironmentFile{
		"Commander Marcus": {Maze: "travian_hq", X: 10, Y: 7},
		"Scout Varro":      {Maze: "travian_hq", X: 29, Y: 31},
	}
	if err := s.WriteEnvironment(0, env); err != nil {
		t.Fatalf("WriteEnvironment failed: %v", err)
	}

	for name, e := range env {
		p := persona.FromScratch(persona.DefaultScratch(name), persona.SpatialMemory{})
		p.Tile = domain.Position{X: e.X, Y: e.Y}
		if err := s.SavePersonaScaffold(p, domain.SimClock{}); err != nil {
			t.Fatalf("SavePersonaScaffold(%s) failed: %v", name, err)
		}
	}
	return s
}
