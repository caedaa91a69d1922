package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/network"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/hqmap"
)

const testSim = "test_hq_run"

// testSpawns возвращает стартовые тайлы персон фикстуры. Имена выбраны
// так, чтобы покрыть маршруты моста: координатор, разведчик и казначей.
func testSpawns() map[string]domain.Position {
	return map[string]domain.Position{
		"Commander Marcus": {X: 10, Y: 8},
		"Scout Varro":      {X: 20, Y: 8},
		"Treasurer Lucius": {X: 30, Y: 8},
	}
}

// testConfig дает конфиг с быстрыми опросами и каталогами внутри TempDir.
func testConfig(t *testing.T) Config {
	t.Helper()
	tmp := t.TempDir()

	cfg := DefaultConfig()
	cfg.StorageRoot = filepath.Join(tmp, "storage")
	cfg.TempRoot = filepath.Join(tmp, "temp")
	cfg.BotState = filepath.Join(tmp, "bot_state.json")
	cfg.PollIntervalMs = 10
	cfg.StepTimeoutMs = 500
	return cfg
}

// seedRun раскладывает на диске минимальный запуск: мету на встроенной
// карте и скаффолды трех персон.
func seedRun(t *testing.T, root string) {
	t.Helper()

	spawns := testSpawns()
	names := []string{"Commander Marcus", "Scout Varro", "Treasurer Lucius"}

	meta := domain.RunMeta{
		ForkSimCode:  "base_travian_hq",
		StartDate:    "February 23, 2026",
		CurrTime:     "February 23, 2026, 00:00:00",
		SecPerStep:   10,
		MazeName:     hqmap.MazeName,
		PersonaNames: names,
		Step:         0,
	}
	writeJSONFile(t, filepath.Join(root, testSim, "reverie", "meta.json"), meta)

	for _, name := range names {
		pos := spawns[name]
		sc := persona.DefaultScratch(name)
		sc.CurrTile = []int{pos.X, pos.Y}

		dir := filepath.Join(root, testSim, "personas", name, "bootstrap_memory")
		writeJSONFile(t, filepath.Join(dir, "scratch.json"), sc)
		writeJSONFile(t, filepath.Join(dir, "spatial_memory.json"), persona.SpatialMemory{})
	}
}

// newTestService сеет запуск, собирает сервис со StayDecider и загружает
// его. Бот-снапшота нет, пока тест его не напишет сам.
func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	seedRun(t, cfg.StorageRoot)

	s := NewService(cfg, bridge.New(cfg.BotState, bridge.DefaultRouting()), network.NewHub(), nil)
	s.SetDecider(persona.StayDecider{})
	if err := s.Load(testSim); err != nil {
		t.Fatalf("load run: %v", err)
	}
	return s
}

// writeEnv пишет входной файл шага так, как это делает рендерер.
func writeEnv(t *testing.T, s *Service, step int, positions map[string]domain.Position) {
	t.Helper()

	env := api.EnvironmentFile{}
	for name, pos := range positions {
		env[name] = api.EnvironmentEntry{X: pos.X, Y: pos.Y}
	}
	if err := s.run.Store.WriteEnvironment(step, env); err != nil {
		t.Fatalf("write environment %d: %v", step, err)
	}
}

// writeBotState пишет снапшот бота по пути из конфига.
func writeBotState(t *testing.T, cfg Config, snap bridge.Snapshot) {
	t.Helper()
	writeJSONFile(t, cfg.BotState, snap)
}

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// hasLogType ищет в журнале запись заданного типа.
func hasLogType(logs []api.LogEntry, logType string) bool {
	for _, l := range logs {
		if l.Type == logType {
			return true
		}
	}
	return false
}
