package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
)

func TestSaveLoadMeta_RoundTrip(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), "test-run")

	want := testMeta()
	if err := s.SaveMeta(want); err != nil {
		t.Fatalf("SaveMeta failed: %v", err)
	}

	got, err := s.LoadMeta()
	if err != nil {
		t.Fatalf("LoadMeta failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Meta round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveMeta_RejectsInvalid(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), "test-run")

	meta := testMeta()
	meta.SecPerStep = 0
	if err := s.SaveMeta(meta); err == nil {
		t.Fatal("Expected error for sec_per_step = 0, got nil")
	}

	// Невалидное ничего не записало
	if _, err := s.LoadMeta(); err == nil {
		t.Fatal("Expected LoadMeta to fail for never-saved run")
	}
}

func TestWriteMovement_Atomic(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), "test-run")

	snap := api.MovementSnapshot{
		Persona: map[string]api.PersonaMovement{
			"Commander Marcus": {
				Movement:     [2]int{11, 7},
				Pronunciatio: "🚶",
				Description:  "walking to the treasury",
				Chat:         [][2]string{{"Commander Marcus", "We move at dawn."}},
			},
		},
		Meta: api.MovementMeta{CurrTime: "February 23, 2026, 00:00:10"},
	}
	if err := s.WriteMovement(1, snap); err != nil {
		t.Fatalf("WriteMovement failed: %v", err)
	}

	got, err := s.ReadMovement(1)
	if err != nil {
		t.Fatalf("ReadMovement failed: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("Movement round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}

	// После rename временных файлов не остается
	entries, err := os.ReadDir(filepath.Join(s.RunDir(), "movement"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}

	if err := s.WriteMovement(-1, snap); err == nil {
		t.Error("Expected error for negative step")
	}
}

func TestReadEnvironment(t *testing.T) {
	s := seedRun(t, t.TempDir(), t.TempDir(), "test-run")

	env, err := s.ReadEnvironment(0)
	if err != nil {
		t.Fatalf("ReadEnvironment failed: %v", err)
	}
	if got := env["Commander Marcus"]; got.X != 10 || got.Y != 7 {
		t.Errorf("Marcus at (%d, %d), want (10, 7)", got.X, got.Y)
	}

	// 1. Файла шага еще нет: рендерер не дописал
	if _, err := s.ReadEnvironment(7); !os.IsNotExist(err) {
		t.Errorf("Expected IsNotExist for missing step, got %v", err)
	}

	// 2. Файл пойман посреди записи
	partial := []byte(`{"Commander Marcus": {"x": 3`)
	if err := os.WriteFile(s.environmentPath(1), partial, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := s.ReadEnvironment(1); err == nil {
		t.Error("Expected error for truncated environment file")
	}
}

func TestPersonaScaffold_RoundTrip(t *testing.T) {
	s := seedRun(t, t.TempDir(), t.TempDir(), "test-run")

	p, err := s.LoadPersonaScaffold("Commander Marcus")
	if err != nil {
		t.Fatalf("LoadPersonaScaffold failed: %v", err)
	}
	if p.Tile != (domain.Position{X: 10, Y: 7}) {
		t.Errorf("Loaded tile = %s, want (10, 7)", p.Tile)
	}

	// Меняем состояние и сохраняем с текущими часами
	p.Tile = domain.Position{X: 12, Y: 8}
	p.ActDescription = "reviewing village reports"
	p.Pronunciatio = "📜"
	p.PlannedPath = []domain.Position{{X: 13, Y: 8}, {X: 14, Y: 8}}

	clock, err := domain.ParseClock("February 23, 2026, 00:01:40")
	if err != nil {
		t.Fatalf("ParseClock failed: %v", err)
	}
	if err := s.SavePersonaScaffold(p, clock); err != nil {
		t.Fatalf("SavePersonaScaffold failed: %v", err)
	}

	back, err := s.LoadPersonaScaffold("Commander Marcus")
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if back.Tile != p.Tile || back.ActDescription != p.ActDescription || back.Pronunciatio != p.Pronunciatio {
		t.Errorf("Scaffold round trip lost state: %+v", back)
	}
	if !reflect.DeepEqual(back.PlannedPath, p.PlannedPath) {
		t.Errorf("Planned path = %v, want %v", back.PlannedPath, p.PlannedPath)
	}

	// Часы сохранены в scratch.json
	raw, err := os.ReadFile(filepath.Join(s.personaDir("Commander Marcus"), "scratch.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var sc persona.Scratch
	if err := json.Unmarshal(raw, &sc); err != nil {
		t.Fatalf("Unmarshal scratch failed: %v", err)
	}
	if sc.CurrTime == nil || *sc.CurrTime != "February 23, 2026, 00:01:40" {
		t.Errorf("Saved curr_time = %v, want the save clock", sc.CurrTime)
	}

	if _, err := s.LoadPersonaScaffold("Nobody"); err == nil {
		t.Error("Expected error for unknown persona")
	}
}

func TestSignalRenderer(t *testing.T) {
	temp := t.TempDir()
	s := New(t.TempDir(), temp, "test-run")

	if err := s.SignalRenderer(3); err != nil {
		t.Fatalf("SignalRenderer failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(temp, "curr_sim_code.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var code api.SimCodeSignal
	if err := json.Unmarshal(raw, &code); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if code.SimCode != "test-run" {
		t.Errorf("sim_code = %q, want test-run", code.SimCode)
	}

	raw, err = os.ReadFile(filepath.Join(temp, "curr_step.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var step api.StepSignal
	if err := json.Unmarshal(raw, &step); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if step.Step != 3 {
		t.Errorf("step = %d, want 3", step.Step)
	}
}
