package engine

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/api"
)

// statePersona достает персону из снимка монитора.
func statePersona(t *testing.T, state *api.MonitorState, name string) api.PersonaView {
	t.Helper()
	for _, pv := range state.Personas {
		if pv.Name == name {
			return pv
		}
	}
	t.Fatalf("Persona %s not found in monitor state", name)
	return api.PersonaView{}
}

func TestRunCycles_SingleCycle(t *testing.T) {
	cfg := testConfig(t)
	s := newTestService(t, cfg)

	// Рендерер подвинул командира на соседний тайл.
	moved := testSpawns()
	moved["Commander Marcus"] = movedTile(moved["Commander Marcus"], 1, 0)
	writeEnv(t, s, 0, moved)

	done, err := s.RunCycles(context.Background(), 1)
	if err != nil {
		t.Fatalf("RunCycles: %v", err)
	}
	if done != 1 {
		t.Fatalf("Expected 1 completed cycle, got %d", done)
	}

	// Выходной файл: решения на сверенных позициях, часы ДО сдвига.
	snap, err := s.run.Store.ReadMovement(0)
	if err != nil {
		t.Fatalf("read movement 0: %v", err)
	}
	mv, ok := snap.Persona["Commander Marcus"]
	if !ok {
		t.Fatal("Commander Marcus missing from movement file")
	}
	want := moved["Commander Marcus"]
	if mv.Movement != [2]int{want.X, want.Y} {
		t.Errorf("Expected movement [%d %d], got %v", want.X, want.Y, mv.Movement)
	}
	if snap.Meta.CurrTime != "February 23, 2026, 00:00:00" {
		t.Errorf("Movement meta must carry the pre-advance clock, got %q", snap.Meta.CurrTime)
	}

	// Шаг и часы сдвинулись ровно на один цикл.
	if s.run.Step != 1 {
		t.Errorf("Expected step 1, got %d", s.run.Step)
	}
	if got := s.run.Clock.String(); got != "February 23, 2026, 00:00:10" {
		t.Errorf("Expected clock +10s, got %q", got)
	}

	// Монитору ушел снимок с журналом этого цикла.
	state := s.LastState()
	if state == nil {
		t.Fatal("Expected published monitor state")
	}
	if state.Step != 1 {
		t.Errorf("Expected state step 1, got %d", state.Step)
	}
	if !hasLogType(state.Logs, "CYCLE") {
		t.Error("Expected CYCLE entry in published logs")
	}
	if !hasLogType(state.Logs, "BRIDGE") {
		t.Error("Expected BRIDGE entry for the first phase transition")
	}
	if len(s.run.Logs) != 0 {
		t.Errorf("Run log must be flushed after publishing, %d entries left", len(s.run.Logs))
	}

	// Самый первый переход фазы ("" -> init) шепчет координатору статус.
	marcus := statePersona(t, state, "Commander Marcus")
	if len(marcus.Whispers) == 0 || marcus.Whispers[len(marcus.Whispers)-1] != bridge.OfflineText {
		t.Errorf("Expected offline status whisper for the coordinator, got %v", marcus.Whispers)
	}
}

func TestRunCycles_Sequential(t *testing.T) {
	cfg := testConfig(t)
	s := newTestService(t, cfg)

	writeEnv(t, s, 0, testSpawns())
	writeEnv(t, s, 1, testSpawns())

	done, err := s.RunCycles(context.Background(), 2)
	if err != nil {
		t.Fatalf("RunCycles: %v", err)
	}
	if done != 2 {
		t.Fatalf("Expected 2 completed cycles, got %d", done)
	}

	if s.run.Step != 2 {
		t.Errorf("Expected step 2, got %d", s.run.Step)
	}
	if got := s.run.Clock.String(); got != "February 23, 2026, 00:00:20" {
		t.Errorf("Expected clock +20s, got %q", got)
	}
	if _, err := s.run.Store.ReadMovement(1); err != nil {
		t.Errorf("Expected movement file for step 1: %v", err)
	}
}

func TestRunCycles_FaultKeepsStep(t *testing.T) {
	cfg := testConfig(t)
	s := newTestService(t, cfg)

	// Казначей пропал из входного файла: сверка обязана срываться, а цикл
	// повторять тот же шаг до отмены контекста.
	broken := testSpawns()
	delete(broken, "Treasurer Lucius")
	writeEnv(t, s, 0, broken)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	done, err := s.RunCycles(ctx, 1)
	if done != 0 {
		t.Errorf("Expected 0 completed cycles, got %d", done)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}

	// Сорванный цикл не оставляет следов: шаг, часы и диск нетронуты.
	if s.run.Step != 0 {
		t.Errorf("Step moved on a failed cycle: %d", s.run.Step)
	}
	if got := s.run.Clock.String(); got != "February 23, 2026, 00:00:00" {
		t.Errorf("Clock moved on a failed cycle: %q", got)
	}
	if _, err := s.run.Store.ReadMovement(0); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Movement file must not exist after a failed cycle, got %v", err)
	}
	if !hasLogType(s.run.Logs, "ERROR") {
		t.Error("Expected ERROR entries in the run log")
	}
}

func TestRunCycles_InputTimeout(t *testing.T) {
	cfg := testConfig(t)
	cfg.StepTimeoutMs = 60
	s := newTestService(t, cfg)

	// Входного файла нет вовсе: ожидание обязано упереться в предел шага
	// и вернуть управление, не трогая состояние.
	done, err := s.RunCycles(context.Background(), 3)
	if done != 0 {
		t.Errorf("Expected 0 completed cycles, got %d", done)
	}
	if !errors.Is(err, errInputTimeout) {
		t.Errorf("Expected input timeout, got %v", err)
	}
	if s.run.Step != 0 {
		t.Errorf("Step moved on timeout: %d", s.run.Step)
	}
}

func TestRunCycles_FoldsBridgeState(t *testing.T) {
	cfg := testConfig(t)
	s := newTestService(t, cfg)

	writeBotState(t, cfg, bridge.Snapshot{
		Meta: bridge.Meta{Running: true, Phase: "Focus", LoopIteration: 2},
		Villages: map[string]bridge.Village{
			"v1": {Name: "Roma Nova", Type: "main",
				Resources: bridge.Resources{Lumber: 100, Clay: 90, Iron: 80, Crop: 200}},
		},
		Events: []bridge.BotEvent{
			{Type: "resource_send", Message: "Shipment dispatched", Source: "Roma Nova",
				Target: "Capua", Phase: "Focus", Timestamp: 5},
		},
	})
	writeEnv(t, s, 0, testSpawns())

	if _, err := s.RunCycles(context.Background(), 1); err != nil {
		t.Fatalf("RunCycles: %v", err)
	}

	state := s.LastState()
	if !state.BotRunning || state.BotPhase != "Focus" || state.LoopIteration != 2 {
		t.Errorf("Bot state not folded into monitor snapshot: %+v", state)
	}

	// Смена фазы ушла координатору, событие - казначею.
	marcus := statePersona(t, state, "Commander Marcus")
	if len(marcus.Whispers) == 0 {
		t.Fatal("Expected phase whisper for the coordinator")
	}
	if got := marcus.Whispers[len(marcus.Whispers)-1]; got != "[Loop 2] Strategist Livia is executing special focus plan actions." {
		t.Errorf("Unexpected phase whisper: %q", got)
	}

	lucius := s.run.Personas["Treasurer Lucius"]
	tail := lucius.TailWhispers(10)
	if len(tail) != 1 {
		t.Fatalf("Expected exactly 1 whisper for the treasurer, got %d", len(tail))
	}
	if want := "I just sent resources from Roma Nova to Capua. Shipment dispatched"; tail[0].Text != want {
		t.Errorf("Unexpected event thought: %q", tail[0].Text)
	}
}

func TestRunCycles_BridgeBatchKeepsLeftovers(t *testing.T) {
	cfg := testConfig(t)
	cfg.BridgeEventBatch = 2
	s := newTestService(t, cfg)

	events := make([]bridge.BotEvent, 5)
	for i := range events {
		events[i] = bridge.BotEvent{
			Type: "resource_send", Message: "Shipment", Source: "Roma Nova",
			Target: "Capua", Phase: "Focus", Timestamp: float64(i + 1),
		}
	}
	writeBotState(t, cfg, bridge.Snapshot{
		Meta:   bridge.Meta{Running: true, Phase: "Focus", LoopIteration: 1},
		Events: events,
	})

	lucius := s.run.Personas["Treasurer Lucius"]

	// Пачка ограничена двумя событиями за цикл; остаток не теряется и
	// доезжает следующими циклами, даже когда снапшот больше не менялся.
	counts := []int{2, 4, 5}
	for step, want := range counts {
		writeEnv(t, s, step, testSpawns())
		if _, err := s.RunCycles(context.Background(), 1); err != nil {
			t.Fatalf("cycle %d: %v", step, err)
		}
		if got := len(lucius.TailWhispers(50)); got != want {
			t.Fatalf("After cycle %d expected %d delivered events, got %d", step+1, want, got)
		}
	}
}

// movedTile сдвигает позицию на (dx, dy).
func movedTile(p domain.Position, dx, dy int) domain.Position {
	return domain.Position{X: p.X + dx, Y: p.Y + dy}
}
