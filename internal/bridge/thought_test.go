package bridge

import (
	"path/filepath"
	"strings"
	"testing"
)

func newTestBridge(t *testing.T) *Bridge {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "bot_state.json"), DefaultRouting())
}

func TestBridge_EventThought_Alert(t *testing.T) {
	b := newTestBridge(t)

	persona, thought := b.EventThought(BotEvent{
		Type:      "attack_detected",
		Message:   "raid inbound",
		Target:    "V2",
		Timestamp: 100,
	})

	if persona != "Sentinel Felix" {
		t.Errorf("persona = %q, want Sentinel Felix", persona)
	}
	if !strings.Contains(thought, "ALERT!") {
		t.Errorf("thought %q must contain the literal ALERT!", thought)
	}
	if !strings.Contains(thought, "V2") {
		t.Errorf("thought %q must name the threatened village", thought)
	}
	if !strings.Contains(thought, "raid inbound") {
		t.Errorf("thought %q must carry the bot message", thought)
	}
}

func TestBridge_EventThought_Templates(t *testing.T) {
	b := newTestBridge(t)

	tests := []struct {
		event   BotEvent
		persona string
		thought string
	}{
		{
			BotEvent{Type: "resource_send", Message: "500 crop", Source: "Capital", Target: "Outpost"},
			"Treasurer Lucius",
			"I just sent resources from Capital to Outpost. 500 crop",
		},
		{
			BotEvent{Type: "build_start", Message: "Granary to level 7", Source: "Capital"},
			"Builder Gaius",
			"I started a new building upgrade: Granary to level 7. Village: Capital.",
		},
		{
			BotEvent{Type: "build_complete", Message: "Warehouse done", Target: "Outpost"},
			"Builder Gaius",
			"A building upgrade completed: Warehouse done. Village: Outpost.",
		},
		{
			BotEvent{Type: "train_start", Message: "20 legionnaires"},
			"Centurion Titus",
			"I began training troops: 20 legionnaires. At: the barracks.",
		},
		{
			BotEvent{Type: "dodge_triggered", Message: "troops evacuated", Source: "Capital"},
			"Sentinel Felix",
			"ALERT! troops evacuated. Village under threat: Capital. I must take immediate defensive action!",
		},
		{
			BotEvent{Type: "focus_action", Message: "push V3", Target: "V3"},
			"Strategist Livia",
			"Focus plan action: push V3. Target village: V3.",
		},
		{
			BotEvent{Type: "phase_change", Message: "starting scans", Phase: "Preflight"},
			"Commander Marcus",
			"The operational phase has changed to: Preflight. starting scans",
		},
	}

	for _, tt := range tests {
		persona, thought := b.EventThought(tt.event)
		if persona != tt.persona {
			t.Errorf("EventThought(%s) persona = %q, want %q", tt.event.Type, persona, tt.persona)
		}
		if thought != tt.thought {
			t.Errorf("EventThought(%s) thought = %q, want %q", tt.event.Type, thought, tt.thought)
		}
	}
}

func TestBridge_EventThought_GenericFallback(t *testing.T) {
	b := newTestBridge(t)

	// Types without a dedicated template fall back to message + endpoints
	// and route to the default persona unless the type table says otherwise.
	persona, thought := b.EventThought(BotEvent{
		Type:    "resource_receive",
		Message: "convoy arrived",
		Source:  "Outpost",
		Target:  "Capital",
	})
	if persona != "Treasurer Lucius" {
		t.Errorf("persona = %q, want Treasurer Lucius", persona)
	}
	if thought != "convoy arrived (from Outpost) (to Capital)" {
		t.Errorf("thought = %q", thought)
	}

	persona, thought = b.EventThought(BotEvent{Type: "totally_new", Message: "hm"})
	if persona != "Commander Marcus" {
		t.Errorf("unknown type persona = %q, want Commander Marcus", persona)
	}
	if thought != "hm" {
		t.Errorf("unknown type thought = %q, want bare message", thought)
	}
}

func TestBridge_PhaseDescription(t *testing.T) {
	b := newTestBridge(t)

	// 1. Offline bot: fixed standby line.
	if got := b.PhaseDescription(); got != OfflineText {
		t.Errorf("offline description = %q, want %q", got, OfflineText)
	}

	// 2. Running with a known phase.
	b.cached = Snapshot{Meta: Meta{Running: true, Phase: "Focus", LoopIteration: 3}}
	want := "[Loop 3] Strategist Livia is executing special focus plan actions."
	if got := b.PhaseDescription(); got != want {
		t.Errorf("description = %q, want %q", got, want)
	}

	// 3. Running with an unmapped phase: generic fallback.
	b.cached = Snapshot{Meta: Meta{Running: true, Phase: "Mystery", LoopIteration: 8}}
	want = "[Loop 8] Current phase: Mystery"
	if got := b.PhaseDescription(); got != want {
		t.Errorf("fallback description = %q, want %q", got, want)
	}
}

func TestBridge_VillageSummary(t *testing.T) {
	b := newTestBridge(t)

	if got := b.VillageSummary(); got != "No village data available." {
		t.Errorf("empty summary = %q", got)
	}

	b.cached = Snapshot{Villages: map[string]Village{
		"v2": {Name: "Outpost", Type: "developing", Resources: Resources{Lumber: 120, Clay: 80, Iron: 60, Crop: 40}},
		"v1": {Name: "Capital", Type: "main", Resources: Resources{Lumber: 900, Clay: 850, Iron: 700, Crop: 1200}},
	}}

	got := b.VillageSummary()
	want := "Village Status:\n" +
		"  Capital (main): L=900 C=850 I=700 Cr=1200\n" +
		"  Outpost (developing): L=120 C=80 I=60 Cr=40"
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestRouting_Isolation(t *testing.T) {
	// Two routings built from the same literal must not share state.
	phases := map[string]Target{"Focus": {Persona: "Strategist Livia", Arena: "Focus Chamber"}}
	a := NewRouting(phases, nil, nil, Target{Persona: "Commander Marcus", Arena: "Strategy Hall"})
	phases["Focus"] = Target{Persona: "Nobody", Arena: "Nowhere"}

	if got := a.TargetForPhase("Focus"); got.Persona != "Strategist Livia" {
		t.Errorf("routing must copy its tables: got %+v", got)
	}
}
