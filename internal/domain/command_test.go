package domain

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected CommandType
	}{
		{"RUN", CmdRun},
		{"run", CmdRun},
		{"Run", CmdRun},
		{"SAVE", CmdSave},
		{"FIN", CmdFin},
		{"EXIT", CmdExit},
		{"WHISPER", CmdWhisper},
		{"STATUS", CmdStatus},
		{"BRIDGE", CmdBridge},
		{"INJECT_EVENT", CmdInjectEvent},
		{"SET_CLOCK", CmdSetClock},
		{"TELEPORT", CmdUnknown},
		{"", CmdUnknown},
	}

	for _, tt := range tests {
		result := ParseCommand(tt.input)
		if result != tt.expected {
			t.Errorf("ParseCommand(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		cmd      CommandType
		expected string
	}{
		{CmdRun, "RUN"},
		{CmdSave, "SAVE"},
		{CmdFin, "FIN"},
		{CmdWhisper, "WHISPER"},
		{CmdUnknown, "UNKNOWN"},
		{CommandType(250), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.expected {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.cmd, got, tt.expected)
		}
	}
}

func TestParseEngineEvent(t *testing.T) {
	tests := []struct {
		input    string
		expected EngineEventType
	}{
		{"PHASE_CHANGED", EngineEventPhaseChanged},
		{"phase_changed", EngineEventPhaseChanged},
		{"BOT_NOTICED", EngineEventBotNoticed},
		{"CYCLE_DONE", EngineEventCycleDone},
		{"LEVEL_UP", EngineEventUnknown},
		{"", EngineEventUnknown},
	}

	for _, tt := range tests {
		result := ParseEngineEvent(tt.input)
		if result != tt.expected {
			t.Errorf("ParseEngineEvent(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}
