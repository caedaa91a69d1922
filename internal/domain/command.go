package domain

import (
	"encoding/json"
	"strings"
)

// CommandType - Внутренний числовой идентификатор операторской команды
type CommandType uint8

const (
	CmdUnknown CommandType = iota
	CmdRun
	CmdSave
	CmdFin
	CmdExit
	CmdWhisper
	CmdStatus
	CmdBridge
	// admin-команды для дев-стенда
	CmdInjectEvent
	CmdSetClock
)

// Маппинг для конвертации консоли/JSON -> Domain
var commandStringToCmd = map[string]CommandType{
	"RUN":          CmdRun,
	"SAVE":         CmdSave,
	"FIN":          CmdFin,
	"EXIT":         CmdExit,
	"WHISPER":      CmdWhisper,
	"STATUS":       CmdStatus,
	"BRIDGE":       CmdBridge,
	"INJECT_EVENT": CmdInjectEvent,
	"SET_CLOCK":    CmdSetClock,
}

// Маппинг для логов Domain -> String
var commandCmdToString = map[CommandType]string{
	CmdRun:         "RUN",
	CmdSave:        "SAVE",
	CmdFin:         "FIN",
	CmdExit:        "EXIT",
	CmdWhisper:     "WHISPER",
	CmdStatus:      "STATUS",
	CmdBridge:      "BRIDGE",
	CmdInjectEvent: "INJECT_EVENT",
	CmdSetClock:    "SET_CLOCK",
}

// ParseCommand конвертирует строку из консоли/JSON в CommandType
func ParseCommand(s string) CommandType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := commandStringToCmd[upper]; ok {
		return val
	}
	return CmdUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (c CommandType) String() string {
	if val, ok := commandCmdToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// Command - оптимизированная команда для движка.
// Использует CommandType вместо string.
type Command struct {
	Type    CommandType     // Число! Быстро и безопасно.
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
