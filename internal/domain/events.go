package domain

import "strings"

// EngineEventType - Внутренний числовой идентификатор события движка
type EngineEventType uint8

// Engine event constants
const (
	EngineEventUnknown EngineEventType = iota
	EngineEventPhaseChanged
	EngineEventBotNoticed
	EngineEventCycleDone
)

// Маппинг для конвертации JSON -> Domain
var engineEventStringToType = map[string]EngineEventType{
	"PHASE_CHANGED": EngineEventPhaseChanged,
	"BOT_NOTICED":   EngineEventBotNoticed,
	"CYCLE_DONE":    EngineEventCycleDone,
}

// Маппинг для логов Domain -> String
var engineEventTypeToString = map[EngineEventType]string{
	EngineEventPhaseChanged: "PHASE_CHANGED",
	EngineEventBotNoticed:   "BOT_NOTICED",
	EngineEventCycleDone:    "CYCLE_DONE",
}

// ParseEngineEvent конвертирует строку в EngineEventType
func ParseEngineEvent(s string) EngineEventType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := engineEventStringToType[upper]; ok {
		return val
	}
	return EngineEventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EngineEventType) String() string {
	if val, ok := engineEventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// PhaseChanged — фаза внешнего бота сменилась; описание уходит шепотом
// координатору. Кому именно - решает таблица маршрутизации моста.
type PhaseChanged struct {
	Phase       string `json:"phase"`
	Description string `json:"description"`
}

// BotNoticed — событие внешнего бота замечено и должно стать мыслью
// ответственного персонажа.
type BotNoticed struct {
	Persona   string  `json:"persona"`
	Thought   string  `json:"thought"`
	EventType string  `json:"type"`
	Timestamp float64 `json:"timestamp"`
}

// CycleDone — цикл завершен; полезная нагрузка для монитора.
type CycleDone struct {
	Step  int    `json:"step"`
	Clock string `json:"clock"`
}
