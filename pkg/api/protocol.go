package api

import (
	"encoding/json"
)

// --- ХЕНДШЕЙК С РЕНДЕРЕРОМ (файловый протокол) ---

// EnvironmentEntry это позиция одной персоны из входного файла рендерера
// environment/<step>.json. Рендерер пишет файл, когда закончил двигать
// персон за шаг <step>; симуляция его только читает.
type EnvironmentEntry struct {
	// Maze имя карты; рендерер пишет его в посевном файле шага 0,
	// дальше поле опционально.
	Maze string `json:"maze,omitempty"`

	X int `json:"x"`
	Y int `json:"y"`
}

// EnvironmentFile это весь входной файл: имя персоны -> ее новый тайл.
type EnvironmentFile map[string]EnvironmentEntry

// MovementSnapshot это корневой объект выходного файла movement/<step>.json.
// Симуляция пишет его ровно один раз за цикл, атомарно (временный файл +
// rename), после того как все персоны приняли решение.
// Пример:
//
//	{"persona": {"Scout Varro": {"movement": [58, 9], ...}},
//	 "meta": {"curr_time": "February 23, 2026, 00:00:10"}}
type MovementSnapshot struct {
	// Persona решения всех персон за этот шаг, ключ - полное имя.
	Persona map[string]PersonaMovement `json:"persona"`

	// Meta метаданные шага, сейчас только строка симулированных часов.
	Meta MovementMeta `json:"meta"`
}

// PersonaMovement это решение одной персоны за шаг.
type PersonaMovement struct {
	// Movement тайл, в который персона пойдет: [x, y].
	Movement [2]int `json:"movement"`

	// Pronunciatio пиктограмма текущего состояния (эмодзи).
	Pronunciatio string `json:"pronunciatio"`

	// Description описание действия, например
	// "reviewing village reports @ travian_hq:command wing:Strategy Hall".
	Description string `json:"description"`

	// Chat текущий диалог персоны в виде пар [говорящий, реплика].
	// null, если персона ни с кем не говорит.
	Chat [][2]string `json:"chat"`
}

// MovementMeta метаданные выходного файла.
type MovementMeta struct {
	// CurrTime строка симулированных часов формата
	// "February 23, 2026, 00:00:00".
	CurrTime string `json:"curr_time"`
}

// SimCodeSignal и StepSignal это сигнальные файлы для рендерера
// (curr_sim_code.json / curr_step.json во временном хранилище): из них
// рендерер узнает, какую симуляцию и с какого шага открывать.
type SimCodeSignal struct {
	SimCode string `json:"sim_code"`
}

type StepSignal struct {
	Step int `json:"step"`
}

// --- МОНИТОР (сервер -> ws-клиент) ---

// MonitorState это снимок состояния симуляции, который сервер рассылает
// всем подключенным ws-клиентам после каждого цикла. Монитор только
// читает: команд от клиентов по ws нет.
type MonitorState struct {
	// Type тип сообщения. На данный момент всегда "STATE".
	Type string `json:"type"`

	// SimCode код текущего запуска симуляции.
	SimCode string `json:"simCode"`

	// Step номер следующего шага (количество завершенных циклов).
	Step int `json:"step"`

	// Clock строка симулированных часов.
	Clock string `json:"clock"`

	// BotRunning и BotPhase состояние внешнего бота по последнему снапшоту.
	BotRunning bool   `json:"botRunning"`
	BotPhase   string `json:"botPhase"`

	// LoopIteration номер итерации основного цикла бота.
	LoopIteration int `json:"loopIteration,omitempty"`

	// Personas срез состояний всех персон.
	Personas []PersonaView `json:"personas,omitempty"`

	// Logs новые записи журнала с прошлой рассылки.
	Logs []LogEntry `json:"logs,omitempty"`
}

// PersonaView это DTO одной персоны для монитора.
type PersonaView struct {
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	// Pronunciatio и Description дублируют последний movement-снапшот.
	Pronunciatio string `json:"pronunciatio,omitempty"`
	Description  string `json:"description,omitempty"`

	// Whispers последние вброшенные мысли (хвост журнала).
	Whispers []string `json:"whispers,omitempty"`
}

// LogEntry представляет одну запись в журнале запуска.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, BRIDGE, CYCLE, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КОМАНДЫ ОПЕРАТОРА ---

// ConsoleCommand это разобранная команда операторской консоли. Канал
// доставки - stdin REPL; структура совпадает с конвертом обработчиков
// движка, чтобы команды можно было гонять и из тестов.
type ConsoleCommand struct {
	// Action название команды: RUN, SAVE, FIN, EXIT, WHISPER, STATUS,
	// BRIDGE, INJECT_EVENT, SET_CLOCK.
	Action string `json:"action"`

	// Payload JSON-объект с данными команды. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// RunPayload запускает N циклов синхронизатора (RUN).
type RunPayload struct {
	Steps int `json:"steps"`
}

// WhisperPayload вбрасывает мысль персоне (WHISPER).
type WhisperPayload struct {
	Persona string `json:"persona"`
	Text    string `json:"text"`
}

// InjectEventPayload подбрасывает событие бота в обход файла снапшота
// (INJECT_EVENT, только для отладки).
type InjectEventPayload struct {
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	Source    string  `json:"source,omitempty"`
	Target    string  `json:"target,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

// SetClockPayload переводит симулированные часы (SET_CLOCK, только для
// отладки).
type SetClockPayload struct {
	// Clock строка формата "February 23, 2026, 00:00:00".
	Clock string `json:"clock"`
}
