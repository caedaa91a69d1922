package domain

// Параметры цикла по умолчанию (перекрываются конфигом)
const (
	// DefaultSecPerStep — секунд симулированного времени за один шаг.
	DefaultSecPerStep = 10

	// BridgeEventBatch — максимум событий моста, вливаемых за цикл.
	// Излишек остается за курсором моста и добирается в следующих циклах.
	BridgeEventBatch = 5
)

// Параметры восприятия
const (
	// DefaultVisionRadius — радиус (Чебышёв) пространственной памяти
	// персонажа при бутстрапе.
	DefaultVisionRadius = 8
)

// Журналы
const (
	// MaxWhisperJournal — сколько последних шепотов персонаж держит в памяти.
	MaxWhisperJournal = 50

	// MaxRunLog — сколько строк журнала запуска отдается монитору.
	MaxRunLog = 200
)
