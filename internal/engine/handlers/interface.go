package handlers

import (
	"context"
	"encoding/json"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/persona"
)

// SimControl описывает операции жизненного цикла, которые движок отдает
// хендлерам команд. Service движка реализует этот интерфейс неявно.
type SimControl interface {
	// RunCycles прогоняет до n циклов синхронизатора и возвращает число
	// завершенных. Блокирует вызывающего до конца бюджета, ошибки или
	// отмены контекста.
	RunCycles(ctx context.Context, n int) (int, error)

	// Save сохраняет мету и scratch всех персон на диск.
	Save() error

	// Discard удаляет каталог запуска с диска (EXIT, выход без сохранения).
	Discard() error

	// SetClock переводит симулированные часы запуска.
	SetClock(clock domain.SimClock)
}

// Context передает хендлеру состояние запуска.
// Персоны отдаются ссылками, чтобы хендлер мог мутировать их состояние
// (шепоты, описания действий).
type Context struct {
	Ctx context.Context

	Sim    SimControl
	Bridge *bridge.Bridge

	SimCode  string
	Step     int
	Clock    domain.SimClock
	Personas map[string]*persona.Persona
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в журнал запуска напрямую, он возвращает данные.
type Result struct {
	Msg     string          // Текст журнала
	MsgType string          // Тип записи (INFO, BRIDGE, CYCLE, ERROR)
	Event   json.RawMessage // Сырые данные события для обработки движком
}

// HandlerFunc - это контракт для любой команды (RUN, SAVE, WHISPER, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
