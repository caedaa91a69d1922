package bridge

import (
	"encoding/json"
	"os"
	"time"

	"travian-hq-server/pkg/logger"
)

// PhaseInit - фаза по умолчанию, пока снапшот ни разу не был прочитан.
const PhaseInit = "init"

// Bridge читает состояние внешнего Travian-бота и переводит его фазы и
// события в термины симуляции: активная персона, описания фаз, мысли.
//
// Файл снапшота принадлежит боту; мост держит три курсора (mtime файла,
// метка последнего отданного события, последняя фаза) и никогда не пишет.
// Курсоры живут в памяти процесса: после рестарта все события снапшота
// будут отданы заново (доставка как минимум один раз).
//
// Мост не синхронизирован: его единственный вызывающий - цикл движка.
type Bridge struct {
	path    string
	routing Routing

	lastMtime   time.Time
	cached      Snapshot
	lastEventTS float64
	lastPhase   string
}

// New создает мост над файлом снапшота с заданными таблицами маршрутизации.
func New(path string, routing Routing) *Bridge {
	return &Bridge{
		path:    path,
		routing: routing,
	}
}

// Poll перечитывает файл снапшота, если тот менялся с прошлого успешного
// чтения. Возвращает (снапшот, true) при обновлении.
//
// Отсутствие файла, нечитаемый файл, кривой JSON и неизменный mtime
// неразличимы снаружи: во всех случаях (Snapshot{}, false), кеш и курсоры
// не трогаются. Мост никогда не поднимает ошибку до вызывающего.
func (b *Bridge) Poll() (Snapshot, bool) {
	info, err := os.Stat(b.path)
	if err != nil {
		return Snapshot{}, false
	}

	mtime := info.ModTime()
	if !mtime.After(b.lastMtime) {
		return Snapshot{}, false
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Бот мог быть пойман посреди записи. Ждем следующего poll,
		// mtime-курсор не двигаем.
		logger.WithBridge(b.Phase()).WithError(err).Debug("Bot snapshot not parsable, keeping last good state")
		return Snapshot{}, false
	}

	b.lastMtime = mtime
	b.cached = snap

	logger.WithBridge(snap.Meta.Phase).WithField("events", len(snap.Events)).Debug("Bot snapshot refreshed")
	return snap, true
}

// State возвращает последний закешированный снапшот (нулевой, если файл
// еще ни разу не читался).
func (b *Bridge) State() Snapshot {
	return b.cached
}

// IsRunning сообщает, работает ли бот по последнему снапшоту.
func (b *Bridge) IsRunning() bool {
	return b.cached.Meta.Running
}

// Phase возвращает текущую фазу бота; до первого чтения - PhaseInit.
func (b *Bridge) Phase() string {
	if b.cached.Meta.Phase == "" {
		return PhaseInit
	}
	return b.cached.Meta.Phase
}

// LoopIteration возвращает номер итерации основного цикла бота.
func (b *Bridge) LoopIteration() int {
	return b.cached.Meta.LoopIteration
}

// ActiveAgent возвращает персону и арену текущей фазы. Неизвестная фаза
// деградирует до запасной пары и никогда не является ошибкой.
func (b *Bridge) ActiveAgent() (persona, arena string) {
	t := b.routing.TargetForPhase(b.Phase())
	return t.Persona, t.Arena
}

// Coordinator возвращает персону-координатора из таблиц маршрутизации.
func (b *Bridge) Coordinator() string {
	return b.routing.Coordinator()
}

// PhaseChanged сообщает, сменилась ли фаза с прошлого вызова, и запоминает
// текущую. Триггер по фронту: true ровно один раз на переход, сколько бы
// раз его ни опрашивали между сменами. Самый первый вызов тоже считается
// переходом ("" -> "init").
func (b *Bridge) PhaseChanged() bool {
	current := b.Phase()
	if current != b.lastPhase {
		b.lastPhase = current
		return true
	}
	return false
}

// EventsSince возвращает события снапшота с меткой строго позже since.
func (b *Bridge) EventsSince(since float64) []BotEvent {
	var out []BotEvent
	for _, ev := range b.cached.Events {
		if ev.Timestamp > since {
			out = append(out, ev)
		}
	}
	return out
}

// ConsumeNewEvents возвращает до limit еще не отданных событий и двигает
// курсор на максимальную метку среди возвращенных. Непоместившиеся в
// limit события остаются за курсором и будут отданы следующими вызовами:
// ничего не теряется. limit <= 0 снимает ограничение.
//
// Пока метки строго растут, каждый вызов отдает каждое событие ровно один
// раз за жизнь процесса.
func (b *Bridge) ConsumeNewEvents(limit int) []BotEvent {
	events := b.EventsSince(b.lastEventTS)
	if len(events) == 0 {
		return nil
	}

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	maxTS := b.lastEventTS
	for _, ev := range events {
		if ev.Timestamp > maxTS {
			maxTS = ev.Timestamp
		}
	}
	b.lastEventTS = maxTS

	return events
}
