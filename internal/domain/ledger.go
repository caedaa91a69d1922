package domain

import (
	"travian-hq-server/internal/core/types"
)

// activeRef — где сейчас находится небланковое событие субъекта.
type activeRef struct {
	key types.TileKey
	ev  TileEvent
}

// EventLedger — леджер тайловых событий: какой субъект что делает и где.
//
// Два индекса:
//   - tiles: TileKey -> события на тайле (порядок вставки сохраняется,
//     чтобы выгрузки и тесты были детерминированными)
//   - active: субъект -> его единственное небланковое событие
//
// Инвариант: у субъекта не может быть двух небланковых событий
// одновременно. Вставка нового небланкового события автоматически снимает
// предыдущее, где бы оно ни лежало. Бланки инвариантом не ограничены.
//
// Леджер принадлежит одному логическому писателю (циклу синхронизатора)
// и не синхронизирован для конкурентного доступа.
type EventLedger struct {
	tiles  map[types.TileKey][]TileEvent
	active map[string]activeRef
}

// NewEventLedger создает пустой леджер.
func NewEventLedger() *EventLedger {
	return &EventLedger{
		tiles:  make(map[types.TileKey][]TileEvent),
		active: make(map[string]activeRef),
	}
}

// AddEvent добавляет событие на тайл.
//
// Точный дубликат — no-op. Небланковое событие сначала снимает предыдущее
// небланковое событие того же субъекта (структурный инвариант), затем
// добавляется.
func (l *EventLedger) AddEvent(pos Position, ev TileEvent) {
	key := pos.Key()

	for _, existing := range l.tiles[key] {
		if existing == ev {
			return
		}
	}

	if !ev.IsBlank() {
		if prev, ok := l.active[ev.Subject]; ok {
			l.removeAt(prev.key, prev.ev)
		}
		l.active[ev.Subject] = activeRef{key: key, ev: ev}
	}

	l.tiles[key] = append(l.tiles[key], ev)
}

// RemoveEvent удаляет точное совпадение события с тайла; отсутствие — no-op.
func (l *EventLedger) RemoveEvent(pos Position, ev TileEvent) {
	key := pos.Key()
	if l.removeAt(key, ev) && !ev.IsBlank() {
		if ref, ok := l.active[ev.Subject]; ok && ref.key == key && ref.ev == ev {
			delete(l.active, ev.Subject)
		}
	}
}

// RemoveSubjectEvents удаляет с тайла все события субъекта, какими бы ни
// были предикат/объект/описание. Используется, когда субъект покидает тайл.
func (l *EventLedger) RemoveSubjectEvents(subject string, pos Position) {
	key := pos.Key()
	events := l.tiles[key]

	kept := events[:0]
	for _, ev := range events {
		if ev.Subject == subject {
			if ref, ok := l.active[subject]; ok && ref.key == key && ref.ev == ev {
				delete(l.active, subject)
			}
			continue
		}
		kept = append(kept, ev)
	}

	if len(kept) == 0 {
		delete(l.tiles, key)
		return
	}
	l.tiles[key] = kept
}

// TurnEventIdle заменяет небланковое событие его бланк-формой на том же
// тайле: объект «освобожден», субъект остается на месте.
func (l *EventLedger) TurnEventIdle(ev TileEvent, pos Position) {
	if ev.IsBlank() {
		return
	}
	l.RemoveEvent(pos, ev)
	l.AddEvent(pos, ev.Idle())
}

// EventsAt возвращает копию списка событий на тайле в порядке вставки.
func (l *EventLedger) EventsAt(pos Position) []TileEvent {
	events := l.tiles[pos.Key()]
	if len(events) == 0 {
		return nil
	}
	out := make([]TileEvent, len(events))
	copy(out, events)
	return out
}

// ActiveEvent возвращает текущее небланковое событие субъекта и его тайл.
func (l *EventLedger) ActiveEvent(subject string) (TileEvent, Position, bool) {
	ref, ok := l.active[subject]
	if !ok {
		return TileEvent{}, Position{}, false
	}
	return ref.ev, FromKey(ref.key), true
}

// Nearby возвращает все тайлы в радиусе Чебышёва от центра, построчно,
// включая сам центр. Радиус — параметр восприятия, не константа леджера.
func (l *EventLedger) Nearby(center Position, radius int) []Position {
	if radius < 0 {
		return nil
	}

	out := make([]Position, 0, (2*radius+1)*(2*radius+1))
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

// TileCount возвращает количество тайлов с хотя бы одним событием.
func (l *EventLedger) TileCount() int {
	return len(l.tiles)
}

// EventCount возвращает общее количество событий в леджере.
func (l *EventLedger) EventCount() int {
	n := 0
	for _, events := range l.tiles {
		n += len(events)
	}
	return n
}

// Reset очищает леджер полностью.
func (l *EventLedger) Reset() {
	l.tiles = make(map[types.TileKey][]TileEvent)
	l.active = make(map[string]activeRef)
}

// removeAt удаляет точное совпадение, сохраняя порядок остальных событий.
// Возвращает true, если событие было найдено.
func (l *EventLedger) removeAt(key types.TileKey, ev TileEvent) bool {
	events := l.tiles[key]
	for i, existing := range events {
		if existing == ev {
			l.tiles[key] = append(events[:i], events[i+1:]...)
			if len(l.tiles[key]) == 0 {
				delete(l.tiles, key)
			}
			return true
		}
	}
	return false
}
