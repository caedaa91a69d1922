package domain

import "fmt"

// TileEvent — факт, привязанный к тайлу: текущее состояние персонажа или
// объекта. Subject обязателен; пустые Predicate/Object/Description означают
// «бланк» — субъект присутствует на тайле, но ничего не делает.
//
// TileEvent является value-type: события сравниваются оператором ==,
// дубликаты в леджере определяются точным совпадением всех четырех полей.
type TileEvent struct {
	Subject     string `json:"subject"`
	Predicate   string `json:"predicate,omitempty"`
	Object      string `json:"object,omitempty"`
	Description string `json:"description,omitempty"`
}

// BlankEvent создает бланк-событие: субъект на месте, действия нет.
func BlankEvent(subject string) TileEvent {
	return TileEvent{Subject: subject}
}

// NewEvent создает полное событие.
func NewEvent(subject, predicate, object, description string) TileEvent {
	return TileEvent{
		Subject:     subject,
		Predicate:   predicate,
		Object:      object,
		Description: description,
	}
}

// IsBlank возвращает true для бланк-событий.
func (e TileEvent) IsBlank() bool {
	return e.Predicate == "" && e.Object == "" && e.Description == ""
}

// Idle возвращает бланк-форму события (тот же субъект, действие снято).
func (e TileEvent) Idle() TileEvent {
	return BlankEvent(e.Subject)
}

// Triple возвращает SPO-тройку для логов.
func (e TileEvent) Triple() string {
	if e.IsBlank() {
		return fmt.Sprintf("(%s, idle)", e.Subject)
	}
	return fmt.Sprintf("(%s, %s, %s)", e.Subject, e.Predicate, e.Object)
}
