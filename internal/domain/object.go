package domain

import "fmt"

// GameObject — интерактивный объект штаба (стол, доска, телескоп...).
// Объекты не двигаются; их события живут на одном тайле весь запуск.
type GameObject struct {
	Name   string   `json:"name"`
	Sector string   `json:"sector"`
	Arena  string   `json:"arena"`
	Pos    Position `json:"pos"`
}

// Address возвращает полный адрес объекта в дереве пространственной памяти.
// Этот же адрес служит субъектом событий объекта и поэтому совпадает с
// act_address персонажа, который объект использует.
func (o GameObject) Address(world string) string {
	return fmt.Sprintf("%s:%s:%s:%s", world, o.Sector, o.Arena, o.Name)
}

// Blank возвращает посевное бланк-событие объекта: «свободен». Ровно это
// событие снимает персонаж, когда доходит до объекта и занимает его.
func (o GameObject) Blank(world string) TileEvent {
	return BlankEvent(o.Address(world))
}
