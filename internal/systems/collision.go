package systems

import (
	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/hqmap"
)

// Смещения 4-соседства. Персоны ходят только по ортогоналям, как и пути,
// которые строит планировщик.
var cardinal = [4][2]int{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

// Walkable проверяет, может ли персона занять тайл: внутри карты
// и не в стене.
func Walkable(m *hqmap.Maze, pos domain.Position) bool {
	return m.InBounds(pos) && m.WalkableAt(pos)
}

// WalkableNeighbors возвращает проходимых ортогональных соседей тайла.
// Порядок обхода фиксированный (N, E, S, W): от него зависит
// детерминизм поиска пути.
func WalkableNeighbors(m *hqmap.Maze, pos domain.Position) []domain.Position {
	out := make([]domain.Position, 0, 4)
	for _, d := range cardinal {
		n := pos.Shift(d[0], d[1])
		if Walkable(m, n) {
			out = append(out, n)
		}
	}
	return out
}
