package systems

import (
	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/hqmap"
)

// VisibleTiles возвращает тайлы в зоне восприятия персоны: квадрат
// радиуса Чебышёва radius вокруг center, обрезанный границами карты.
// Центр включается, стены не фильтруются: персона видит тайл стены,
// просто событий на нем не бывает. Порядок построчный.
func VisibleTiles(m *hqmap.Maze, center domain.Position, radius int) []domain.Position {
	if radius < 0 {
		return nil
	}

	side := 2*radius + 1
	out := make([]domain.Position, 0, side*side)
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			p := domain.Position{X: x, Y: y}
			if m.InBounds(p) {
				out = append(out, p)
			}
		}
	}
	return out
}
