package domain

import (
	"fmt"
	"math"

	"travian-hq-server/internal/core/types"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key возвращает упакованный ключ тайла для map-индексов.
func (p Position) Key() types.TileKey {
	return types.PackTileKey(p.X, p.Y)
}

// FromKey восстанавливает позицию из упакованного ключа.
func FromKey(k types.TileKey) Position {
	x, y := k.Unpack()
	return Position{X: x, Y: y}
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	return math.Sqrt(math.Pow(float64(p.X-other.X), 2) + math.Pow(float64(p.Y-other.Y), 2))
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ChebyshevTo возвращает расстояние Чебышёва (max(|dx|, |dy|)).
// Радиус восприятия персонажей измеряется именно так: квадрат, а не круг.
func (p Position) ChebyshevTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	// Если разница по X и Y не больше 1, значит соседи
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// Shift возвращает новую позицию со смещением (не меняя текущую, т.к. Go передает структуры по значению, если не указатель)
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
