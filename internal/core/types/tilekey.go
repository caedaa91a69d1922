package types

import (
	"fmt"
)

// TileKey — 64-битный ключ тайла симуляции.
//
// TileKey является value-type и предназначен для дешёвого копирования,
// сравнения и использования в качестве ключа map (индексы леджера).
//
// Формат битов (от старших к младшим):
//
//	[ X (32) | Y (32) ]
//
// Где:
//   - X — координата столбца тайла (two's complement, int32)
//   - Y — координата строки тайла (two's complement, int32)
//
// Такой формат позволяет:
//   - индексировать события по тайлу одним map-lookup вместо вложенных map
//   - держать обратный индекс субъект→тайл одним словом
//   - сравнивать позиции без аллокаций
type TileKey uint64

// Конфигурация битов TileKey.
//
// Общее количество бит — 64.
const (
	// bitsCoord — количество бит на каждую координату.
	bitsCoord = 32

	// shiftX — сдвиг для записи/чтения координаты X.
	shiftX = bitsCoord

	// maskCoord — маска для извлечения одной координаты.
	maskCoord = (1 << bitsCoord) - 1
)

// PackTileKey собирает TileKey из координат тайла.
//
// Отрицательные координаты допускаются (two's complement), хотя карты
// симуляции используют только неотрицательные значения.
func PackTileKey(x, y int) TileKey {
	return TileKey(
		(uint64(uint32(int32(x))) << shiftX) |
			uint64(uint32(int32(y))),
	)
}

// X возвращает координату столбца тайла.
func (k TileKey) X() int {
	return int(int32(uint32(k >> shiftX)))
}

// Y возвращает координату строки тайла.
func (k TileKey) Y() int {
	return int(int32(uint32(k & maskCoord)))
}

// Unpack возвращает обе координаты тайла.
func (k TileKey) Unpack() (x, y int) {
	return k.X(), k.Y()
}

// String возвращает человекочитаемое представление ключа.
//
// Предназначено для логирования и отладки.
func (k TileKey) String() string {
	return fmt.Sprintf("(%d, %d)", k.X(), k.Y())
}
