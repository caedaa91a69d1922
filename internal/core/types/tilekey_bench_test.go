package types

import (
	"testing"
)

/*
   Sinks — обязательны.
   Нужны, чтобы компилятор не выкинул вычисления.
*/

var (
	sinkKey  TileKey
	sinkInt  int
	sinkBool bool
)

/*
   =========================
   noinline helpers
   =========================
*/

//go:noinline
func packTileKeyNoInline(x, y int) TileKey {
	return PackTileKey(x, y)
}

//go:noinline
func tileKeyXNoInline(k TileKey) int {
	return k.X()
}

//go:noinline
func tileKeyYNoInline(k TileKey) int {
	return k.Y()
}

/*
   =========================
   Benchmarks: TileKey
   =========================
*/

func BenchmarkPackTileKey(b *testing.B) {
	var key TileKey
	for i := 0; i < b.N; i++ {
		key = packTileKeyNoInline(i%60, i%50)
	}
	sinkKey = key
}

func BenchmarkTileKey_Unpack(b *testing.B) {
	key := PackTileKey(37, 21)
	var x, y int
	for i := 0; i < b.N; i++ {
		x = tileKeyXNoInline(key)
		y = tileKeyYNoInline(key)
	}
	sinkInt = x + y
}

// Сравнение TileKey-ключа с вложенными map: основной паттерн леджера.
func BenchmarkTileKey_MapLookup(b *testing.B) {
	m := make(map[TileKey]bool, 60*50)
	for x := 0; x < 60; x++ {
		for y := 0; y < 50; y++ {
			m[PackTileKey(x, y)] = true
		}
	}

	b.ResetTimer()

	var ok bool
	for i := 0; i < b.N; i++ {
		ok = m[PackTileKey(i%60, i%50)]
	}
	sinkBool = ok
}

func BenchmarkNestedMapLookup(b *testing.B) {
	m := make(map[int]map[int]bool, 60)
	for x := 0; x < 60; x++ {
		m[x] = make(map[int]bool, 50)
		for y := 0; y < 50; y++ {
			m[x][y] = true
		}
	}

	b.ResetTimer()

	var ok bool
	for i := 0; i < b.N; i++ {
		ok = m[i%60][i%50]
	}
	sinkBool = ok
}
