package types

import (
	"testing"
)

func TestTileKey_X(t *testing.T) {
	tests := []struct {
		name string
		key  TileKey
		want int
	}{
		{
			name: "X zero",
			key:  TileKey(0),
			want: 0,
		},
		{
			name: "X simple",
			key:  TileKey(uint64(42) << shiftX),
			want: 42,
		},
		{
			name: "X ignores Y bits",
			key:  TileKey(uint64(7)<<shiftX | 99),
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.X(); got != tt.want {
				t.Errorf("X() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTileKey_Y(t *testing.T) {
	tests := []struct {
		name string
		key  TileKey
		want int
	}{
		{
			name: "Y zero",
			key:  TileKey(0),
			want: 0,
		},
		{
			name: "Y simple",
			key:  TileKey(25),
			want: 25,
		},
		{
			name: "Y ignores X bits",
			key:  TileKey(uint64(maskCoord)<<shiftX | 13),
			want: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Y(); got != tt.want {
				t.Errorf("Y() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPackTileKey(t *testing.T) {
	tests := []struct {
		name string
		x    int
		y    int
	}{
		{"All zero", 0, 0},
		{"Simple values", 12, 7},
		{"Map corner", 59, 49},
		{"Negative coordinates", -3, -8},
		{"Mixed signs", -1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := PackTileKey(tt.x, tt.y)

			if key.X() != tt.x {
				t.Errorf("X() = %v, want %v", key.X(), tt.x)
			}
			if key.Y() != tt.y {
				t.Errorf("Y() = %v, want %v", key.Y(), tt.y)
			}

			x, y := key.Unpack()
			if x != tt.x || y != tt.y {
				t.Errorf("Unpack() = (%v, %v), want (%v, %v)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestPackTileKey_Distinct(t *testing.T) {
	// Соседние тайлы не должны коллидировать: ключ — это map-индекс леджера.
	seen := make(map[TileKey]bool)
	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			key := PackTileKey(x, y)
			if seen[key] {
				t.Fatalf("collision at (%d, %d): key %v already seen", x, y, key)
			}
			seen[key] = true
		}
	}
}

func TestTileKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  TileKey
		want string
	}{
		{"Origin", PackTileKey(0, 0), "(0, 0)"},
		{"Spawn tile", PackTileKey(10, 7), "(10, 7)"},
		{"Negative", PackTileKey(-4, 3), "(-4, 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// FuzzPackTileKey проверяет инвариант:
// PackTileKey → извлечение координат → равенство исходным значениям.
func FuzzPackTileKey(f *testing.F) {
	// Сидовые значения (важно для воспроизводимости)
	f.Add(int32(0), int32(0))
	f.Add(int32(59), int32(49))
	f.Add(int32(-1), int32(-1))
	f.Add(int32(2147483647), int32(-2147483648))

	f.Fuzz(func(t *testing.T, x, y int32) {
		key := PackTileKey(int(x), int(y))

		if got := key.X(); got != int(x) {
			t.Fatalf("X mismatch: got %d, want %d", got, x)
		}
		if got := key.Y(); got != int(y) {
			t.Fatalf("Y mismatch: got %d, want %d", got, y)
		}
	})
}
