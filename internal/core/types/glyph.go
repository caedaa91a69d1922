package types

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Glyph представляет упакованную пиктограмму действия персонажа
// (pronunciatio): одиночный Unicode code point в 32 битах.
//
// Формат:
//
//	[0:21]  - code point (21 бит, U+0000..U+10FFFF) - маска 0x1FFFFF
//	[21:32] - зарезервировано, всегда 0
//
// Составные эмодзи (ZWJ-последовательности, variation selectors) в Glyph
// не помещаются: для них уровень выше хранит строку как есть, а Glyph
// используется только для дефолтных пиктограмм состояний.
type Glyph uint32

// Константы для битовых операций с Glyph
const (
	// bitsRune — количество бит под code point (максимум U+10FFFF).
	bitsRune = 21

	// maskRune — маска для извлечения code point.
	maskRune = (1 << bitsRune) - 1
)

// GlyphNone — нулевая пиктограмма ("нет аннотации").
const GlyphNone Glyph = 0

// MakeGlyph создает Glyph из руны.
//
// Учитывается только валидный диапазон Unicode; суррогаты и значения за
// пределами U+10FFFF сворачиваются в GlyphNone.
//
// Пример:
//
//	g := MakeGlyph('💭')
//	// Внутреннее представление: 0x0001F4AD
func MakeGlyph(r rune) Glyph {
	if !utf8.ValidRune(r) {
		return GlyphNone
	}
	return Glyph(uint32(r) & maskRune)
}

// ParseGlyph извлекает первую руну строки-пиктограммы.
//
// Длинные последовательности усекаются до первого code point; пустая
// строка дает GlyphNone.
func ParseGlyph(s string) Glyph {
	if s == "" {
		return GlyphNone
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return GlyphNone
	}
	return MakeGlyph(r)
}

// Rune извлекает code point из Glyph.
func (g Glyph) Rune() rune {
	return rune(uint32(g) & maskRune)
}

// IsNone проверяет, является ли пиктограмма пустой.
func (g Glyph) IsNone() bool {
	return g == GlyphNone
}

// Text возвращает пиктограмму как строку для записи в выходные файлы.
//
// Для GlyphNone возвращается пустая строка.
func (g Glyph) Text() string {
	if g.IsNone() {
		return ""
	}
	return string(g.Rune())
}

// String возвращает человеко-читаемое представление Glyph.
// Реализует интерфейс fmt.Stringer.
// Формат: "Glyph{'💭' U+1F4AD}"
func (g Glyph) String() string {
	if g.IsNone() {
		return "Glyph{none}"
	}

	r := g.Rune()
	shown := string(r)

	// Для непечатаемых рун показываем только код
	if !unicode.IsGraphic(r) {
		return fmt.Sprintf("Glyph{U+%04X}", r)
	}

	return fmt.Sprintf("Glyph{'%s' U+%04X}", shown, r)
}
