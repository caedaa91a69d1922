package domain

import (
	"fmt"
	"time"
)

// Форматы времени симуляции. Файловый протокол с рендерером использует
// американский полнотекстовый формат, унаследованный от формата meta.json.
// Запись идет с ведущим нулем в дне ("March 01"), как писал legacy-бэкенд;
// разбор принимает день и с нулем, и без.
const (
	ClockLayout = "January 02, 2006, 15:04:05"
	DateLayout  = "January 02, 2006"

	clockParseLayout = "January 2, 2006, 15:04:05"
	dateParseLayout  = "January 2, 2006"
)

// SimClock — симулированные часы. Монотонно растут на sec_per_step за
// каждый успешный цикл; реальное время процесса на них не влияет.
type SimClock struct {
	t time.Time
}

// ParseClock разбирает строку часов из meta.json / выходного снапшота.
func ParseClock(s string) (SimClock, error) {
	t, err := time.Parse(clockParseLayout, s)
	if err != nil {
		return SimClock{}, fmt.Errorf("bad sim clock %q: %w", s, err)
	}
	return SimClock{t: t}, nil
}

// ParseDate разбирает дату старта (без времени суток).
func ParseDate(s string) (SimClock, error) {
	t, err := time.Parse(dateParseLayout, s)
	if err != nil {
		return SimClock{}, fmt.Errorf("bad sim date %q: %w", s, err)
	}
	return SimClock{t: t}, nil
}

// Advance возвращает часы, сдвинутые на secs секунд вперед.
func (c SimClock) Advance(secs int) SimClock {
	return SimClock{t: c.t.Add(time.Duration(secs) * time.Second)}
}

// String возвращает каноническую строку часов для выходных файлов.
func (c SimClock) String() string {
	return c.t.Format(ClockLayout)
}

// DateString возвращает только дату (формат start_date).
func (c SimClock) DateString() string {
	return c.t.Format(DateLayout)
}

// Time возвращает значение часов как time.Time.
func (c SimClock) Time() time.Time {
	return c.t
}

// IsZero возвращает true для неинициализированных часов.
func (c SimClock) IsZero() bool {
	return c.t.IsZero()
}

// Equal сравнивает два значения часов.
func (c SimClock) Equal(other SimClock) bool {
	return c.t.Equal(other.t)
}

// Sub возвращает разницу часов.
func (c SimClock) Sub(other SimClock) time.Duration {
	return c.t.Sub(other.t)
}
