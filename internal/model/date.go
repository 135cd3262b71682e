package model

import (
	"fmt"
	"time"
)

// DateLayout формат даты на проводе (lesson_date)
const DateLayout = "2006-01-02"

// Date возвращает календарную дату (полночь UTC).
// Все даты уроков и праздников хранятся в этом виде, часовой пояс не учитывается.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf отбрасывает время суток, сохраняя настенный день
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// formatWireDate дата для JSON; нулевая дата даёт пустую строку
func formatWireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func parseWireDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// SameDay проверяет, совпадают ли календарные дни
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateRange включительный диапазон дат
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains проверяет попадание даты в диапазон
func (r DateRange) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(r.From)) && !d.After(DateOf(r.To))
}
