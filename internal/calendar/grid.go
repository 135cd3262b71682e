package calendar

import (
	"math"
	"time"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// Grid геометрия недельной сетки: часы по вертикали.
// Одна и та же сетка используется для картинки и для перетаскивания занятий.
type Grid struct {
	StartHour     int     // первый час сетки
	EndHour       int     // последний час (не включительно)
	PixelsPerHour float64 // высота одного часа
	SnapMinutes   int     // шаг привязки при перетаскивании
}

// DefaultGrid 08:00–22:00, минута = пиксель, привязка к 15 минутам
func DefaultGrid() Grid {
	return Grid{StartHour: 8, EndHour: 22, PixelsPerHour: 60, SnapMinutes: 15}
}

// Height высота сетки в пикселях
func (g Grid) Height() float64 {
	return float64(g.EndHour-g.StartHour) * g.PixelsPerHour
}

// OffsetOf вертикальное смещение времени от верха сетки
func (g Grid) OffsetOf(c model.Clock) float64 {
	minutes := int(c) - g.StartHour*60
	return float64(minutes) * g.PixelsPerHour / 60
}

// TimeAt время по смещению от верха сетки, привязанное к ближайшей границе шага
func (g Grid) TimeAt(offsetY float64) model.Clock {
	minutes := g.StartHour*60 + int(math.Round(offsetY*60/g.PixelsPerHour))

	snap := g.SnapMinutes
	if snap <= 0 {
		snap = 1
	}
	snapped := int(math.Round(float64(minutes)/float64(snap))) * snap

	if snapped < 0 {
		snapped = 0
	}
	if snapped > model.MinutesPerDay {
		snapped = model.MinutesPerDay
	}
	return model.Clock(snapped)
}

// Move переносит занятие на date и время по смещению.
// Длительность сохраняется, конец не выходит за полночь. Конфликты не проверяются.
func (g Grid) Move(l model.Lesson, date time.Time, offsetY float64) model.Lesson {
	duration := model.Clock(l.DurationMinutes())
	start := g.TimeAt(offsetY)
	if start+duration > model.MinutesPerDay {
		start = model.MinutesPerDay - duration
	}
	if start < 0 {
		start = 0
	}

	l.Date = model.DateOf(date)
	l.StartTime = start
	l.EndTime = start + duration
	return l
}

// WeekStart понедельник недели, в которую попадает date
func WeekStart(date time.Time) time.Time {
	d := model.DateOf(date)
	daysSinceMonday := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}
	return d.AddDate(0, 0, -daysSinceMonday)
}

// Week диапазон Пн–Вс недели с date
func Week(date time.Time) model.DateRange {
	start := WeekStart(date)
	return model.DateRange{From: start, To: start.AddDate(0, 0, 6)}
}
