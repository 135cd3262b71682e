package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

var weekdayNames = [...]string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

var monthNames = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// FormatDate 02/01/2006
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatLongDate «martedì 13 gennaio 2026»
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", WeekdayName(t.Weekday()), t.Day(), MonthName(t.Month()), t.Year())
}

// FormatTimeRange 10:00-11:30
func FormatTimeRange(start, end model.Clock) string {
	return fmt.Sprintf("%s-%s", start, end)
}

// FormatDuration длительность в минутах: «45 min», «1 h», «1 h 30 min»
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}

// WeekdayName название дня недели по-итальянски
func WeekdayName(weekday time.Weekday) string {
	if weekday < time.Sunday || weekday > time.Saturday {
		return "?"
	}
	return weekdayNames[weekday]
}

func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return "?"
	}
	return monthNames[month-1]
}
