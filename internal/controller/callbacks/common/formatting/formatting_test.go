package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

func slot(day int, start, end model.Clock) model.ProposedLesson {
	return model.ProposedLesson{Lesson: model.Lesson{
		Title:       "Chitarra",
		TeacherName: "Rossi Mario",
		Room:        "Studio A",
		Date:        model.Date(2026, time.January, day),
		StartTime:   start,
		EndTime:     end,
	}}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{45, "45 min"},
		{60, "1 h"},
		{90, "1 h 30 min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes))
	}
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "martedì 13 gennaio 2026", FormatLongDate(model.Date(2026, time.January, 13)))
	assert.Equal(t, "?", WeekdayName(time.Weekday(9)))
	assert.Equal(t, "?", MonthName(time.Month(0)))
}

func TestPluralizeLessons(t *testing.T) {
	assert.Equal(t, "1 lezione", PluralizeLessons(1))
	assert.Equal(t, "0 lezioni", PluralizeLessons(0))
	assert.Equal(t, "12 lezioni", PluralizeLessons(12))
}

func TestFormatProposal(t *testing.T) {
	holidaySlot := slot(6, model.NewClock(10, 0), model.NewClock(12, 0))
	holidaySlot.Holiday = "Epifania"
	moved := slot(13, model.NewClock(11, 0), model.NewClock(13, 0))
	moved.Adjusted = true
	stuck := slot(20, model.NewClock(10, 0), model.NewClock(12, 0))
	stuck.Conflict = true

	p := &model.Proposal{
		Slots:     []model.ProposedLesson{holidaySlot, moved, stuck},
		Status:    model.ProposalWarning,
		Adjusted:  1,
		Conflicts: []string{"13/01/2026: conflitto spostato", "20/01/2026: conflitto non risolto"},
		Summary:   "3 lezioni proposte: 1 spostata per conflitti, 1 conflitto irrisolto.",
		SeriesEnd: model.Date(2026, time.January, 27),
	}

	text := FormatProposal(p)
	assert.Contains(t, text, "⚠️ 3 lezioni proposte")
	assert.Contains(t, text, "▫️ 1. 06/01/2026 10:00-12:00 · Chitarra · Studio A · Rossi Mario (festivo: Epifania)")
	assert.Contains(t, text, "🔁 2. 13/01/2026 11:00-13:00")
	assert.Contains(t, text, "❗ 3. 20/01/2026 10:00-12:00")
	assert.Contains(t, text, "• 20/01/2026: conflitto non risolto")
	assert.Contains(t, text, "Fine del ciclo: martedì 27 gennaio 2026")
	assert.Contains(t, text, "Confermi?")
}

func TestFormatProposal_SingleSlotHasNoSeriesEnd(t *testing.T) {
	p := &model.Proposal{
		Slots:     []model.ProposedLesson{slot(13, model.NewClock(10, 0), model.NewClock(11, 0))},
		Status:    model.ProposalSuccess,
		Summary:   "1 lezione proposta senza conflitti.",
		SeriesEnd: model.Date(2026, time.January, 13),
	}

	text := FormatProposal(p)
	assert.Contains(t, text, "✅ ")
	assert.NotContains(t, text, "Fine del ciclo")
	assert.NotContains(t, text, "Conflitti:")
}

func TestFormatOutcome(t *testing.T) {
	need := scheduling.Outcome{Kind: scheduling.OutcomeNeedInput, Hint: scheduling.FieldRoom}
	assert.Equal(t, scheduling.Question(scheduling.FieldRoom), FormatOutcome(need, nil))

	cancelled := scheduling.Outcome{Kind: scheduling.OutcomeCancelled}
	assert.Contains(t, FormatOutcome(cancelled, nil), "annullata")

	saved := []*model.Lesson{{
		Title: "Canto", Room: "Studio B",
		Date:      model.Date(2026, time.March, 2),
		StartTime: model.NewClock(9, 0), EndTime: model.NewClock(10, 0),
	}}
	confirmed := scheduling.Outcome{Kind: scheduling.OutcomeConfirmed}
	text := FormatOutcome(confirmed, saved)
	assert.Contains(t, text, "1 lezione")
	assert.Contains(t, text, "02/03/2026 09:00-10:00 · Canto · Studio B")
}

func TestFormatHolidays_CollapsesClosures(t *testing.T) {
	holidays := []model.Holiday{
		{Date: model.Date(2026, time.July, 27), Name: "Chiusura estiva", Type: model.HolidayLocal},
		{Date: model.Date(2026, time.July, 28), Name: "Chiusura estiva", Type: model.HolidayLocal},
		{Date: model.Date(2026, time.July, 29), Name: "Chiusura estiva", Type: model.HolidayLocal},
		{Date: model.Date(2026, time.August, 15), Name: "Ferragosto", Type: model.HolidayNational},
	}

	text := FormatHolidays(2026, holidays)
	assert.Contains(t, text, "🏫 27/07/2026 - 29/07/2026: Chiusura estiva")
	assert.Contains(t, text, "🇮🇹 15/08/2026: Ferragosto")
	assert.Contains(t, text, "4 festività")
}

func TestFormatWeek(t *testing.T) {
	week := model.DateRange{From: model.Date(2026, time.March, 2), To: model.Date(2026, time.March, 8)}
	assert.Contains(t, FormatWeek(week, nil), "Nessuna lezione.")

	lessons := []*model.Lesson{{
		Title: "Violino", Room: "Aula Teoria",
		Date:      model.Date(2026, time.March, 3),
		StartTime: model.NewClock(15, 0), EndTime: model.NewClock(16, 30),
	}}
	assert.Contains(t, FormatWeek(week, lessons), "martedì 03/03/2026 15:00-16:30 · Violino · Aula Teoria")
	assert.Equal(t, "🗓 Settimana 02/03/2026 - 08/03/2026 · 1 lezione", WeekCaption(week, 1))
}
