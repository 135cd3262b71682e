package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

// FormatProposal текст предложения: сводка, слоты, заметки о конфликтах
func FormatProposal(p *model.Proposal) string {
	var sb strings.Builder

	if p.Status == model.ProposalSuccess {
		sb.WriteString("✅ ")
	} else {
		sb.WriteString("⚠️ ")
	}
	sb.WriteString(p.Summary)
	sb.WriteString("\n\n")

	for i, slot := range p.Slots {
		sb.WriteString(formatSlot(i+1, slot))
		sb.WriteString("\n")
	}

	if len(p.Conflicts) > 0 {
		sb.WriteString("\nConflitti:\n")
		for _, c := range p.Conflicts {
			sb.WriteString("• ")
			sb.WriteString(c)
			sb.WriteString("\n")
		}
	}

	if len(p.Slots) > 1 && !p.SeriesEnd.IsZero() {
		fmt.Fprintf(&sb, "\nFine del ciclo: %s\n", FormatLongDate(p.SeriesEnd))
	}

	sb.WriteString("\nConfermi?")
	return sb.String()
}

func formatSlot(n int, slot model.ProposedLesson) string {
	mark := "▫️"
	switch {
	case slot.Conflict:
		mark = "❗"
	case slot.Adjusted:
		mark = "🔁"
	}

	line := fmt.Sprintf("%s %d. %s %s · %s · %s",
		mark, n,
		FormatDate(slot.Date),
		FormatTimeRange(slot.StartTime, slot.EndTime),
		slot.Title,
		slot.Room,
	)
	if slot.TeacherName != "" {
		line += " · " + slot.TeacherName
	}
	if slot.Holiday != "" {
		line += fmt.Sprintf(" (festivo: %s)", slot.Holiday)
	}
	return line
}

// FormatOutcome ответ бота на сообщение диалога
func FormatOutcome(outcome scheduling.Outcome, saved []*model.Lesson) string {
	switch outcome.Kind {
	case scheduling.OutcomeNeedInput:
		return scheduling.Question(outcome.Hint)
	case scheduling.OutcomeProposed:
		if outcome.Proposal == nil {
			return "Nessuna proposta."
		}
		return FormatProposal(outcome.Proposal)
	case scheduling.OutcomeConfirmed:
		return FormatSaved(saved)
	case scheduling.OutcomeCancelled:
		return "Va bene, richiesta annullata."
	default:
		return ""
	}
}

// FormatSaved подтверждение сохранённых занятий
func FormatSaved(saved []*model.Lesson) string {
	if len(saved) == 0 {
		return "Nessuna lezione da salvare."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📌 Salvate in calendario: %s\n", PluralizeLessons(len(saved)))
	for _, l := range saved {
		fmt.Fprintf(&sb, "• %s %s · %s · %s\n",
			FormatDate(l.Date), FormatTimeRange(l.StartTime, l.EndTime), l.Title, l.Room)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatHolidays список праздников года для /festivi
func FormatHolidays(year int, holidays []model.Holiday) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 Festività e chiusure %d (%s)\n\n", year, PluralizeHolidays(len(holidays)))

	// дни каникул идут подряд, показываем их одним интервалом
	for i := 0; i < len(holidays); {
		h := holidays[i]
		j := i
		for j+1 < len(holidays) && holidays[j+1].Name == h.Name &&
			holidays[j+1].Date.Equal(holidays[j].Date.AddDate(0, 0, 1)) {
			j++
		}

		mark := "🇮🇹"
		if h.Type == model.HolidayLocal {
			mark = "🏫"
		}
		if j > i {
			fmt.Fprintf(&sb, "%s %s - %s: %s\n", mark, FormatDate(h.Date), FormatDate(holidays[j].Date), h.Name)
		} else {
			fmt.Fprintf(&sb, "%s %s: %s\n", mark, FormatDate(h.Date), h.Name)
		}
		i = j + 1
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatWeek текстовая неделя, если картинку построить не удалось
func FormatWeek(week model.DateRange, lessons []*model.Lesson) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 Settimana %s - %s\n", FormatDate(week.From), FormatDate(week.To))
	if len(lessons) == 0 {
		sb.WriteString("\nNessuna lezione.")
		return sb.String()
	}
	for _, l := range lessons {
		fmt.Fprintf(&sb, "\n%s %s %s · %s · %s",
			WeekdayName(l.Date.Weekday()), FormatDate(l.Date),
			FormatTimeRange(l.StartTime, l.EndTime), l.Title, l.Room)
	}
	return sb.String()
}

// WeekCaption подпись к картинке недели
func WeekCaption(week model.DateRange, lessons int) string {
	return fmt.Sprintf("🗓 Settimana %s - %s · %s", FormatDate(week.From), FormatDate(week.To), PluralizeLessons(lessons))
}
