package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// Policy правила подбора слотов
type Policy struct {
	OpeningHour  int
	ClosingHour  int
	Offsets      []int // сдвиги в часах в порядке перебора
	SkipHolidays bool  // переносить занятие серии, выпавшее на праздник, на следующую неделю
}

// DefaultPolicy рабочее окно 08:00–22:00, сдвиги +1, -1, +2, -2
func DefaultPolicy() Policy {
	return Policy{
		OpeningHour: 8,
		ClosingHour: 22,
		Offsets:     []int{1, -1, 2, -2},
	}
}

// HolidayLookup календарь праздников, нужный генератору
type HolidayLookup interface {
	HolidayName(date time.Time) (string, bool)
	CalculateEndDate(startDate time.Time, totalLessons int, daysOfWeek []time.Weekday) time.Time
}

// Generator строит предложения занятий по полному контексту
type Generator struct {
	policy   Policy
	holidays HolidayLookup
}

func NewGenerator(policy Policy, holidays HolidayLookup) *Generator {
	return &Generator{policy: policy, holidays: holidays}
}

// Dates даты занятий серии
func (g *Generator) Dates(c Context) []time.Time {
	if c.Date == nil {
		return nil
	}
	start := model.DateOf(*c.Date)
	count := c.Count()
	dates := make([]time.Time, 0, count)

	if !c.IsWeekly {
		for i := 0; i < count; i++ {
			dates = append(dates, start)
		}
		return dates
	}

	for week := 0; len(dates) < count && week < count+maxHolidayWeeks; week++ {
		d := start.AddDate(0, 0, 7*week)
		if g.policy.SkipHolidays && g.holidays != nil {
			if _, ok := g.holidays.HolidayName(d); ok {
				continue
			}
		}
		dates = append(dates, d)
	}
	return dates
}

// праздники и каникулы не занимают больше года подряд
const maxHolidayWeeks = 53

// Generate раскладывает серию по датам, проверяет конфликты с существующими
// занятиями и между слотами самой серии, при конфликте перебирает сдвиги.
// Генерация не завершается ошибкой: неразрешённый конфликт остаётся пометкой.
func (g *Generator) Generate(c Context, existing []*model.Lesson) *model.Proposal {
	proposal := &model.Proposal{
		GroupID: uuid.New(),
		Status:  model.ProposalSuccess,
	}
	if c.Date == nil || c.StartHour == nil {
		proposal.Summary = "Dati insufficienti per proporre lezioni."
		return proposal
	}

	duration := c.DurationMinutes()
	taken := make([]*model.Lesson, 0, len(existing)+c.Count())
	taken = append(taken, existing...)

	for _, date := range g.Dates(c) {
		origStart := model.NewClock(*c.StartHour, 0)
		slot := model.ProposedLesson{
			Lesson: model.Lesson{
				Title:       c.Title(),
				TeacherName: c.Teacher,
				Room:        c.Room,
				CourseName:  c.Course,
				Date:        date,
				StartTime:   origStart,
				EndTime:     origStart + model.Clock(duration),
			},
			OriginalStartHour: *c.StartHour,
		}
		if g.holidays != nil {
			if name, ok := g.holidays.HolidayName(date); ok {
				slot.Holiday = name
			}
		}

		if clash := findConflict(taken, date, slot.StartTime, slot.EndTime, c.Room, c.Teacher); clash != nil {
			g.resolve(&slot, clash, taken, c)
			if slot.Adjusted {
				proposal.Adjusted++
			}
			proposal.Conflicts = append(proposal.Conflicts, slot.Note)
		}

		proposal.Slots = append(proposal.Slots, slot)
		placed := slot.Lesson
		taken = append(taken, &placed)
	}

	if proposal.Adjusted > 0 || proposal.Unresolved() > 0 {
		proposal.Status = model.ProposalWarning
	}
	proposal.SeriesEnd = g.seriesEnd(c, proposal)
	proposal.Summary = summarize(proposal)
	return proposal
}

// resolve перебирает сдвиги; первый свободный слот внутри рабочего окна принимается
func (g *Generator) resolve(slot *model.ProposedLesson, clash *model.Lesson, taken []*model.Lesson, c Context) {
	duration := slot.DurationMinutes()
	opening := model.NewClock(g.policy.OpeningHour, 0)
	closing := model.NewClock(g.policy.ClosingHour, 0)

	for _, offset := range g.policy.Offsets {
		start := model.NewClock(slot.OriginalStartHour+offset, 0)
		end := start + model.Clock(duration)
		if start < opening || end > closing {
			continue
		}
		if findConflict(taken, slot.Date, start, end, c.Room, c.Teacher) != nil {
			continue
		}
		slot.Note = fmt.Sprintf("%s: conflitto con %s, spostata %s-%s → %s-%s",
			slot.Date.Format("02/01/2006"), describe(clash),
			slot.StartTime, slot.EndTime, start, end)
		slot.StartTime = start
		slot.EndTime = end
		slot.Adjusted = true
		return
	}

	slot.Conflict = true
	slot.Note = fmt.Sprintf("%s: conflitto non risolto con %s",
		slot.Date.Format("02/01/2006"), describe(clash))
}

// seriesEnd последний день серии; праздники учитываются так же, как в Dates
func (g *Generator) seriesEnd(c Context, p *model.Proposal) time.Time {
	if len(p.Slots) == 0 {
		return time.Time{}
	}
	first := p.Slots[0].Date
	if c.IsWeekly && g.policy.SkipHolidays && g.holidays != nil {
		return g.holidays.CalculateEndDate(first, c.Count(), []time.Weekday{first.Weekday()})
	}
	return p.Slots[len(p.Slots)-1].Date
}

// findConflict первое занятие, пересекающееся со слотом по аудитории или преподавателю
func findConflict(lessons []*model.Lesson, date time.Time, start, end model.Clock, room, teacher string) *model.Lesson {
	for _, l := range lessons {
		if conflicts(l, date, start, end, room, teacher) {
			return l
		}
	}
	return nil
}

// conflicts: тот же день, та же аудитория или тот же преподаватель, пересечение
// полуинтервалов [start, end)
func conflicts(l *model.Lesson, date time.Time, start, end model.Clock, room, teacher string) bool {
	if !model.SameDay(l.Date, date) {
		return false
	}
	sameRoom := room != "" && strings.EqualFold(strings.TrimSpace(l.Room), strings.TrimSpace(room))
	sameTeacher := false
	if t := strings.ToLower(strings.TrimSpace(teacher)); t != "" {
		sameTeacher = strings.Contains(strings.ToLower(l.Title), t) ||
			strings.Contains(strings.ToLower(l.TeacherName), t)
	}
	if !sameRoom && !sameTeacher {
		return false
	}
	return start < l.EndTime && end > l.StartTime
}

func describe(l *model.Lesson) string {
	return fmt.Sprintf("«%s» in %s %s-%s", l.Title, l.Room, l.StartTime, l.EndTime)
}

func summarize(p *model.Proposal) string {
	n := len(p.Slots)
	if p.Status == model.ProposalSuccess {
		return fmt.Sprintf("%d %s senza conflitti.", n, plural(n, "lezione proposta", "lezioni proposte"))
	}
	return fmt.Sprintf("%d %s: %d %s per conflitti, %d %s.",
		n, plural(n, "lezione proposta", "lezioni proposte"),
		p.Adjusted, plural(p.Adjusted, "spostata", "spostate"),
		p.Unresolved(), plural(p.Unresolved(), "conflitto irrisolto", "conflitti irrisolti"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
