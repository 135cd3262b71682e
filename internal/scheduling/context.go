package scheduling

import (
	"time"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// Field обязательное поле запроса на планирование
type Field string

const (
	FieldNone            Field = ""
	FieldTeacherOrCourse Field = "teacher_or_course"
	FieldDate            Field = "date"
	FieldStartHour       Field = "start_hour"
	FieldRoom            Field = "room"
)

// Context накопленные за диалог параметры запроса. Пустые поля = не указаны.
type Context struct {
	Teacher         string     `json:"teacher,omitempty"`
	Room            string     `json:"room,omitempty"`
	Course          string     `json:"course,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	StartHour       *int       `json:"start_hour,omitempty"`
	EndHour         *int       `json:"end_hour,omitempty"`
	RecurrenceCount int        `json:"recurrence_count,omitempty"` // 0 = одно занятие
	IsWeekly        bool       `json:"is_weekly,omitempty"`
}

// IsEmpty true если в контексте нет ни одного параметра
func (c Context) IsEmpty() bool {
	return c.Teacher == "" && c.Room == "" && c.Course == "" && c.Date == nil &&
		c.StartHour == nil && c.EndHour == nil && c.RecurrenceCount == 0 && !c.IsWeekly
}

// Merge накладывает значения нового хода поверх накопленных.
// Поле меняется только если в новом сообщении есть соответствующая подсказка.
func (c Context) Merge(next Context) Context {
	if next.Teacher != "" {
		c.Teacher = next.Teacher
	}
	if next.Room != "" {
		c.Room = next.Room
	}
	if next.Course != "" {
		c.Course = next.Course
	}
	if next.Date != nil {
		d := *next.Date
		c.Date = &d
	}
	if next.StartHour != nil {
		h := *next.StartHour
		c.StartHour = &h
		c.EndHour = nil
	}
	if next.EndHour != nil {
		h := *next.EndHour
		c.EndHour = &h
	}
	if next.RecurrenceCount > 0 {
		c.RecurrenceCount = next.RecurrenceCount
	}
	if next.IsWeekly {
		c.IsWeekly = true
	}
	return c
}

// Missing недостающие поля в фиксированном порядке приоритета
func (c Context) Missing() []Field {
	var missing []Field
	if c.Teacher == "" && c.Course == "" {
		missing = append(missing, FieldTeacherOrCourse)
	}
	if c.Date == nil {
		missing = append(missing, FieldDate)
	}
	if c.StartHour == nil {
		missing = append(missing, FieldStartHour)
	}
	if c.Room == "" {
		missing = append(missing, FieldRoom)
	}
	return missing
}

// Count количество занятий в серии (минимум 1)
func (c Context) Count() int {
	if c.RecurrenceCount < 1 {
		return 1
	}
	return c.RecurrenceCount
}

// DurationMinutes длительность занятия; без конца диапазона один час
func (c Context) DurationMinutes() int {
	if c.StartHour == nil || c.EndHour == nil || *c.EndHour <= *c.StartHour {
		return 60
	}
	return (*c.EndHour - *c.StartHour) * 60
}

// Title заголовок будущих занятий
func (c Context) Title() string {
	if c.Course != "" {
		return c.Course
	}
	return "Lezione " + c.Teacher
}

// State состояние диалога
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingInput State = "awaiting_input"
)

// Dialogue состояние одного диалога планирования
type Dialogue struct {
	State     State           `json:"state"`
	Context   Context         `json:"context"`
	Proposal  *model.Proposal `json:"proposal,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Awaiting поле, ответ на которое ожидается от пользователя
func (d Dialogue) Awaiting() Field {
	if d.State != StateAwaitingInput {
		return FieldNone
	}
	missing := d.Context.Missing()
	if len(missing) == 0 {
		return FieldNone
	}
	return missing[0]
}

func intPtr(v int) *int {
	return &v
}

func datePtr(t time.Time) *time.Time {
	return &t
}
