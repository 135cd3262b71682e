package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Lesson одно занятие в календаре академии
type Lesson struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	TeacherName string    `json:"teacher_name"` // свободный текст, сравнивается по подстроке
	Room        string    `json:"room"`
	CourseName  string    `json:"course_name"`
	Date        time.Time `json:"lesson_date"` // календарный день, см. Date()
	StartTime   Clock     `json:"start_time"`
	EndTime     Clock     `json:"end_time"`
	IsHybrid    bool      `json:"is_hybrid"` // на расписание не влияет
	CreatedAt   time.Time `json:"created_at"`
}

// lessonFields те же поля без методов Lesson
type lessonFields Lesson

// MarshalJSON lesson_date в формате YYYY-MM-DD
func (l Lesson) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		lessonFields
		Date string `json:"lesson_date"`
	}{
		lessonFields: lessonFields(l),
		Date:         formatWireDate(l.Date),
	})
}

func (l *Lesson) UnmarshalJSON(data []byte) error {
	var aux struct {
		lessonFields
		Date string `json:"lesson_date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	date, err := parseWireDate(aux.Date)
	if err != nil {
		return fmt.Errorf("lesson_date: %w", err)
	}
	*l = Lesson(aux.lessonFields)
	l.Date = date
	return nil
}

// DurationMinutes длительность занятия в минутах
func (l *Lesson) DurationMinutes() int {
	return int(l.EndTime - l.StartTime)
}

// Validate проверяет базовые инварианты перед сохранением
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidLesson)
	}
	if strings.TrimSpace(l.Room) == "" {
		return fmt.Errorf("%w: room is required", ErrInvalidLesson)
	}
	if l.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidLesson)
	}
	if l.EndTime <= l.StartTime {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidLesson)
	}
	if l.StartTime < 0 || l.EndTime > MinutesPerDay {
		return fmt.Errorf("%w: time out of day bounds", ErrInvalidLesson)
	}
	return nil
}

// LessonUpdate частичное обновление занятия (nil = не менять)
type LessonUpdate struct {
	Title       *string
	TeacherName *string
	Room        *string
	CourseName  *string
	Date        *time.Time
	StartTime   *Clock
	EndTime     *Clock
	IsHybrid    *bool
}

// Apply применяет обновление к копии занятия
func (u LessonUpdate) Apply(l Lesson) Lesson {
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.TeacherName != nil {
		l.TeacherName = *u.TeacherName
	}
	if u.Room != nil {
		l.Room = *u.Room
	}
	if u.CourseName != nil {
		l.CourseName = *u.CourseName
	}
	if u.Date != nil {
		l.Date = DateOf(*u.Date)
	}
	if u.StartTime != nil {
		l.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		l.EndTime = *u.EndTime
	}
	if u.IsHybrid != nil {
		l.IsHybrid = *u.IsHybrid
	}
	return l
}

// IsEmpty true если нечего обновлять
func (u LessonUpdate) IsEmpty() bool {
	return u.Title == nil && u.TeacherName == nil && u.Room == nil && u.CourseName == nil &&
		u.Date == nil && u.StartTime == nil && u.EndTime == nil && u.IsHybrid == nil
}
