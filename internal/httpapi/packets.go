package httpapi

import (
	"fmt"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

// LessonRequest тело POST /api/lessons
type LessonRequest struct {
	Title       string `json:"title" binding:"required"`
	TeacherName string `json:"teacher_name"`
	Room        string `json:"room" binding:"required"`
	CourseName  string `json:"course_name"`
	Date        string `json:"lesson_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsHybrid    bool   `json:"is_hybrid"`
}

func (r LessonRequest) toModel() (*model.Lesson, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: lesson_date: %v", model.ErrInvalidLesson, err)
	}
	start, err := model.ParseClock(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", model.ErrInvalidLesson, err)
	}
	end, err := model.ParseClock(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", model.ErrInvalidLesson, err)
	}

	return &model.Lesson{
		Title:       r.Title,
		TeacherName: r.TeacherName,
		Room:        r.Room,
		CourseName:  r.CourseName,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsHybrid:    r.IsHybrid,
	}, nil
}

// UpdateLessonRequest тело PATCH /api/lessons/:id; отсутствующие поля не меняются
type UpdateLessonRequest struct {
	Title       *string `json:"title"`
	TeacherName *string `json:"teacher_name"`
	Room        *string `json:"room"`
	CourseName  *string `json:"course_name"`
	Date        *string `json:"lesson_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsHybrid    *bool   `json:"is_hybrid"`
}

func (r UpdateLessonRequest) toModel() (model.LessonUpdate, error) {
	upd := model.LessonUpdate{
		Title:       r.Title,
		TeacherName: r.TeacherName,
		Room:        r.Room,
		CourseName:  r.CourseName,
		IsHybrid:    r.IsHybrid,
	}
	if r.Date != nil {
		date, err := model.ParseDate(*r.Date)
		if err != nil {
			return upd, fmt.Errorf("%w: lesson_date: %v", model.ErrInvalidLesson, err)
		}
		upd.Date = &date
	}
	if r.StartTime != nil {
		start, err := model.ParseClock(*r.StartTime)
		if err != nil {
			return upd, fmt.Errorf("%w: start_time: %v", model.ErrInvalidLesson, err)
		}
		upd.StartTime = &start
	}
	if r.EndTime != nil {
		end, err := model.ParseClock(*r.EndTime)
		if err != nil {
			return upd, fmt.Errorf("%w: end_time: %v", model.ErrInvalidLesson, err)
		}
		upd.EndTime = &end
	}
	return upd, nil
}

// MoveRequest перетаскивание: день и вертикальное смещение на сетке
type MoveRequest struct {
	Date    string   `json:"date" binding:"required"`
	OffsetY *float64 `json:"offset_y" binding:"required"`
}

type TurnRequest struct {
	Text string `json:"text" binding:"required"`
}

// TurnResponse ответ на сообщение диалога
type TurnResponse struct {
	Outcome  scheduling.Outcome  `json:"outcome"`
	Question string              `json:"question,omitempty"`
	Dialogue scheduling.Dialogue `json:"dialogue"`
	Saved    []*model.Lesson     `json:"saved,omitempty"`
}

type EndDateResponse struct {
	Start   string `json:"start"`
	Lessons int    `json:"lessons"`
	Days    []int  `json:"days"`
	EndDate string `json:"end_date"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
