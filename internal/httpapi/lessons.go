package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// GET /api/lessons?from=YYYY-MM-DD&to=YYYY-MM-DD; без параметров все занятия
func (s *Server) listLessons(c *gin.Context) {
	period, err := parsePeriod(c.Query("from"), c.Query("to"))
	if err != nil {
		badRequest(c, err)
		return
	}

	lessons, err := s.deps.Lessons.List(c.Request.Context(), period)
	if err != nil {
		fail(c, err)
		return
	}
	if lessons == nil {
		lessons = []*model.Lesson{}
	}
	c.JSON(http.StatusOK, lessons)
}

func (s *Server) getLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lesson, err := s.deps.Lessons.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (s *Server) createLesson(c *gin.Context) {
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lesson, err := req.toModel()
	if err != nil {
		fail(c, err)
		return
	}
	if err := s.deps.Lessons.Create(c.Request.Context(), lesson); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (s *Server) updateLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	upd, err := req.toModel()
	if err != nil {
		fail(c, err)
		return
	}

	lesson, err := s.deps.Lessons.Update(c.Request.Context(), id, upd)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (s *Server) deleteLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.deps.Lessons.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/lessons/:id/move: при ошибке записи в ответе исходное занятие
func (s *Server) moveLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		badRequest(c, fmt.Errorf("date: %w", err))
		return
	}

	lesson, err := s.deps.Lessons.Move(c.Request.Context(), id, date, *req.OffsetY)
	if err != nil {
		if lesson != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "move not saved", "lesson": lesson})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func parsePeriod(from, to string) (*model.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("both from and to are required")
	}

	start, err := model.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	end, err := model.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("to is before from")
	}
	return &model.DateRange{From: start, To: end}, nil
}
