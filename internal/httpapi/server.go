package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/metrics"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/service"
)

// Pinger зависимость, проверяемая в /healthz
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Lessons   *service.LessonService
	Scheduler *service.SchedulerService
	Holidays  *holiday.Calendar
	Checks    map[string]Pinger
	Logger    *zap.Logger
}

type Server struct {
	deps Deps
}

// NewRouter собирает gin-движок со всеми маршрутами
func NewRouter(deps Deps) *gin.Engine {
	s := &Server{deps: deps}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(deps.Logger))

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		lessons := api.Group("/lessons")
		lessons.GET("", s.listLessons)
		lessons.POST("", s.createLesson)
		lessons.GET("/:id", s.getLesson)
		lessons.PATCH("/:id", s.updateLesson)
		lessons.DELETE("/:id", s.deleteLesson)
		lessons.POST("/:id/move", s.moveLesson)

		api.GET("/holidays", s.listHolidays)
		api.GET("/holidays/end-date", s.endDate)

		scheduler := api.Group("/scheduler/:session")
		scheduler.GET("", s.getDialogue)
		scheduler.POST("/turn", s.turn)
		scheduler.DELETE("", s.resetDialogue)
	}

	return r
}

// requestLogger логирует запросы через zap и считает их в метриках
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(started)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP request failed", fields...)
			return
		}
		logger.Debug("HTTP request", fields...)
	}
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{}
	healthy := true
	for name, check := range s.deps.Checks {
		if err := check.Ping(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// fail переводит ошибку в HTTP-статус
func fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, model.ErrLessonNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrInvalidLesson):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lesson id"})
		return 0, false
	}
	return id, true
}
