package callbacktypes

import (
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/service"
)

// Handler содержит общие зависимости для команд и callback handlers
type Handler struct {
	Scheduler *service.SchedulerService
	Lessons   *service.LessonService
	Holidays  *holiday.Calendar
	Logger    *zap.Logger

	// ThinkDelay пауза перед ответом на сообщение диалога
	ThinkDelay time.Duration
	Now        func() time.Time
}

// Today текущая дата (по часам Handler.Now, если задан)
func (h *Handler) Today() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
