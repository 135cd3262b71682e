package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/metrics"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// HolidayWarmer календарь, который можно прогреть на год вперёд
type HolidayWarmer interface {
	HolidaysForYear(year int) []model.Holiday
}

// SessionSweeper хранилище диалогов с ручной очисткой (in-memory)
type SessionSweeper interface {
	Cleanup(now time.Time) int
	Len() int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	holidays HolidayWarmer
	sessions SessionSweeper // nil, если сессии истекают сами (Redis)
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(holidays HolidayWarmer, sessions SessionSweeper, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		holidays: holidays,
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) run(ctx context.Context) {
	// Первый запуск сразу при старте
	s.Tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-s.stopChan:
			s.logger.Info("Background scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Background scheduler cancelled")
			return
		}
	}
}

// Tick один проход: праздники текущего и следующего года, очистка старых диалогов
func (s *Scheduler) Tick() {
	now := s.now()

	year := now.Year()
	warmed := len(s.holidays.HolidaysForYear(year)) + len(s.holidays.HolidaysForYear(year+1))
	s.logger.Debug("Holiday cache warmed", zap.Int("year", year), zap.Int("days", warmed))

	if s.sessions == nil {
		return
	}
	if removed := s.sessions.Cleanup(now); removed > 0 {
		s.logger.Info("Expired dialogues removed", zap.Int("count", removed))
	}
	metrics.ActiveDialogues.Set(float64(s.sessions.Len()))
}
