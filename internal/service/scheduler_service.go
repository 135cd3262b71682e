package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/metrics"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
	"github.com/Freeeeeet/academy_scheduler/internal/session"
)

// TurnResult итог одного сообщения
type TurnResult struct {
	Outcome  scheduling.Outcome
	Dialogue scheduling.Dialogue
	Saved    []*model.Lesson // заполнено при подтверждении
}

// SchedulerService связывает движок диалога, хранилище сессий и сохранение занятий
type SchedulerService struct {
	engine   *scheduling.Engine
	sessions session.Store
	lessons  *LessonService
	logger   *zap.Logger
}

func NewSchedulerService(engine *scheduling.Engine, sessions session.Store, lessons *LessonService, logger *zap.Logger) *SchedulerService {
	return &SchedulerService{
		engine:   engine,
		sessions: sessions,
		lessons:  lessons,
		logger:   logger,
	}
}

// Turn обрабатывает сообщение пользователя в сессии key.
// Новый диалог сохраняется только после успешной записи подтверждённых занятий.
func (s *SchedulerService) Turn(ctx context.Context, channel, key, text string) (*TurnResult, error) {
	started := time.Now()
	defer func() {
		metrics.TurnDuration.WithLabelValues(channel).Observe(time.Since(started).Seconds())
	}()

	current, err := s.sessions.Load(ctx, key)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("sessions", "load").Inc()
		return nil, fmt.Errorf("load dialogue: %w", err)
	}

	next, outcome, err := s.engine.ProcessTurn(ctx, current, text)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("lessons", "list").Inc()
		return nil, fmt.Errorf("process turn: %w", err)
	}

	result := &TurnResult{Outcome: outcome, Dialogue: next}

	if outcome.Kind == scheduling.OutcomeConfirmed {
		saved, err := s.lessons.ConfirmProposal(ctx, outcome.Proposal)
		result.Saved = saved
		if err != nil {
			result.Dialogue = s.keepUnsaved(ctx, key, current, len(saved))
			return result, fmt.Errorf("confirm proposal: %w", err)
		}
	}

	if err := s.sessions.Save(ctx, key, next); err != nil {
		metrics.StoreErrors.WithLabelValues("sessions", "save").Inc()
		return nil, fmt.Errorf("save dialogue: %w", err)
	}

	metrics.TurnsTotal.WithLabelValues(channel, string(outcome.Kind)).Inc()
	if outcome.Kind == scheduling.OutcomeProposed && outcome.Proposal != nil {
		metrics.ProposalsTotal.WithLabelValues(string(outcome.Proposal.Status)).Inc()
		metrics.SlotsAdjusted.Add(float64(outcome.Proposal.Adjusted))
		metrics.SlotsConflicted.Add(float64(outcome.Proposal.Unresolved()))
	}

	s.logger.Debug("Turn processed",
		zap.String("channel", channel),
		zap.String("session", key),
		zap.String("outcome", string(outcome.Kind)))
	return result, nil
}

// keepUnsaved после частичного сохранения оставляет в предложении только
// несохранённые слоты, повторное подтверждение записывает лишь их
func (s *SchedulerService) keepUnsaved(ctx context.Context, key string, current scheduling.Dialogue, saved int) scheduling.Dialogue {
	if saved == 0 || current.Proposal == nil {
		return current
	}

	next := current
	next.Proposal = current.Proposal.Rest(saved)
	if err := s.sessions.Save(ctx, key, next); err != nil {
		metrics.StoreErrors.WithLabelValues("sessions", "save").Inc()
		s.logger.Error("Failed to save remaining proposal",
			zap.String("session", key),
			zap.Int("saved", saved),
			zap.Error(err))
		return current
	}
	return next
}

// Dialogue текущее состояние сессии
func (s *SchedulerService) Dialogue(ctx context.Context, key string) (scheduling.Dialogue, error) {
	d, err := s.sessions.Load(ctx, key)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("sessions", "load").Inc()
		return scheduling.Dialogue{}, fmt.Errorf("load dialogue: %w", err)
	}
	return d, nil
}

// Reset сбрасывает диалог
func (s *SchedulerService) Reset(ctx context.Context, key string) error {
	if err := s.sessions.Delete(ctx, key); err != nil {
		metrics.StoreErrors.WithLabelValues("sessions", "delete").Inc()
		return fmt.Errorf("reset dialogue: %w", err)
	}
	return nil
}
