package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/roster"
)

// LessonSource источник уже существующих занятий для проверки конфликтов
type LessonSource interface {
	List(ctx context.Context, period *model.DateRange) ([]*model.Lesson, error)
}

type OutcomeKind string

const (
	OutcomeNeedInput OutcomeKind = "need_input"
	OutcomeProposed  OutcomeKind = "proposed"
	OutcomeConfirmed OutcomeKind = "confirmed"
	OutcomeCancelled OutcomeKind = "cancelled"
)

// Outcome результат одного хода диалога
type Outcome struct {
	Kind     OutcomeKind     `json:"kind"`
	Missing  []Field         `json:"missing,omitempty"`
	Hint     Field           `json:"hint,omitempty"`
	Proposal *model.Proposal `json:"proposal,omitempty"`
}

// Question вопрос пользователю по недостающему полю
func Question(f Field) string {
	switch f {
	case FieldTeacherOrCourse:
		return "Per quale corso o con quale insegnante?"
	case FieldDate:
		return "In che giorno? (es. 6 gennaio, 6/1, martedì, domani)"
	case FieldStartHour:
		return "A che ora? (es. alle 10, dalle 10 alle 12)"
	case FieldRoom:
		return "In quale aula?"
	default:
		return ""
	}
}

type Engine struct {
	roster    *roster.Roster
	generator *Generator
	source    LessonSource
	logger    *zap.Logger
	now       func() time.Time
}

type EngineOption func(*Engine)

// WithNow подменяет часы (для тестов)
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(r *roster.Roster, generator *Generator, source LessonSource, logger *zap.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		roster:    r,
		generator: generator,
		source:    source,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessTurn обрабатывает одно сообщение и возвращает новое состояние диалога.
// При ошибке чтения занятий возвращается исходный диалог.
func (e *Engine) ProcessTurn(ctx context.Context, d Dialogue, text string) (Dialogue, Outcome, error) {
	now := e.now()
	u := newUtterance(text)

	if isCancel(u) {
		return Dialogue{State: StateIdle, UpdatedAt: now}, Outcome{Kind: OutcomeCancelled, Proposal: d.Proposal}, nil
	}
	if d.Proposal != nil && isConfirm(u) {
		return Dialogue{State: StateIdle, UpdatedAt: now}, Outcome{Kind: OutcomeConfirmed, Proposal: d.Proposal}, nil
	}

	partial := Extract(text, e.roster, now, d.Awaiting())

	base := Context{}
	if d.State == StateAwaitingInput {
		base = d.Context
		// новый запрос поверх висящего предложения
		if d.Proposal != nil && (partial.Teacher != "" || partial.Course != "") && partial.Date != nil {
			base = Context{}
		}
	}

	merged := base.Merge(partial)
	next := Dialogue{State: StateAwaitingInput, Context: merged, UpdatedAt: now}

	if missing := merged.Missing(); len(missing) > 0 {
		e.logger.Debug("scheduling input missing",
			zap.Strings("missing", fieldNames(missing)),
		)
		return next, Outcome{Kind: OutcomeNeedInput, Missing: missing, Hint: missing[0]}, nil
	}

	dates := e.generator.Dates(merged)
	if len(dates) == 0 {
		return next, Outcome{Kind: OutcomeNeedInput, Missing: []Field{FieldDate}, Hint: FieldDate}, nil
	}

	existing, err := e.source.List(ctx, &model.DateRange{From: dates[0], To: dates[len(dates)-1]})
	if err != nil {
		return d, Outcome{}, fmt.Errorf("list lessons: %w", err)
	}

	proposal := e.generator.Generate(merged, existing)
	next.Proposal = proposal

	e.logger.Info("lessons proposed",
		zap.String("group_id", proposal.GroupID.String()),
		zap.Int("slots", len(proposal.Slots)),
		zap.String("status", string(proposal.Status)),
		zap.Int("adjusted", proposal.Adjusted),
	)
	return next, Outcome{Kind: OutcomeProposed, Proposal: proposal}, nil
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}
