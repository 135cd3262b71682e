package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/calendar"
	"github.com/Freeeeeet/academy_scheduler/internal/metrics"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/roster"
)

// LessonRepository хранилище занятий (PostgreSQL или SQLite)
type LessonRepository interface {
	List(ctx context.Context, period *model.DateRange) ([]*model.Lesson, error)
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	Create(ctx context.Context, lesson *model.Lesson) error
	Update(ctx context.Context, id int64, upd model.LessonUpdate) (*model.Lesson, error)
	Delete(ctx context.Context, id int64) error
}

type LessonService struct {
	repo   LessonRepository
	roster *roster.Roster
	grid   calendar.Grid
	logger *zap.Logger
}

func NewLessonService(repo LessonRepository, r *roster.Roster, grid calendar.Grid, logger *zap.Logger) *LessonService {
	return &LessonService{
		repo:   repo,
		roster: r,
		grid:   grid,
		logger: logger,
	}
}

// Grid геометрия сетки для перетаскивания
func (s *LessonService) Grid() calendar.Grid {
	return s.grid
}

// List занятия за период; nil значит все
func (s *LessonService) List(ctx context.Context, period *model.DateRange) ([]*model.Lesson, error) {
	lessons, err := s.repo.List(ctx, period)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("lessons", "list").Inc()
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// ListWeek занятия недели (Пн–Вс), в которую попадает date
func (s *LessonService) ListWeek(ctx context.Context, date time.Time) (model.DateRange, []*model.Lesson, error) {
	week := calendar.Week(date)
	lessons, err := s.List(ctx, &week)
	return week, lessons, err
}

func (s *LessonService) Get(ctx context.Context, id int64) (*model.Lesson, error) {
	lesson, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrLessonNotFound) {
			metrics.StoreErrors.WithLabelValues("lessons", "get").Inc()
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return lesson, nil
}

// Create проверяет занятие и сохраняет его
func (s *LessonService) Create(ctx context.Context, lesson *model.Lesson) error {
	if err := s.check(lesson); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, lesson); err != nil {
		metrics.StoreErrors.WithLabelValues("lessons", "create").Inc()
		s.logger.Error("Failed to create lesson",
			zap.String("title", lesson.Title),
			zap.Error(err))
		return fmt.Errorf("create lesson: %w", err)
	}

	metrics.LessonMutations.WithLabelValues("create").Inc()
	s.logger.Info("Lesson created",
		zap.Int64("lesson_id", lesson.ID),
		zap.String("room", lesson.Room),
		zap.String("date", lesson.Date.Format(model.DateLayout)))
	return nil
}

// Update частичное изменение занятия с проверкой результата
func (s *LessonService) Update(ctx context.Context, id int64, upd model.LessonUpdate) (*model.Lesson, error) {
	if upd.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", model.ErrInvalidLesson)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	candidate := upd.Apply(*current)
	if err := s.check(&candidate); err != nil {
		return nil, err
	}
	upd.Room = &candidate.Room

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if !errors.Is(err, model.ErrLessonNotFound) {
			metrics.StoreErrors.WithLabelValues("lessons", "update").Inc()
		}
		return nil, fmt.Errorf("update lesson: %w", err)
	}

	metrics.LessonMutations.WithLabelValues("update").Inc()
	return updated, nil
}

func (s *LessonService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, model.ErrLessonNotFound) {
			metrics.StoreErrors.WithLabelValues("lessons", "delete").Inc()
		}
		return fmt.Errorf("delete lesson: %w", err)
	}

	metrics.LessonMutations.WithLabelValues("delete").Inc()
	s.logger.Info("Lesson deleted", zap.Int64("lesson_id", id))
	return nil
}

// Move перенос занятия перетаскиванием: новый день и смещение по сетке.
// При ошибке записи возвращается исходное занятие без изменений вместе с ошибкой.
// Конфликты на этом пути не проверяются.
func (s *LessonService) Move(ctx context.Context, id int64, date time.Time, offsetY float64) (*model.Lesson, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := s.grid.Move(*original, date, offsetY)
	updated, err := s.repo.Update(ctx, id, model.LessonUpdate{
		Date:      &moved.Date,
		StartTime: &moved.StartTime,
		EndTime:   &moved.EndTime,
	})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("lessons", "move").Inc()
		s.logger.Warn("Failed to move lesson, keeping original",
			zap.Int64("lesson_id", id),
			zap.Error(err))
		return original, fmt.Errorf("move lesson: %w", err)
	}

	metrics.LessonMutations.WithLabelValues("move").Inc()
	s.logger.Info("Lesson moved",
		zap.Int64("lesson_id", id),
		zap.String("date", updated.Date.Format(model.DateLayout)),
		zap.String("start", updated.StartTime.String()))
	return updated, nil
}

// ConfirmProposal сохраняет слоты предложения по порядку.
// На первой ошибке останавливается и возвращает уже сохранённые занятия.
func (s *LessonService) ConfirmProposal(ctx context.Context, p *model.Proposal) ([]*model.Lesson, error) {
	if p == nil || len(p.Slots) == 0 {
		return nil, fmt.Errorf("%w: empty proposal", model.ErrInvalidLesson)
	}

	saved := make([]*model.Lesson, 0, len(p.Slots))
	for i, slot := range p.Slots {
		lesson := slot.Lesson
		lesson.ID = 0
		if err := s.Create(ctx, &lesson); err != nil {
			s.logger.Error("Proposal partially saved",
				zap.String("group_id", p.GroupID.String()),
				zap.Int("saved", len(saved)),
				zap.Int("total", len(p.Slots)),
				zap.Error(err))
			return saved, fmt.Errorf("save slot %d of %d: %w", i+1, len(p.Slots), err)
		}
		saved = append(saved, &lesson)
	}

	s.logger.Info("Proposal confirmed",
		zap.String("group_id", p.GroupID.String()),
		zap.Int("lessons", len(saved)))
	return saved, nil
}

// check инварианты занятия и аудитория из справочника; название аудитории приводится к каноническому
func (s *LessonService) check(lesson *model.Lesson) error {
	if err := lesson.Validate(); err != nil {
		return err
	}
	room, ok := s.roster.RoomByName(lesson.Room)
	if !ok {
		return fmt.Errorf("%w: unknown room %q", model.ErrInvalidLesson, lesson.Room)
	}
	lesson.Room = room
	lesson.Date = model.DateOf(lesson.Date)
	return nil
}
