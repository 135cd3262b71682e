package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/repository/base"
)

// LessonRepository хранилище занятий в PostgreSQL
type LessonRepository struct {
	*base.Repository
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{Repository: base.NewRepository(pool)}
}

const lessonColumns = `id, title, teacher_name, room, course_name, lesson_date,
		start_time::text, end_time::text, is_hybrid, created_at`

// List занятия за период (nil = все), по дате и времени начала
func (r *LessonRepository) List(ctx context.Context, period *model.DateRange) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons`
	var args []any
	if period != nil {
		query += ` WHERE lesson_date BETWEEN $1 AND $2`
		args = append(args, model.DateOf(period.From), model.DateOf(period.To))
	}
	query += ` ORDER BY lesson_date, start_time, id`

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return lessons, nil
}

// GetByID занятие по ID; model.ErrLessonNotFound если его нет
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.ErrLessonNotFound
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}
	return lesson, nil
}

// Create сохраняет занятие и проставляет ID и created_at
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (title, teacher_name, room, course_name, lesson_date, start_time, end_time, is_hybrid)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7::time, $8)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		lesson.Title,
		lesson.TeacherName,
		lesson.Room,
		lesson.CourseName,
		model.DateOf(lesson.Date),
		lesson.StartTime.String(),
		lesson.EndTime.String(),
		lesson.IsHybrid,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// Update применяет частичное обновление в транзакции и возвращает новое состояние
func (r *LessonRepository) Update(ctx context.Context, id int64, upd model.LessonUpdate) (*model.Lesson, error) {
	var updated model.Lesson

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		current, err := scanLesson(tx.QueryRow(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrLessonNotFound
			}
			return fmt.Errorf("lock lesson: %w", err)
		}

		updated = upd.Apply(*current)
		query := `
			UPDATE lessons
			SET title = $2, teacher_name = $3, room = $4, course_name = $5,
			    lesson_date = $6, start_time = $7::time, end_time = $8::time, is_hybrid = $9
			WHERE id = $1
		`
		_, err = tx.Exec(ctx, query,
			id,
			updated.Title,
			updated.TeacherName,
			updated.Room,
			updated.CourseName,
			model.DateOf(updated.Date),
			updated.StartTime.String(),
			updated.EndTime.String(),
			updated.IsHybrid,
		)
		if err != nil {
			return fmt.Errorf("update lesson: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет занятие; model.ErrLessonNotFound если удалять нечего
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if affected == 0 {
		return model.ErrLessonNotFound
	}
	return nil
}

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var (
		lesson     model.Lesson
		start, end string
	)
	err := row.Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.TeacherName,
		&lesson.Room,
		&lesson.CourseName,
		&lesson.Date,
		&start,
		&end,
		&lesson.IsHybrid,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fillClock(&lesson, start, end)
}

func fillClock(lesson *model.Lesson, start, end string) (*model.Lesson, error) {
	var err error
	if lesson.StartTime, err = model.ParseClock(start); err != nil {
		return nil, fmt.Errorf("scan lesson %d start: %w", lesson.ID, err)
	}
	if lesson.EndTime, err = model.ParseClock(end); err != nil {
		return nil, fmt.Errorf("scan lesson %d end: %w", lesson.ID, err)
	}
	lesson.Date = model.DateOf(lesson.Date)
	return lesson, nil
}
