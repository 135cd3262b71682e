package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// SQLiteLessonRepository хранилище занятий в одном файле SQLite.
// Схема создаётся при открытии, goose здесь не нужен.
type SQLiteLessonRepository struct {
	db *sql.DB
}

// NewSQLiteLessonRepository открывает базу по пути (":memory:" для тестов)
func NewSQLiteLessonRepository(path string) (*SQLiteLessonRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// одно соединение: SQLite пишет из одного потока, а :memory: живёт в соединении
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	repo := &SQLiteLessonRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return repo, nil
}

func (r *SQLiteLessonRepository) migrate() error {
	if _, err := r.db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			teacher_name TEXT NOT NULL DEFAULT '',
			room TEXT NOT NULL,
			course_name TEXT NOT NULL DEFAULT '',
			lesson_date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			is_hybrid INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_date ON lessons(lesson_date, start_time)`,
	}
	for _, query := range queries {
		if _, err := r.db.Exec(query); err != nil {
			return fmt.Errorf("execute migration query: %w", err)
		}
	}
	return nil
}

func (r *SQLiteLessonRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteLessonRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const sqliteLessonColumns = `id, title, teacher_name, room, course_name, lesson_date, start_time, end_time, is_hybrid, created_at`

func (r *SQLiteLessonRepository) List(ctx context.Context, period *model.DateRange) ([]*model.Lesson, error) {
	query := `SELECT ` + sqliteLessonColumns + ` FROM lessons`
	var args []any
	if period != nil {
		query += ` WHERE lesson_date BETWEEN ? AND ?`
		args = append(args, model.DateOf(period.From).Format(model.DateLayout), model.DateOf(period.To).Format(model.DateLayout))
	}
	query += ` ORDER BY lesson_date, start_time, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanSQLiteLesson(rows)
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

func (r *SQLiteLessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteLessonColumns+` FROM lessons WHERE id = ?`, id)

	lesson, err := scanSQLiteLesson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrLessonNotFound
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}
	return lesson, nil
}

func (r *SQLiteLessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	createdAt := time.Now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO lessons (title, teacher_name, room, course_name, lesson_date, start_time, end_time, is_hybrid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lesson.Title,
		lesson.TeacherName,
		lesson.Room,
		lesson.CourseName,
		lesson.Date.Format(model.DateLayout),
		lesson.StartTime.String(),
		lesson.EndTime.String(),
		lesson.IsHybrid,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	lesson.ID = id
	lesson.CreatedAt = createdAt
	return nil
}

func (r *SQLiteLessonRepository) Update(ctx context.Context, id int64, upd model.LessonUpdate) (*model.Lesson, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	current, err := scanSQLiteLesson(tx.QueryRowContext(ctx, `SELECT `+sqliteLessonColumns+` FROM lessons WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrLessonNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	updated := upd.Apply(*current)
	_, err = tx.ExecContext(ctx, `
		UPDATE lessons
		SET title = ?, teacher_name = ?, room = ?, course_name = ?,
		    lesson_date = ?, start_time = ?, end_time = ?, is_hybrid = ?
		WHERE id = ?`,
		updated.Title,
		updated.TeacherName,
		updated.Room,
		updated.CourseName,
		updated.Date.Format(model.DateLayout),
		updated.StartTime.String(),
		updated.EndTime.String(),
		updated.IsHybrid,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &updated, nil
}

func (r *SQLiteLessonRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if affected == 0 {
		return model.ErrLessonNotFound
	}
	return nil
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteLesson(row sqlScanner) (*model.Lesson, error) {
	var (
		lesson                      model.Lesson
		date, start, end, createdAt string
	)
	err := row.Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.TeacherName,
		&lesson.Room,
		&lesson.CourseName,
		&date,
		&start,
		&end,
		&lesson.IsHybrid,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if lesson.Date, err = model.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parse lesson_date %q: %w", date, err)
	}
	if lesson.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return fillClock(&lesson, start, end)
}
