package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

var errStoreDown = errors.New("store down")

// memRepo хранилище занятий для тестов сервисов
type memRepo struct {
	mu        sync.Mutex
	lessons   map[int64]model.Lesson
	nextID    int64
	failOn    int // номер вызова Create, который вернёт ошибку (0 = никогда)
	creates   int
	updateErr error
}

func newMemRepo() *memRepo {
	return &memRepo{lessons: make(map[int64]model.Lesson)}
}

func (r *memRepo) List(_ context.Context, period *model.DateRange) ([]*model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Lesson
	for _, l := range r.lessons {
		if period != nil && !period.Contains(l.Date) {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lessons[id]
	if !ok {
		return nil, model.ErrLessonNotFound
	}
	return &l, nil
}

func (r *memRepo) Create(_ context.Context, lesson *model.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.creates++
	if r.failOn > 0 && r.creates == r.failOn {
		return errStoreDown
	}
	r.nextID++
	lesson.ID = r.nextID
	r.lessons[lesson.ID] = *lesson
	return nil
}

func (r *memRepo) Update(_ context.Context, id int64, upd model.LessonUpdate) (*model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return nil, r.updateErr
	}
	l, ok := r.lessons[id]
	if !ok {
		return nil, model.ErrLessonNotFound
	}
	l = upd.Apply(l)
	r.lessons[id] = l
	return &l, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lessons[id]; !ok {
		return model.ErrLessonNotFound
	}
	delete(r.lessons, id)
	return nil
}
