package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
	"github.com/Freeeeeet/academy_scheduler/internal/session"
)

type countingCalendar struct {
	*holiday.Calendar
	years []int
}

func (c *countingCalendar) HolidaysForYear(year int) []model.Holiday {
	c.years = append(c.years, year)
	return c.Calendar.HolidaysForYear(year)
}

func TestScheduler_Tick(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	ctx := context.Background()
	assert.NoError(t, store.Save(ctx, "old", scheduling.Dialogue{State: scheduling.StateAwaitingInput}))

	cal := &countingCalendar{Calendar: holiday.New()}
	s := NewScheduler(cal, store, time.Minute, zap.NewNop())
	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	s.Tick()

	year := s.now().Year()
	assert.Equal(t, []int{year, year + 1}, cal.years)
	assert.Equal(t, 0, store.Len())
}

func TestScheduler_TickWithoutSweeper(t *testing.T) {
	cal := &countingCalendar{Calendar: holiday.New()}
	s := NewScheduler(cal, nil, time.Minute, zap.NewNop())

	assert.NotPanics(t, s.Tick)
	assert.Len(t, cal.years, 2)
}

func TestScheduler_StartStop(t *testing.T) {
	cal := &countingCalendar{Calendar: holiday.New()}
	s := NewScheduler(cal, nil, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	s.Stop()
}
