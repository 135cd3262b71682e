package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

// Требует живой Redis: REDIS_TEST_ADDR=localhost:6379
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := NewRedisClient(addr, os.Getenv("REDIS_TEST_PASSWORD"))
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client, time.Minute)
	require.NoError(t, store.Ping(context.Background()))
	return store
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)
	key := "test-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	date := model.Date(2026, time.January, 6)
	start := 10
	in := scheduling.Dialogue{
		State:   scheduling.StateAwaitingInput,
		Context: scheduling.Context{Teacher: "Rossi Mario", Room: "Studio A", Date: &date, StartHour: &start},
		Proposal: &model.Proposal{
			Status: model.ProposalWarning,
			Slots: []model.ProposedLesson{{
				Lesson:   model.Lesson{Title: "Chitarra", Room: "Studio A", Date: date, StartTime: model.NewClock(11, 0), EndTime: model.NewClock(13, 0)},
				Adjusted: true,
				Holiday:  "Epifania",
			}},
		},
	}
	require.NoError(t, s.Save(ctx, key, in))

	out, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, in.Context.Teacher, out.Context.Teacher)
	require.NotNil(t, out.Context.Date)
	assert.True(t, date.Equal(*out.Context.Date))
	require.NotNil(t, out.Proposal)
	require.Len(t, out.Proposal.Slots, 1)
	assert.Equal(t, model.NewClock(11, 0), out.Proposal.Slots[0].StartTime)
	assert.True(t, date.Equal(out.Proposal.Slots[0].Date))
	assert.Equal(t, "Epifania", out.Proposal.Slots[0].Holiday)

	require.NoError(t, s.Save(ctx, key, scheduling.Dialogue{State: scheduling.StateIdle}))
	out, err = s.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, out.Proposal)
}
