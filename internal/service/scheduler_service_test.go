package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/roster"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
	"github.com/Freeeeeet/academy_scheduler/internal/session"
)

var serviceNow = time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC)

func newSchedulerService(repo *memRepo, store session.Store) *SchedulerService {
	r := roster.Default()
	engine := scheduling.NewEngine(
		r,
		scheduling.NewGenerator(scheduling.DefaultPolicy(), holiday.New()),
		repo,
		zap.NewNop(),
		scheduling.WithNow(func() time.Time { return serviceNow }),
	)
	return NewSchedulerService(engine, store, newLessonService(repo), zap.NewNop())
}

func TestSchedulerService_ProposeAndConfirm(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.lessons[100] = model.Lesson{
		ID: 100, Title: "Pianoforte", TeacherName: "Bianchi Laura", Room: "Studio A",
		Date: model.Date(2026, time.January, 13), StartTime: model.NewClock(10, 0), EndTime: model.NewClock(11, 0),
	}
	repo.nextID = 100
	store := session.NewMemoryStore(time.Hour)
	svc := newSchedulerService(repo, store)

	res, err := svc.Turn(ctx, "api", "s1",
		"lezione di chitarra con Rossi il 6 gennaio dalle 10 alle 12 in Studio A, 3 lezioni ogni settimana")
	require.NoError(t, err)
	require.Equal(t, scheduling.OutcomeProposed, res.Outcome.Kind)
	assert.Equal(t, model.ProposalWarning, res.Outcome.Proposal.Status)
	assert.Equal(t, 1, res.Outcome.Proposal.Adjusted)

	stored, err := svc.Dialogue(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.Proposal)

	res, err = svc.Turn(ctx, "api", "s1", "conferma")
	require.NoError(t, err)
	assert.Equal(t, scheduling.OutcomeConfirmed, res.Outcome.Kind)
	require.Len(t, res.Saved, 3)
	assert.Equal(t, model.NewClock(11, 0), res.Saved[1].StartTime)
	assert.Len(t, repo.lessons, 4)
	assert.Zero(t, store.Len())
}

func TestSchedulerService_ConfirmFailureKeepsDialogue(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	store := session.NewMemoryStore(time.Hour)
	svc := newSchedulerService(repo, store)

	_, err := svc.Turn(ctx, "bot", "42", "canto domani alle 16 in Studio B, 2 lezioni ogni settimana")
	require.NoError(t, err)

	repo.failOn = 2
	res, err := svc.Turn(ctx, "bot", "42", "ok")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.Saved, 1)

	assert.Equal(t, model.Date(2025, time.December, 21), res.Saved[0].Date)

	d, err := svc.Dialogue(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, d.Proposal, "pending proposal kept for retry")
	assert.Equal(t, scheduling.StateAwaitingInput, d.State)
	require.Len(t, d.Proposal.Slots, 1, "only the unsaved slot is pending")
	assert.Equal(t, model.Date(2025, time.December, 28), d.Proposal.Slots[0].Date)
	assert.Equal(t, res.Dialogue.Proposal.GroupID, d.Proposal.GroupID)

	repo.failOn = 0
	res, err = svc.Turn(ctx, "bot", "42", "ok")
	require.NoError(t, err)
	assert.Equal(t, scheduling.OutcomeConfirmed, res.Outcome.Kind)
	require.Len(t, res.Saved, 1)
	assert.Equal(t, model.Date(2025, time.December, 28), res.Saved[0].Date)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, model.Date(2025, time.December, 21), all[0].Date)
	assert.Equal(t, model.Date(2025, time.December, 28), all[1].Date)
	assert.Zero(t, store.Len())
}

func TestSchedulerService_ConfirmFailureBeforeAnySave(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	store := session.NewMemoryStore(time.Hour)
	svc := newSchedulerService(repo, store)

	_, err := svc.Turn(ctx, "bot", "43", "canto domani alle 16 in Studio B, 2 lezioni ogni settimana")
	require.NoError(t, err)

	repo.failOn = 1
	res, err := svc.Turn(ctx, "bot", "43", "ok")
	require.Error(t, err)
	assert.Empty(t, res.Saved)

	d, err := svc.Dialogue(ctx, "43")
	require.NoError(t, err)
	require.NotNil(t, d.Proposal)
	assert.Len(t, d.Proposal.Slots, 2)

	res, err = svc.Turn(ctx, "bot", "43", "ok")
	require.NoError(t, err)
	assert.Len(t, res.Saved, 2)
	assert.Len(t, repo.lessons, 2)
}

func TestSchedulerService_NeedInputAndReset(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	svc := newSchedulerService(newMemRepo(), store)

	res, err := svc.Turn(ctx, "api", "s2", "lezione di chitarra")
	require.NoError(t, err)
	assert.Equal(t, scheduling.OutcomeNeedInput, res.Outcome.Kind)
	assert.Equal(t, []scheduling.Field{scheduling.FieldDate, scheduling.FieldStartHour, scheduling.FieldRoom}, res.Outcome.Missing)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, svc.Reset(ctx, "s2"))
	assert.Zero(t, store.Len())

	d, err := svc.Dialogue(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, scheduling.StateIdle, d.State)
}
