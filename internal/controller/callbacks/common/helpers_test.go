package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

func TestParseDateFromCallback(t *testing.T) {
	date, err := ParseDateFromCallback("week:2026-01-12", "week:")
	require.NoError(t, err)
	assert.Equal(t, model.Date(2026, time.January, 12), date)

	_, err = ParseDateFromCallback("day:2026-01-12", "week:")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseDateFromCallback("week:12/01", "week:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseProposalFromCallback(t *testing.T) {
	id := uuid.New()

	got, err := ParseProposalFromCallback("proposal_confirm:"+id.String(), "proposal_confirm:")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseProposalFromCallback("proposal_confirm", "proposal_confirm:")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseProposalFromCallback("proposal_confirm:abc", "proposal_confirm:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCheckProposal(t *testing.T) {
	current := &model.Proposal{GroupID: uuid.New()}
	pending := scheduling.Dialogue{State: scheduling.StateAwaitingInput, Proposal: current}

	assert.NoError(t, CheckProposal(pending, current.GroupID))
	// кнопка под предложением, которое уже уточнили новым сообщением
	assert.ErrorIs(t, CheckProposal(pending, uuid.New()), ErrStaleProposal)
	assert.ErrorIs(t, CheckProposal(scheduling.Dialogue{}, current.GroupID), ErrStaleProposal)
	assert.Equal(t, "⚠️ Questa proposta non è più attiva", ErrorMessage(ErrStaleProposal))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", fmt.Errorf("get lesson: %w", model.ErrLessonNotFound), "❌ Lezione non trovata"},
		{"invalid", fmt.Errorf("save slot 1 of 3: %w", model.ErrInvalidLesson), "❌ Lezione non valida: controlla orari e aula"},
		{"no message", ErrNoMessage, "❌ Messaggio non disponibile"},
		{"other", errors.New("boom"), "❌ Si è verificato un errore, riprova più tardi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "-100123", SessionKey(-100123))
}
