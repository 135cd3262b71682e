package common

import (
	"errors"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrStaleProposal = errors.New("proposal is no longer pending")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrLessonNotFound):
		return "❌ Lezione non trovata"
	case errors.Is(err, model.ErrInvalidLesson):
		return "❌ Lezione non valida: controlla orari e aula"
	case errors.Is(err, ErrNoMessage):
		return "❌ Messaggio non disponibile"
	case errors.Is(err, ErrStaleProposal):
		return "⚠️ Questa proposta non è più attiva"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Formato dati non valido"
	default:
		return "❌ Si è verificato un errore, riprova più tardi"
	}
}
