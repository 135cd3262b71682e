package session

import (
	"context"

	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

// Store хранит диалоги планирования по ключу (chat id или id сессии API).
// Отсутствующий диалог читается как пустой в состоянии idle.
type Store interface {
	Load(ctx context.Context, key string) (scheduling.Dialogue, error)
	Save(ctx context.Context, key string, d scheduling.Dialogue) error
	Delete(ctx context.Context, key string) error
}

// isBlank пустой диалог хранить незачем
func isBlank(d scheduling.Dialogue) bool {
	return (d.State == scheduling.StateIdle || d.State == "") && d.Proposal == nil && d.Context.IsEmpty()
}

func idle() scheduling.Dialogue {
	return scheduling.Dialogue{State: scheduling.StateIdle}
}
