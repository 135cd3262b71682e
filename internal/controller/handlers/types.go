package handlers

import (
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/callbacktypes"
)

// Handlers обработчики команд и текстовых сообщений
type Handlers struct {
	*callbacktypes.Handler
}

// NewHandlers создаёт обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{Handler: deps}
}
