package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ChatID чат, из которого пришло обновление; 0 если не определён
func ChatID(update *models.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	default:
		return 0
	}
}

// AllowChats пропускает только обновления из разрешённых чатов.
// Пустой список разрешает всех.
func AllowChats(allowed []int64, logger *zap.Logger) bot.Middleware {
	set := make(map[int64]bool, len(allowed))
	for _, id := range allowed {
		set[id] = true
	}

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if len(set) == 0 {
				next(ctx, b, update)
				return
			}

			chatID := ChatID(update)
			if !set[chatID] {
				logger.Warn("Update from unknown chat ignored", zap.Int64("chat_id", chatID))
				return
			}
			next(ctx, b, update)
		}
	}
}
