package common

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

// ChannelBot метка канала в метриках
const ChannelBot = "bot"

// RunTurn передаёт текст в диалог планировщика и отвечает в чат
func RunTurn(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID int64, text string) {
	if h.ThinkDelay > 0 {
		b.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionTyping,
		})
		select {
		case <-ctx.Done():
			return
		case <-time.After(h.ThinkDelay):
		}
	}

	res, err := h.Scheduler.Turn(ctx, ChannelBot, SessionKey(chatID), text)
	if err != nil {
		h.Logger.Error("Scheduling turn failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))

		msg := ErrorMessage(err)
		if res != nil && len(res.Saved) > 0 {
			msg += "\n\n" + formatting.FormatSaved(res.Saved)
		}
		if res != nil && res.Outcome.Kind == scheduling.OutcomeConfirmed && res.Dialogue.Proposal != nil {
			// в диалоге остались только несохранённые слоты, их можно подтвердить ещё раз
			SendText(ctx, b, h.Logger, chatID, msg, keyboard.Proposal(res.Dialogue.Proposal.GroupID))
			return
		}
		SendText(ctx, b, h.Logger, chatID, msg, nil)
		return
	}

	var markup *models.InlineKeyboardMarkup
	if res.Outcome.Kind == scheduling.OutcomeProposed && res.Outcome.Proposal != nil {
		markup = keyboard.Proposal(res.Outcome.Proposal.GroupID)
	}
	SendText(ctx, b, h.Logger, chatID, formatting.FormatOutcome(res.Outcome, res.Saved), markup)
}
