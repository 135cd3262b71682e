package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common/keyboard"
)

// Route распределяет callback query по обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case strings.HasPrefix(data, keyboard.ProposalConfirm):
		handleProposalAnswer(ctx, b, callback, h, keyboard.ProposalConfirm, "conferma")
	case strings.HasPrefix(data, keyboard.ProposalCancel):
		handleProposalAnswer(ctx, b, callback, h, keyboard.ProposalCancel, "annulla")
	case strings.HasPrefix(data, keyboard.WeekPrefix):
		handleWeek(ctx, b, callback, h)
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}

// handleProposalAnswer кнопки под предложением работают как ответ текстом,
// если предложение из callback data всё ещё ждёт ответа
func handleProposalAnswer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, prefix, answer string) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	groupID, err := common.ParseProposalFromCallback(callback.Data, prefix)
	if err != nil {
		h.Logger.Warn("Bad proposal callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	d, err := h.Scheduler.Dialogue(ctx, common.SessionKey(msg.Chat.ID))
	if err != nil {
		h.Logger.Error("Failed to load dialogue", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	// убираем кнопки, чтобы предложение нельзя было подтвердить дважды
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: keyboard.Empty(),
	})

	if err := common.CheckProposal(d, groupID); err != nil {
		h.Logger.Info("Stale proposal button",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.String("group_id", groupID.String()))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "")

	common.RunTurn(ctx, b, h, msg.Chat.ID, answer)
}

func handleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	date, err := common.ParseDateFromCallback(callback.Data, keyboard.WeekPrefix)
	if err != nil {
		h.Logger.Warn("Bad week callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if err := common.SendWeek(ctx, b, h, msg.Chat.ID, date); err != nil {
		h.Logger.Error("Failed to send week", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	// Удаляем старое сообщение
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}
