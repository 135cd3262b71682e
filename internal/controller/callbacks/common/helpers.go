package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseDateFromCallback извлекает дату из callback data
// Например: "week:2026-01-12" -> 2026-01-12
func ParseDateFromCallback(data, prefix string) (time.Time, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return time.Time{}, ErrInvalidFormat
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return date, nil
}

// ParseProposalFromCallback извлекает группу предложения из callback data
func ParseProposalFromCallback(data, prefix string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return uuid.Nil, ErrInvalidFormat
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return id, nil
}

// CheckProposal кнопка относится к предложению, которое сейчас ждёт ответа
func CheckProposal(d scheduling.Dialogue, groupID uuid.UUID) error {
	if d.Proposal == nil || d.Proposal.GroupID != groupID {
		return ErrStaleProposal
	}
	return nil
}

// SessionKey ключ диалога для чата
func SessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// SendText отправляет сообщение и логирует, если не удалось
func SendText(ctx context.Context, b *bot.Bot, logger *zap.Logger, chatID int64, text string, markup *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
