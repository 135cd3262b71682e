package common

import (
	"bytes"
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/calendar"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common/keyboard"
)

// SendWeek отправляет картинку недели, содержащей date, с кнопками навигации.
// Если картинку построить не удалось, отправляется текстовый список.
func SendWeek(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID int64, date time.Time) error {
	week, lessons, err := h.Lessons.ListWeek(ctx, date)
	if err != nil {
		return err
	}

	now := h.Today()
	nav := keyboard.WeekNavigation(week.From, calendar.WeekStart(now))
	holidays := h.Holidays.HolidaysInRange(week.From, week.To)

	image, err := calendar.RenderWeek(week.From, lessons, holidays, h.Lessons.Grid(), now)
	if err != nil {
		h.Logger.Warn("Week image failed, falling back to text", zap.Error(err))
		SendText(ctx, b, h.Logger, chatID, formatting.FormatWeek(week, lessons), nav)
		return nil
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "settimana.png", Data: bytes.NewReader(image)},
		Caption:     formatting.WeekCaption(week, len(lessons)),
		ReplyMarkup: nav,
	})
	return err
}
