package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/academy_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

const helpText = "🎼 Assistente calendario dell'accademia\n\n" +
	"Scrivimi la lezione da programmare, per esempio:\n" +
	"«lezione di chitarra con Rossi il 6 gennaio dalle 10 alle 12 in Studio A, 10 lezioni ogni settimana»\n\n" +
	"Se manca qualcosa te lo chiederò. Poi conferma o annulla la proposta.\n\n" +
	"Comandi:\n" +
	"/calendario - settimana corrente\n" +
	"/festivi [anno] - festività e chiusure\n" +
	"/annulla - annulla la richiesta in corso\n" +
	"/help - questo messaggio"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := ""
	if update.Message.From != nil {
		name = update.Message.From.FirstName
	}
	text := "👋 Ciao"
	if name != "" {
		text += " " + name
	}
	text += "!\n\n" + helpText

	common.SendText(ctx, b, h.Logger, update.Message.Chat.ID, text, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	common.SendText(ctx, b, h.Logger, update.Message.Chat.ID, helpText, nil)
}

// HandleCalendar /calendario: картинка текущей недели
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if err := common.SendWeek(ctx, b, h.Handler, chatID, h.Today()); err != nil {
		h.Logger.Error("Failed to send week", zap.Int64("chat_id", chatID), zap.Error(err))
		common.SendText(ctx, b, h.Logger, chatID, common.ErrorMessage(err), nil)
	}
}

// HandleHolidays /festivi [anno]
func (h *Handlers) HandleHolidays(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	year, ok := ParseYearArg(update.Message.Text, h.Today().Year())
	if !ok {
		common.SendText(ctx, b, h.Logger, chatID, "❌ Anno non valido. Esempio: /festivi 2026", nil)
		return
	}

	holidays := h.Holidays.HolidaysForYear(year)
	common.SendText(ctx, b, h.Logger, chatID, formatting.FormatHolidays(year, holidays), nil)
}

// HandleCancel /annulla: сброс текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	d, err := h.Scheduler.Dialogue(ctx, common.SessionKey(chatID))
	if err != nil {
		h.Logger.Error("Failed to load dialogue", zap.Int64("chat_id", chatID), zap.Error(err))
		common.SendText(ctx, b, h.Logger, chatID, common.ErrorMessage(err), nil)
		return
	}
	if d.State != scheduling.StateAwaitingInput && d.Proposal == nil {
		common.SendText(ctx, b, h.Logger, chatID, "Nessuna richiesta in corso.", nil)
		return
	}

	if err := h.Scheduler.Reset(ctx, common.SessionKey(chatID)); err != nil {
		h.Logger.Error("Failed to reset dialogue", zap.Int64("chat_id", chatID), zap.Error(err))
		common.SendText(ctx, b, h.Logger, chatID, common.ErrorMessage(err), nil)
		return
	}
	common.SendText(ctx, b, h.Logger, chatID, "✅ Richiesta annullata.", nil)
}

// HandleTextMessage любой текст без команды считается сообщением диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		common.SendText(ctx, b, h.Logger, update.Message.Chat.ID, "Comando sconosciuto. /help", nil)
		return
	}

	common.RunTurn(ctx, b, h.Handler, update.Message.Chat.ID, update.Message.Text)
}

// ParseYearArg год из «/festivi 2026»; без аргумента возвращает fallback
func ParseYearArg(text string, fallback int) (int, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return fallback, true
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil || year < 1900 || year > 2200 {
		return 0, false
	}
	return year, true
}
