package keyboard

import (
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// Префиксы callback data
const (
	ProposalConfirm = "proposal_confirm:" // proposal_confirm:<group_id>
	ProposalCancel  = "proposal_cancel:"
	WeekPrefix      = "week:" // week:2026-01-12
	Noop            = "noop"
)

// ConfirmButton кнопка подтверждения предложения
func ConfirmButton(groupID uuid.UUID) models.InlineKeyboardButton {
	return Button("✅ Conferma", ProposalConfirm+groupID.String())
}

func CancelButton(groupID uuid.UUID) models.InlineKeyboardButton {
	return Button("❌ Annulla", ProposalCancel+groupID.String())
}

// Proposal клавиатура под предложением расписания; кнопки привязаны к его группе
func Proposal(groupID uuid.UUID) *models.InlineKeyboardMarkup {
	return NewBuilder().Row(ConfirmButton(groupID), CancelButton(groupID)).Build()
}

// WeekButton кнопка перехода к неделе, начинающейся в weekStart
func WeekButton(text string, weekStart time.Time) models.InlineKeyboardButton {
	return Button(text, WeekPrefix+weekStart.Format(model.DateLayout))
}

// WeekNavigation кнопки «предыдущая / текущая / следующая неделя»
func WeekNavigation(weekStart, today time.Time) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			WeekButton("⬅️", weekStart.AddDate(0, 0, -7)),
			WeekButton("📅 Oggi", today),
			WeekButton("➡️", weekStart.AddDate(0, 0, 7)),
		).
		Build()
}
