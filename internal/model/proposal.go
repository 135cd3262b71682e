package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalSuccess ProposalStatus = "success" // конфликтов нет
	ProposalWarning ProposalStatus = "warning" // часть слотов сдвинута или осталась в конфликте
)

// ProposedLesson кандидат на занятие, ещё не сохранённый (ID = 0)
type ProposedLesson struct {
	Lesson
	Adjusted          bool   // время сдвинуто из-за конфликта
	Conflict          bool   // конфликт не удалось разрешить
	OriginalStartHour int    // запрошенный час начала
	Note              string
	Holiday           string // название праздника, если дата нерабочая
}

// slotMarks пометки слота на проводе, рядом с полями занятия
type slotMarks struct {
	Adjusted          bool   `json:"adjusted"`
	Conflict          bool   `json:"conflict"`
	OriginalStartHour int    `json:"original_start_hour"`
	Note              string `json:"note,omitempty"`
	Holiday           string `json:"holiday,omitempty"`
}

// MarshalJSON плоский объект: поля занятия и пометки слота.
func (p ProposedLesson) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		lessonFields
		Date string `json:"lesson_date"`
		slotMarks
	}{
		lessonFields: lessonFields(p.Lesson),
		Date:         formatWireDate(p.Date),
		slotMarks: slotMarks{
			Adjusted:          p.Adjusted,
			Conflict:          p.Conflict,
			OriginalStartHour: p.OriginalStartHour,
			Note:              p.Note,
			Holiday:           p.Holiday,
		},
	})
}

func (p *ProposedLesson) UnmarshalJSON(data []byte) error {
	var lesson Lesson
	if err := json.Unmarshal(data, &lesson); err != nil {
		return err
	}
	var marks slotMarks
	if err := json.Unmarshal(data, &marks); err != nil {
		return err
	}
	*p = ProposedLesson{
		Lesson:            lesson,
		Adjusted:          marks.Adjusted,
		Conflict:          marks.Conflict,
		OriginalStartHour: marks.OriginalStartHour,
		Note:              marks.Note,
		Holiday:           marks.Holiday,
	}
	return nil
}

// Proposal пакет предложенных занятий одной серии
type Proposal struct {
	GroupID   uuid.UUID        `json:"group_id"`
	Slots     []ProposedLesson `json:"slots"`
	Status    ProposalStatus   `json:"status"`
	Adjusted  int              `json:"adjusted"`
	Conflicts []string         `json:"conflicts"`
	Summary   string           `json:"summary"`
	SeriesEnd time.Time        `json:"series_end"`
}

type proposalFields Proposal

// MarshalJSON series_end в формате YYYY-MM-DD
func (p Proposal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		proposalFields
		SeriesEnd string `json:"series_end,omitempty"`
	}{
		proposalFields: proposalFields(p),
		SeriesEnd:      formatWireDate(p.SeriesEnd),
	})
}

func (p *Proposal) UnmarshalJSON(data []byte) error {
	var aux struct {
		proposalFields
		SeriesEnd string `json:"series_end,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	end, err := parseWireDate(aux.SeriesEnd)
	if err != nil {
		return fmt.Errorf("series_end: %w", err)
	}
	*p = Proposal(aux.proposalFields)
	p.SeriesEnd = end
	return nil
}

// Unresolved количество слотов с неразрешённым конфликтом
func (p *Proposal) Unresolved() int {
	count := 0
	for _, slot := range p.Slots {
		if slot.Conflict {
			count++
		}
	}
	return count
}

// Rest предложение из слотов начиная с from, с той же группой.
// Счётчики, статус и список конфликтов пересчитываются по оставшимся слотам.
func (p *Proposal) Rest(from int) *Proposal {
	rest := &Proposal{
		GroupID:   p.GroupID,
		Status:    ProposalSuccess,
		Summary:   p.Summary,
		SeriesEnd: p.SeriesEnd,
	}
	if from < len(p.Slots) {
		rest.Slots = append([]ProposedLesson(nil), p.Slots[from:]...)
	}
	for _, slot := range rest.Slots {
		if slot.Adjusted {
			rest.Adjusted++
		}
		if slot.Note != "" {
			rest.Conflicts = append(rest.Conflicts, slot.Note)
		}
	}
	if rest.Adjusted > 0 || rest.Unresolved() > 0 {
		rest.Status = ProposalWarning
	}
	return rest
}
