package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type HolidayType string

const (
	HolidayNational HolidayType = "national"
	HolidayLocal    HolidayType = "local"
)

// Holiday нерабочий день академии
type Holiday struct {
	Date time.Time   `json:"date"`
	Name string      `json:"name"`
	Type HolidayType `json:"type"`
}

type holidayFields Holiday

// MarshalJSON date в формате YYYY-MM-DD
func (h Holiday) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		holidayFields
		Date string `json:"date"`
	}{
		holidayFields: holidayFields(h),
		Date:          formatWireDate(h.Date),
	})
}

func (h *Holiday) UnmarshalJSON(data []byte) error {
	var aux struct {
		holidayFields
		Date string `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	date, err := parseWireDate(aux.Date)
	if err != nil {
		return fmt.Errorf("holiday date: %w", err)
	}
	*h = Holiday(aux.holidayFields)
	h.Date = date
	return nil
}
