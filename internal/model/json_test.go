package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonJSON(t *testing.T) {
	l := Lesson{
		ID:        7,
		Title:     "Chitarra",
		Room:      "Studio A",
		Date:      Date(2026, time.January, 6),
		StartTime: NewClock(10, 0),
		EndTime:   NewClock(11, 30),
	}

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lesson_date":"2026-01-06"`)
	assert.Contains(t, string(data), `"start_time":"10:00"`)

	var back Lesson
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, l, back)

	var bad Lesson
	assert.Error(t, json.Unmarshal([]byte(`{"lesson_date":"06/01/2026"}`), &bad))
}

func TestProposalJSON(t *testing.T) {
	p := Proposal{
		GroupID: uuid.New(),
		Slots: []ProposedLesson{{
			Lesson: Lesson{
				Title:     "Chitarra",
				Room:      "Studio A",
				Date:      Date(2026, time.January, 13),
				StartTime: NewClock(11, 0),
				EndTime:   NewClock(13, 0),
			},
			Adjusted:          true,
			OriginalStartHour: 10,
			Note:              "spostata",
			Holiday:           "Epifania",
		}},
		Status:    ProposalWarning,
		Adjusted:  1,
		Conflicts: []string{"spostata"},
		SeriesEnd: Date(2026, time.January, 20),
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	raw := string(data)
	assert.Contains(t, raw, `"lesson_date":"2026-01-13"`)
	assert.Contains(t, raw, `"series_end":"2026-01-20"`)
	assert.Contains(t, raw, `"adjusted":true`)
	assert.Contains(t, raw, `"original_start_hour":10`)
	assert.Contains(t, raw, `"holiday":"Epifania"`)

	var back Proposal
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)
}

func TestHolidayJSON(t *testing.T) {
	h := Holiday{Date: Date(2026, time.April, 25), Name: "Festa della Liberazione", Type: HolidayNational}

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-04-25","name":"Festa della Liberazione","type":"national"}`, string(data))

	var back Holiday
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h, back)
}
