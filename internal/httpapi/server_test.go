package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/calendar"
	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/repository"
	"github.com/Freeeeeet/academy_scheduler/internal/roster"
	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
	"github.com/Freeeeeet/academy_scheduler/internal/service"
	"github.com/Freeeeeet/academy_scheduler/internal/session"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, checks map[string]Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewSQLiteLessonRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	logger := zap.NewNop()
	r := roster.Default()
	cal := holiday.New()
	lessons := service.NewLessonService(repo, r, calendar.DefaultGrid(), logger)
	engine := scheduling.NewEngine(r, scheduling.NewGenerator(scheduling.DefaultPolicy(), cal), repo, logger,
		scheduling.WithNow(func() time.Time { return time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC) }))
	scheduler := service.NewSchedulerService(engine, session.NewMemoryStore(time.Hour), lessons, logger)

	return NewRouter(Deps{
		Lessons:   lessons,
		Scheduler: scheduler,
		Holidays:  cal,
		Checks:    checks,
		Logger:    logger,
	})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createLesson(t *testing.T, r http.Handler, date, start, end string) model.Lesson {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/lessons", LessonRequest{
		Title: "Chitarra", TeacherName: "Rossi Mario", Room: "Studio A",
		Date: date, StartTime: start, EndTime: end,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var l model.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	return l
}

func TestLessonsCRUD(t *testing.T) {
	r := newTestRouter(t, nil)

	created := createLesson(t, r, "2026-01-13", "10:00", "11:00")
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.NewClock(10, 0), created.StartTime)

	w := do(t, r, http.MethodGet, "/api/lessons?from=2026-01-12&to=2026-01-18", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Studio A", list[0].Room)
	assert.Contains(t, w.Body.String(), `"lesson_date":"2026-01-13"`)
	assert.NotContains(t, w.Body.String(), `"lesson_date":"2026-01-13T`)

	title := "Chitarra classica"
	w = do(t, r, http.MethodPatch, "/api/lessons/1", UpdateLessonRequest{Title: &title})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Chitarra classica")

	w = do(t, r, http.MethodDelete, "/api/lessons/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/lessons/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateLesson_Validation(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing fields", map[string]string{"title": "Canto"}, http.StatusBadRequest},
		{"bad time", LessonRequest{Title: "Canto", Room: "Studio A", Date: "2026-01-13", StartTime: "25:00", EndTime: "26:00"}, http.StatusUnprocessableEntity},
		{"end before start", LessonRequest{Title: "Canto", Room: "Studio A", Date: "2026-01-13", StartTime: "11:00", EndTime: "10:00"}, http.StatusUnprocessableEntity},
		{"unknown room", LessonRequest{Title: "Canto", Room: "Cantina", Date: "2026-01-13", StartTime: "10:00", EndTime: "11:00"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/lessons", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestMoveLesson(t *testing.T) {
	r := newTestRouter(t, nil)
	created := createLesson(t, r, "2026-03-02", "10:00", "11:30")
	grid := calendar.DefaultGrid()

	offset := grid.OffsetOf(model.NewClock(14, 7))
	w := do(t, r, http.MethodPost, "/api/lessons/1/move", MoveRequest{Date: "2026-03-04", OffsetY: &offset})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var moved model.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	assert.Equal(t, created.ID, moved.ID)
	assert.Equal(t, model.Date(2026, time.March, 4), moved.Date)
	assert.Equal(t, model.NewClock(14, 0), moved.StartTime)
	assert.Equal(t, model.NewClock(15, 30), moved.EndTime)

	w = do(t, r, http.MethodPost, "/api/lessons/1/move", map[string]string{"date": "2026-03-04"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/lessons/99/move", MoveRequest{Date: "2026-03-04", OffsetY: &offset})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHolidays(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/api/holidays?from=2026-04-01&to=2026-04-30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var holidays []model.Holiday
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &holidays))

	names := make([]string, 0, len(holidays))
	for _, h := range holidays {
		names = append(names, h.Name)
	}
	assert.Contains(t, names, "Pasqua")
	assert.Contains(t, names, "Festa della Liberazione")

	w = do(t, r, http.MethodGet, "/api/holidays?from=2026-04-30&to=2026-04-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEndDate(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/api/holidays/end-date?start=2026-03-30&lessons=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp EndDateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-04-13", resp.EndDate)
	assert.Equal(t, []int{1}, resp.Days)

	w = do(t, r, http.MethodGet, "/api/holidays/end-date?start=2026-03-30&lessons=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/holidays/end-date?start=2026-03-30&lessons=2&days=xyz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchedulerTurns(t *testing.T) {
	r := newTestRouter(t, nil)
	createLesson(t, r, "2026-01-13", "10:00", "11:00")

	w := do(t, r, http.MethodPost, "/api/scheduler/web-1/turn", TurnRequest{Text: "lezione di chitarra"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var first TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, scheduling.OutcomeNeedInput, first.Outcome.Kind)
	assert.Equal(t, scheduling.FieldDate, first.Outcome.Hint)
	assert.NotEmpty(t, first.Question)

	w = do(t, r, http.MethodPost, "/api/scheduler/web-1/turn",
		TurnRequest{Text: "con Rossi il 6 gennaio dalle 10 alle 12 in Studio A, 3 lezioni ogni settimana"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var second TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Equal(t, scheduling.OutcomeProposed, second.Outcome.Kind)
	require.NotNil(t, second.Outcome.Proposal)
	assert.Equal(t, model.ProposalWarning, second.Outcome.Proposal.Status)
	assert.Equal(t, 1, second.Outcome.Proposal.Adjusted)
	assert.Equal(t, model.Date(2026, time.January, 20), second.Outcome.Proposal.SeriesEnd)
	assert.Contains(t, w.Body.String(), `"lesson_date":"2026-01-06"`)
	assert.Contains(t, w.Body.String(), `"series_end":"2026-01-20"`)

	w = do(t, r, http.MethodPost, "/api/scheduler/web-1/turn", TurnRequest{Text: "confermo"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var third TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &third))
	assert.Equal(t, scheduling.OutcomeConfirmed, third.Outcome.Kind)
	assert.Len(t, third.Saved, 3)

	w = do(t, r, http.MethodGet, "/api/lessons?from=2026-01-01&to=2026-01-31", nil)
	var list []model.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)

	w = do(t, r, http.MethodPost, "/api/scheduler/web-1/turn", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, "/api/scheduler/web-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSchedulerBlankSession(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"turn", http.MethodPost, "/api/scheduler/%20%20/turn", TurnRequest{Text: "lezione di chitarra"}},
		{"get", http.MethodGet, "/api/scheduler/%20", nil},
		{"reset", http.MethodDelete, "/api/scheduler/%20%20", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "invalid session key")
		})
	}

	// пробелы по краям не создают отдельную сессию
	w := do(t, r, http.MethodPost, "/api/scheduler/%20web-2%20/turn", TurnRequest{Text: "lezione di chitarra"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodGet, "/api/scheduler/web-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "awaiting")
}

func TestHealth(t *testing.T) {
	ok := newTestRouter(t, map[string]Pinger{"db": pingFunc(func(context.Context) error { return nil })})
	w := do(t, ok, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestRouter(t, map[string]Pinger{"redis": pingFunc(func(context.Context) error { return errors.New("refused") })})
	w = do(t, down, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "refused")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)
	do(t, r, http.MethodGet, "/api/holidays", nil)

	w := do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "academy_http_requests_total")
}
