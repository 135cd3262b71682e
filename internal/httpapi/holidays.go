package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/academy_scheduler/internal/holiday"
	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// GET /api/holidays?from=&to=; по умолчанию текущий год
func (s *Server) listHolidays(c *gin.Context) {
	period, err := parsePeriod(c.Query("from"), c.Query("to"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if period == nil {
		year := time.Now().Year()
		period = &model.DateRange{From: model.Date(year, time.January, 1), To: model.Date(year, time.December, 31)}
	}

	holidays := s.deps.Holidays.HolidaysInRange(period.From, period.To)
	if holidays == nil {
		holidays = []model.Holiday{}
	}
	c.JSON(http.StatusOK, holidays)
}

// GET /api/holidays/end-date?start=2026-01-13&lessons=10&days=lun,mer
func (s *Server) endDate(c *gin.Context) {
	start, err := model.ParseDate(c.Query("start"))
	if err != nil {
		badRequest(c, fmt.Errorf("start: %w", err))
		return
	}
	lessons, err := strconv.Atoi(c.Query("lessons"))
	if err != nil || lessons < 1 {
		badRequest(c, fmt.Errorf("lessons must be a positive number"))
		return
	}

	days := []time.Weekday{start.Weekday()}
	if raw := c.Query("days"); raw != "" {
		days, err = holiday.ParseWeekdays(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
	}

	end := s.deps.Holidays.CalculateEndDate(start, lessons, days)

	resp := EndDateResponse{
		Start:   start.Format(model.DateLayout),
		Lessons: lessons,
		EndDate: end.Format(model.DateLayout),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, int(d))
	}
	c.JSON(http.StatusOK, resp)
}
