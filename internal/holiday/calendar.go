// Package holiday считает праздники Италии и каникулы академии,
// а также даты окончания серий занятий с учётом нерабочих дней.
package holiday

import (
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

const (
	// Ограничения циклов: гарантируют завершение даже на невозможных входных данных
	maxNextWorkingDayAttempts = 30
	maxEndDateIterations      = 1000
)

// Closure окно закрытия академии, задаётся днями месяца.
// Если End раньше Start, окно переходит через Новый год.
type Closure struct {
	Name       string
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

var nationalHolidays = []fixedHoliday{
	{time.January, 1, "Capodanno"},
	{time.January, 6, "Epifania"},
	{time.April, 25, "Festa della Liberazione"},
	{time.May, 1, "Festa del Lavoro"},
	{time.June, 2, "Festa della Repubblica"},
	{time.August, 15, "Ferragosto"},
	{time.November, 1, "Ognissanti"},
	{time.December, 8, "Immacolata Concezione"},
	{time.December, 25, "Natale"},
	{time.December, 26, "Santo Stefano"},
}

var (
	DefaultSummerClosure = Closure{Name: "Chiusura estiva", StartMonth: time.July, StartDay: 27, EndMonth: time.August, EndDay: 16}
	DefaultWinterClosure = Closure{Name: "Chiusura invernale", StartMonth: time.December, StartDay: 24, EndMonth: time.January, EndDay: 5}
)

// Option настраивает Calendar
type Option func(*Calendar)

// WithSummerClosure переопределяет летние каникулы
func WithSummerClosure(c Closure) Option {
	return func(cal *Calendar) { cal.closures[0] = c }
}

// WithWinterClosure переопределяет зимние каникулы
func WithWinterClosure(c Closure) Option {
	return func(cal *Calendar) { cal.closures[1] = c }
}

// yearSet праздники одного года: по дате и отсортированным списком
type yearSet struct {
	byDate map[time.Time]model.Holiday
	sorted []model.Holiday
}

// Calendar вычисляет праздники и кеширует их по годам
type Calendar struct {
	mu       sync.RWMutex
	years    map[int]*yearSet
	closures []Closure
}

// New создаёт календарь с настройками по умолчанию
func New(opts ...Option) *Calendar {
	cal := &Calendar{
		years:    make(map[int]*yearSet),
		closures: []Closure{DefaultSummerClosure, DefaultWinterClosure},
	}
	for _, opt := range opts {
		opt(cal)
	}
	return cal
}

// Easter дата Пасхи по григорианскому календарю (алгоритм Meeus/Jones/Butcher)
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return model.Date(year, time.Month(month), day)
}

// year возвращает (и при необходимости строит) набор праздников года
func (c *Calendar) year(year int) *yearSet {
	c.mu.RLock()
	set, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return set
	}

	set = c.build(year)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.years[year]; ok {
		return existing
	}
	c.years[year] = set
	return set
}

// build строит праздники года. Национальные праздники имеют приоритет над каникулами.
func (c *Calendar) build(year int) *yearSet {
	set := &yearSet{byDate: make(map[time.Time]model.Holiday)}

	add := func(date time.Time, name string, kind model.HolidayType) {
		if date.Year() != year {
			return
		}
		if existing, ok := set.byDate[date]; ok && existing.Type == model.HolidayNational {
			return
		}
		set.byDate[date] = model.Holiday{Date: date, Name: name, Type: kind}
	}

	for _, h := range nationalHolidays {
		add(model.Date(year, h.month, h.day), h.name, model.HolidayNational)
	}

	easter := Easter(year)
	add(easter, "Pasqua", model.HolidayNational)
	add(easter.AddDate(0, 0, 1), "Lunedì dell'Angelo", model.HolidayNational)
	add(easter.AddDate(0, 0, -2), "Venerdì Santo", model.HolidayLocal)

	for _, closure := range c.closures {
		for _, day := range closureDays(closure, year) {
			add(day, closure.Name, model.HolidayLocal)
		}
	}

	set.sorted = make([]model.Holiday, 0, len(set.byDate))
	for _, h := range set.byDate {
		set.sorted = append(set.sorted, h)
	}
	sort.Slice(set.sorted, func(i, j int) bool {
		return set.sorted[i].Date.Before(set.sorted[j].Date)
	})

	return set
}

// closureDays возвращает дни окна, попадающие в указанный год.
// Окно через Новый год даёт хвост в январе этого года и начало в декабре.
func closureDays(closure Closure, year int) []time.Time {
	var days []time.Time

	appendRange := func(from, to time.Time) {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			days = append(days, d)
		}
	}

	start := model.Date(year, closure.StartMonth, closure.StartDay)
	end := model.Date(year, closure.EndMonth, closure.EndDay)

	if !end.Before(start) {
		appendRange(start, end)
		return days
	}

	appendRange(model.Date(year, time.January, 1), end)
	appendRange(start, model.Date(year, time.December, 31))
	return days
}

// HolidaysForYear все праздники года по возрастанию даты
func (c *Calendar) HolidaysForYear(year int) []model.Holiday {
	set := c.year(year)
	out := make([]model.Holiday, len(set.sorted))
	copy(out, set.sorted)
	return out
}

// IsHoliday проверяет, является ли дата праздником или днём каникул
func (c *Calendar) IsHoliday(date time.Time) bool {
	d := model.DateOf(date)
	_, ok := c.year(d.Year()).byDate[d]
	return ok
}

// HolidayName название праздника; false если день рабочий
func (c *Calendar) HolidayName(date time.Time) (string, bool) {
	d := model.DateOf(date)
	h, ok := c.year(d.Year()).byDate[d]
	if !ok {
		return "", false
	}
	return h.Name, true
}

// HolidaysInRange праздники в диапазоне [start, end] включительно
func (c *Calendar) HolidaysInRange(start, end time.Time) []model.Holiday {
	from := model.DateOf(start)
	to := model.DateOf(end)
	if to.Before(from) {
		return nil
	}

	var out []model.Holiday
	for year := from.Year(); year <= to.Year(); year++ {
		for _, h := range c.year(year).sorted {
			if h.Date.Before(from) || h.Date.After(to) {
				continue
			}
			out = append(out, h)
		}
	}
	return out
}

// IsWorkingDay будний день и не праздник
func (c *Calendar) IsWorkingDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.IsHoliday(date)
}

// NextWorkingDay ближайший рабочий день после date.
// Если за 30 попыток не найден, возвращается исходная дата.
func (c *Calendar) NextWorkingDay(date time.Time) time.Time {
	d := model.DateOf(date)
	for i := 1; i <= maxNextWorkingDayAttempts; i++ {
		candidate := d.AddDate(0, 0, i)
		if c.IsWorkingDay(candidate) {
			return candidate
		}
	}
	return d
}

// CalculateEndDate дата окончания серии из totalLessons занятий по дням daysOfWeek.
//
// Результат выравнивается вперёд на день недели startDate, то есть это конец
// недели с последним занятием, а не дата самого последнего занятия.
func (c *Calendar) CalculateEndDate(startDate time.Time, totalLessons int, daysOfWeek []time.Weekday) time.Time {
	start := model.DateOf(startDate)

	days := make(map[time.Weekday]bool, len(daysOfWeek))
	for _, wd := range daysOfWeek {
		days[wd] = true
	}

	current := start
	scheduled := 0
	for i := 0; scheduled < totalLessons && i < maxEndDateIterations; i++ {
		if days[current.Weekday()] && !c.IsHoliday(current) {
			scheduled++
		}
		current = current.AddDate(0, 0, 1)
	}

	// цикл проскакивает на один день
	end := current.AddDate(0, 0, -1)

	for i := 0; i < 7 && end.Weekday() != start.Weekday(); i++ {
		end = end.AddDate(0, 0, 1)
	}

	return end
}
