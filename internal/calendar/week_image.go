package calendar

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"sort"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 160
	dayPaddingX      = 6
	minLessonHeight  = 8.0
	lessonRadius     = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	maxLabelRunes    = 22
	lessonTextOffset = 14.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 125}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{220, 220, 220, 255}
	holidayBgColor   = color.NRGBA{255, 214, 102, 160}
	holidayTextColor = color.RGBA{140, 90, 0, 255}
	lessonTextColor  = color.RGBA{20, 24, 28, 230}
	lessonShadow     = color.RGBA{0, 0, 0, 20}
	legendItemColor  = color.RGBA{70, 74, 78, 220}
)

// цвета аудиторий; аудитория получает цвет по хешу названия
var roomPalette = []color.RGBA{
	{133, 193, 85, 220},
	{120, 170, 230, 220},
	{255, 182, 193, 255},
	{250, 200, 120, 230},
	{190, 160, 230, 230},
	{120, 210, 200, 230},
	{230, 140, 120, 230},
}

// RenderWeek рисует неделю (Пн–Вс) с занятиями и праздниками в PNG.
// now нужен для подсветки текущего дня.
func RenderWeek(week time.Time, lessons []*model.Lesson, holidays []model.Holiday, grid Grid, now time.Time) ([]byte, error) {
	if grid.EndHour <= grid.StartHour || grid.PixelsPerHour <= 0 {
		return nil, fmt.Errorf("invalid grid %d-%d", grid.StartHour, grid.EndHour)
	}

	bounds := Week(week)
	today := model.DateOf(now)

	dc := gg.NewContext(imageWidth, headerHeight+int(grid.Height()))
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek

	holidayByDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		holidayByDate[h.Date.Format(model.DateLayout)] = h.Name
	}
	lessonsByDay := groupLessonsByDay(lessons)

	drawHeader(dc, bounds)
	drawHourLabels(dc, grid)

	rooms := make(map[string]color.RGBA)
	current := bounds.From
	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		key := current.Format(model.DateLayout)

		drawDayBackground(dc, x, dayWidth, grid, dayIndex, model.SameDay(current, today), holidayByDate[key])
		drawDayHeader(dc, current, x, dayWidth, holidayByDate[key])
		drawHourLines(dc, x, dayWidth, grid)
		for _, l := range lessonsByDay[key] {
			fill := roomColor(l.Room)
			rooms[l.Room] = fill
			drawLesson(dc, l, x, dayWidth, grid, fill)
		}

		current = current.AddDate(0, 0, 1)
	}

	drawLegend(dc, dayWidth, rooms)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func groupLessonsByDay(lessons []*model.Lesson) map[string][]*model.Lesson {
	byDay := make(map[string][]*model.Lesson)
	for _, l := range lessons {
		key := l.Date.Format(model.DateLayout)
		byDay[key] = append(byDay[key], l)
	}
	return byDay
}

func drawHeader(dc *gg.Context, week model.DateRange) {
	title := monthName(week.From.Month()) + " " + strconv.Itoa(week.From.Year())
	if week.From.Month() != week.To.Month() {
		title = monthName(week.From.Month()) + " - " + monthName(week.To.Month()) + " " + strconv.Itoa(week.To.Year())
	}

	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/4, 0, 0.5)
}

func drawHourLabels(dc *gg.Context, grid Grid) {
	dc.SetColor(hourLabelColor)
	for h := grid.StartHour; h <= grid.EndHour; h++ {
		y := float64(headerHeight) + grid.OffsetOf(model.NewClock(h, 0))
		dc.DrawStringAnchored(model.NewClock(h, 0).String(), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground праздник важнее подсветки сегодняшнего дня
func drawDayBackground(dc *gg.Context, x float64, dayWidth int, grid Grid, dayIndex int, isToday bool, holiday string) {
	switch {
	case holiday != "":
		dc.SetColor(holidayBgColor)
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, float64(headerHeight), float64(dayWidth), grid.Height())
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x float64, dayWidth int, holiday string) {
	centerX := x + float64(dayWidth)/2
	y := float64(headerHeight)

	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), centerX, y-40, 0.5, 0.5)
	dc.DrawStringAnchored(weekdayShort(date.Weekday()), centerX, y-24, 0.5, 0.5)
	if holiday != "" {
		dc.SetColor(holidayTextColor)
		dc.DrawStringAnchored(truncate(holiday, maxLabelRunes), centerX, y-8, 0.5, 0.5)
	}
}

func drawHourLines(dc *gg.Context, x float64, dayWidth int, grid Grid) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for h := grid.StartHour; h <= grid.EndHour; h++ {
		hy := float64(headerHeight) + grid.OffsetOf(model.NewClock(h, 0))
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawLesson блок занятия; части вне сетки обрезаются
func drawLesson(dc *gg.Context, l *model.Lesson, x float64, dayWidth int, grid Grid, fill color.RGBA) {
	top := grid.OffsetOf(l.StartTime)
	bottom := grid.OffsetOf(l.EndTime)
	if bottom <= 0 || top >= grid.Height() {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > grid.Height() {
		bottom = grid.Height()
	}

	height := bottom - top
	if height < minLessonHeight {
		height = minLessonHeight
	}
	y := float64(headerHeight) + top
	width := float64(dayWidth) - dayPaddingX*2
	left := x + dayPaddingX

	// Тень
	dc.SetColor(lessonShadow)
	dc.DrawRoundedRectangle(left+shadowOffset, y+2+shadowOffset, width, height-4, lessonRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(left, y+2, width, height-4, lessonRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(left, y+2, width, height-4, lessonRadius)
	dc.Stroke()

	dc.SetColor(lessonTextColor)
	txtX := left + 6
	txtY := y + lessonTextOffset
	dc.DrawStringAnchored(l.StartTime.String()+"-"+l.EndTime.String(), txtX, txtY, 0, 0)
	if height > 30 {
		dc.DrawStringAnchored(truncate(l.Title, maxLabelRunes), txtX, txtY+lessonTextOffset, 0, 0)
	}
	if height > 45 && l.TeacherName != "" {
		dc.DrawStringAnchored(truncate(l.TeacherName, maxLabelRunes), txtX, txtY+2*lessonTextOffset, 0, 0)
	}
}

func drawLegend(dc *gg.Context, dayWidth int, rooms map[string]color.RGBA) {
	x := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 12)
	y := float64(headerHeight)

	const boxW, boxH = 20.0, 14.0
	names := make([]string, 0, len(rooms))
	for room := range rooms {
		names = append(names, room)
	}
	sort.Strings(names)

	for _, room := range names {
		dc.SetColor(rooms[room])
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(truncate(room, 16), x+boxW+8, y+boxH/2, 0, 0.5)
		y += boxH + 12
	}
}

// roomColor стабильный цвет аудитории
func roomColor(room string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(room))
	return roomPalette[h.Sum32()%uint32(len(roomPalette))]
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func weekdayShort(weekday time.Weekday) string {
	return [...]string{"Dom", "Lun", "Mar", "Mer", "Gio", "Ven", "Sab"}[weekday]
}

func monthName(month time.Month) string {
	return [...]string{"", "Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno", "Luglio",
		"Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre"}[month]
}
