package scheduling

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Freeeeeet/academy_scheduler/internal/model"
	"github.com/Freeeeeet/academy_scheduler/internal/roster"
)

var (
	courseCueRe   = regexp.MustCompile(`\b(?:corso|lezioni|lezione|materia)\s+(?:(?:di|del|della|dello)\s+)?([^,.;:!?]+)`)
	monthDateRe   = regexp.MustCompile(`\b(\d{1,2})\s+(gennaio|febbraio|marzo|aprile|maggio|giugno|luglio|agosto|settembre|ottobre|novembre|dicembre)(?:\s+(\d{4}))?\b`)
	slashDateRe   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?\b`)
	timeRangeRe   = regexp.MustCompile(`\b(?:dalle|ore)\s+(?:ore\s+)?(\d{1,2})(?:[:.]\d{2})?\s*(?:alle|-)\s*(?:ore\s+)?(\d{1,2})(?:[:.]\d{2})?\b`)
	singleTimeRe  = regexp.MustCompile(`\b(?:alle\s+ore|dalle|ore|alle)\s+(\d{1,2})(?:[:.]\d{2})?\b`)
	countRe       = regexp.MustCompile(`\b(\d{1,3})\s+(?:lezioni|lezione|incontri|incontro|volte|appuntamenti)\b`)
	weeksCountRe  = regexp.MustCompile(`\bper\s+(\d{1,2})\s+settimane\b`)
	weeklyCueRe   = regexp.MustCompile(`\b(?:settiman[a-z]*|tutti\s+i|tutte\s+le|ogni)\b`)
	confirmWords  = map[string]bool{"conferma": true, "confermo": true, "sì": true, "si": true, "ok": true, "okay": true}
	cancelWords   = map[string]bool{"annulla": true, "stop": true, "basta": true, "no": true}
	courseStopSet = map[string]bool{
		"con": true, "il": true, "lo": true, "la": true, "le": true, "i": true, "gli": true,
		"in": true, "nel": true, "nella": true, "nello": true, "per": true, "da": true,
		"dal": true, "dalla": true, "dalle": true, "alle": true, "alla": true, "al": true,
		"a": true, "ore": true, "ogni": true, "tutti": true, "tutte": true, "e": true,
		"oggi": true, "domani": true, "dopodomani": true, "prof": true, "maestro": true,
		"maestra": true, "aula": true, "sala": true, "studio": true, "settimana": true,
		"settimanale": true, "settimanali": true, "settimane": true, "volte": true,
	}
)

var months = map[string]time.Month{
	"gennaio": time.January, "febbraio": time.February, "marzo": time.March,
	"aprile": time.April, "maggio": time.May, "giugno": time.June,
	"luglio": time.July, "agosto": time.August, "settembre": time.September,
	"ottobre": time.October, "novembre": time.November, "dicembre": time.December,
}

var weekdays = map[string]time.Weekday{
	"lunedì": time.Monday, "lunedi": time.Monday,
	"martedì": time.Tuesday, "martedi": time.Tuesday,
	"mercoledì": time.Wednesday, "mercoledi": time.Wednesday,
	"giovedì": time.Thursday, "giovedi": time.Thursday,
	"venerdì": time.Friday, "venerdi": time.Friday,
	"sabato": time.Saturday, "domenica": time.Sunday,
}

// utterance нормализованное сообщение пользователя
type utterance struct {
	lower  string
	words  []string
	set    map[string]bool
	padded string
}

func newUtterance(text string) utterance {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := splitWords(lower)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return utterance{
		lower:  lower,
		words:  words,
		set:    set,
		padded: " " + strings.Join(words, " ") + " ",
	}
}

// splitWords режет строку на слова: разделитель: всё, что не буква и не цифра
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// hasPhrase ищет фразу целыми словами
func (u utterance) hasPhrase(phrase string) bool {
	words := splitWords(strings.ToLower(phrase))
	if len(words) == 0 {
		return false
	}
	return strings.Contains(u.padded, " "+strings.Join(words, " ")+" ")
}

// Extract разбирает одно сообщение. Экстракторы независимы, отсутствие значения
// означает только то, что поле в этом ходе не указано.
func Extract(text string, r *roster.Roster, now time.Time, awaiting Field) Context {
	u := newUtterance(text)
	var c Context

	c.Course = extractCourse(u, r)
	c.Teacher = extractTeacher(u, r)
	c.Room = extractRoom(u, r, c.Course)
	if d, ok := extractDate(u, now); ok {
		c.Date = datePtr(d)
	}
	if start, end, ok := extractTimeRange(u); ok {
		c.StartHour = intPtr(start)
		c.EndHour = intPtr(end)
	}
	c.RecurrenceCount, c.IsWeekly = extractRecurrence(u)

	// короткий ответ на вопрос "какой курс или преподаватель"
	if awaiting == FieldTeacherOrCourse && c.Course == "" && c.Teacher == "" &&
		len(u.words) > 0 && len(u.words) <= 3 && c.Date == nil && c.StartHour == nil && c.Room == "" {
		c.Course = capitalize(strings.Join(u.words, " "))
	}
	return c
}

// ExtractCourse название курса из сообщения
func ExtractCourse(text string, r *roster.Roster) string {
	return extractCourse(newUtterance(text), r)
}

func extractCourse(u utterance, r *roster.Roster) string {
	stop := courseStopWords(r)
	for _, m := range courseCueRe.FindAllStringSubmatch(u.lower, -1) {
		var picked []string
		for _, w := range splitWords(m[1]) {
			if stop[w] || containsDigit(w) || len(picked) == 4 {
				break
			}
			picked = append(picked, w)
		}
		if len(picked) == 0 {
			continue
		}
		captured := strings.Join(picked, " ")
		if canonical, ok := r.CourseByName(captured); ok {
			return canonical
		}
		if known := longestPhrase(newUtterance(captured), r.Courses()); known != "" {
			return known
		}
		return capitalize(captured)
	}
	return longestPhrase(u, r.Courses())
}

func courseStopWords(r *roster.Roster) map[string]bool {
	stop := make(map[string]bool, len(courseStopSet)+len(weekdays)+len(months))
	for w := range courseStopSet {
		stop[w] = true
	}
	for w := range weekdays {
		stop[w] = true
	}
	for w := range months {
		stop[w] = true
	}
	for _, t := range r.Teachers() {
		for _, w := range splitWords(strings.ToLower(t)) {
			stop[w] = true
		}
	}
	return stop
}

// ExtractTeacher полное имя преподавателя из справочника.
// Сначала все токены имени, затем только фамилия (первый токен записи).
func ExtractTeacher(text string, r *roster.Roster) string {
	return extractTeacher(newUtterance(text), r)
}

func extractTeacher(u utterance, r *roster.Roster) string {
	teachers := r.Teachers()
	// многословные имена проверяем раньше
	sort.SliceStable(teachers, func(i, j int) bool {
		return len(strings.Fields(teachers[i])) > len(strings.Fields(teachers[j]))
	})

	for _, name := range teachers {
		tokens := splitWords(strings.ToLower(name))
		if len(tokens) == 0 {
			continue
		}
		all := true
		for _, t := range tokens {
			if !u.set[t] {
				all = false
				break
			}
		}
		if all {
			return name
		}
	}

	for _, name := range teachers {
		tokens := splitWords(strings.ToLower(name))
		if len(tokens) == 0 {
			continue
		}
		surname := tokens[0]
		if len([]rune(surname)) > 2 && u.set[surname] {
			return name
		}
	}
	return ""
}

// ExtractRoom аудитория из справочника
func ExtractRoom(text string, r *roster.Roster) string {
	return extractRoom(newUtterance(text), r, "")
}

// extractRoom; слова уже найденного курса в подсчёте совпадений не участвуют
func extractRoom(u utterance, r *roster.Roster, course string) string {
	rooms := r.Rooms()
	if room := longestPhrase(u, rooms); room != "" {
		return room
	}

	skip := make(map[string]bool)
	for _, w := range splitWords(strings.ToLower(course)) {
		skip[w] = true
	}

	best, bestScore := "", 0
	for _, room := range rooms {
		tokens := splitWords(strings.ToLower(room))
		score := 0
		for _, t := range tokens {
			if skip[t] || (len(tokens) > 1 && len([]rune(t)) < 3) {
				continue
			}
			if u.set[t] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = room, score
		}
	}
	return best
}

// longestPhrase самое длинное название из списка, встречающееся в сообщении целыми словами
func longestPhrase(u utterance, names []string) string {
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	for _, name := range names {
		if u.hasPhrase(name) {
			return name
		}
	}
	return ""
}

// ExtractDate дата занятия относительно now
func ExtractDate(text string, now time.Time) (time.Time, bool) {
	return extractDate(newUtterance(text), now)
}

func extractDate(u utterance, now time.Time) (time.Time, bool) {
	today := model.DateOf(now)

	if m := monthDateRe.FindStringSubmatch(u.lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		if d, ok := buildDate(now, day, months[m[2]], m[3]); ok {
			return d, true
		}
	}

	if m := slashDateRe.FindStringSubmatch(u.lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			if d, ok := buildDate(now, day, time.Month(month), m[3]); ok {
				return d, true
			}
		}
	}

	for _, w := range u.words {
		if wd, ok := weekdays[w]; ok {
			delta := (int(wd) - int(today.Weekday()) + 7) % 7
			if delta == 0 {
				delta = 7
			}
			return today.AddDate(0, 0, delta), true
		}
	}

	switch {
	case u.set["dopodomani"]:
		return today.AddDate(0, 0, 2), true
	case u.set["domani"]:
		return today.AddDate(0, 0, 1), true
	case u.set["oggi"]:
		return today, true
	}
	return time.Time{}, false
}

// buildDate собирает дату; без года берётся ближайшая, не прошедшая более суток назад
func buildDate(now time.Time, day int, month time.Month, yearStr string) (time.Time, bool) {
	year := now.Year()
	explicit := yearStr != ""
	if explicit {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return time.Time{}, false
		}
		if len(yearStr) == 2 {
			y += 2000
		}
		year = y
	}

	d := model.Date(year, month, day)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	if explicit {
		return d, true
	}

	wall := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
	if wall.Sub(d) > 24*time.Hour {
		next := model.Date(year+1, month, day)
		if next.Day() != day {
			return time.Time{}, false
		}
		return next, true
	}
	return d, true
}

// ExtractTimeRange часы начала и конца; одиночное время даёт занятие на час
func ExtractTimeRange(text string) (start, end int, ok bool) {
	return extractTimeRange(newUtterance(text))
}

func extractTimeRange(u utterance) (int, int, bool) {
	if m := timeRangeRe.FindStringSubmatch(u.lower); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		if start >= 0 && start <= 23 && end > start && end <= 24 {
			return start, end, true
		}
	}
	if m := singleTimeRe.FindStringSubmatch(u.lower); m != nil {
		start, _ := strconv.Atoi(m[1])
		if start >= 0 && start <= 23 {
			return start, start + 1, true
		}
	}
	return 0, 0, false
}

// ExtractRecurrence количество занятий и признак еженедельности
func ExtractRecurrence(text string) (count int, weekly bool) {
	return extractRecurrence(newUtterance(text))
}

func extractRecurrence(u utterance) (int, bool) {
	count := 0
	if m := countRe.FindStringSubmatch(u.lower); m != nil {
		count, _ = strconv.Atoi(m[1])
	}
	weekly := weeklyCueRe.MatchString(u.lower)
	if m := weeksCountRe.FindStringSubmatch(u.lower); m != nil && count == 0 {
		count, _ = strconv.Atoi(m[1])
		weekly = true
	}
	if count < 1 {
		count = 0
	}
	return count, weekly
}

func isConfirm(u utterance) bool {
	return len(u.words) > 0 && len(u.words) <= 2 && confirmWords[u.words[0]]
}

func isCancel(u utterance) bool {
	return len(u.words) > 0 && len(u.words) <= 2 && cancelWords[u.words[0]]
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
