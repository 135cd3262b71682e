package holiday

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"dom": time.Sunday, "domenica": time.Sunday, "sun": time.Sunday,
	"lun": time.Monday, "lunedi": time.Monday, "lunedì": time.Monday, "mon": time.Monday,
	"mar": time.Tuesday, "martedi": time.Tuesday, "martedì": time.Tuesday, "tue": time.Tuesday,
	"mer": time.Wednesday, "mercoledi": time.Wednesday, "mercoledì": time.Wednesday, "wed": time.Wednesday,
	"gio": time.Thursday, "giovedi": time.Thursday, "giovedì": time.Thursday, "thu": time.Thursday,
	"ven": time.Friday, "venerdi": time.Friday, "venerdì": time.Friday, "fri": time.Friday,
	"sab": time.Saturday, "sabato": time.Saturday, "sat": time.Saturday,
}

// ParseWeekdays разбирает список дней через запятую: числа 0–6 (0 = воскресенье)
// или названия ("lun", "martedì", "wed"). Повторы отбрасываются.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var (
		days []time.Weekday
		seen = make(map[time.Weekday]bool)
	)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		var wd time.Weekday
		if n, err := strconv.Atoi(part); err == nil {
			if n < 0 || n > 6 {
				return nil, fmt.Errorf("weekday %d out of range 0-6", n)
			}
			wd = time.Weekday(n)
		} else {
			named, ok := weekdayNames[part]
			if !ok {
				return nil, fmt.Errorf("unknown weekday %q", part)
			}
			wd = named
		}

		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays in %q", s)
	}
	return days, nil
}
