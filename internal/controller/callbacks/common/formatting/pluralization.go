package formatting

import "fmt"

// PluralizeLessons «1 lezione», «3 lezioni»
func PluralizeLessons(count int) string {
	if count == 1 {
		return "1 lezione"
	}
	return fmt.Sprintf("%d lezioni", count)
}

// PluralizeHolidays «1 festività», «4 festività»; слово неизменяемое, меняется только число
func PluralizeHolidays(count int) string {
	return fmt.Sprintf("%d festività", count)
}
