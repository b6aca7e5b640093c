package booking

import "time"

type DayOption struct {
	Date  string
	Label string
}

var dayLabels = [...]string{"Astăzi", "Mâine", "Poimâine"}

// DayWindow calcula hoje, amanhã e depois de amanhã no fuso de now.
// Sempre recalculado, nunca guardado no estado.
func DayWindow(now time.Time) []DayOption {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := make([]DayOption, 0, len(dayLabels))
	for i, label := range dayLabels {
		out = append(out, DayOption{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Label: label,
		})
	}
	return out
}

func InDayWindow(now time.Time, date string) bool {
	for _, d := range DayWindow(now) {
		if d.Date == date {
			return true
		}
	}
	return false
}
