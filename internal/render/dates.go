package render

import (
	"fmt"
	"time"
)

var weekdays = [...]string{
	"zondag",
	"maandag",
	"dinsdag",
	"woensdag",
	"donderdag",
	"vrijdag",
	"zaterdag",
}

var months = [...]string{
	"januari",
	"februari",
	"maart",
	"april",
	"mei",
	"juni",
	"juli",
	"augustus",
	"september",
	"oktober",
	"november",
	"december",
}

func WeekdayName(t time.Time) string {
	return weekdays[int(t.Weekday())]
}

func MonthName(t time.Time) string {
	return months[int(t.Month())-1]
}

// FormatDate renders a Dutch long date, e.g. "vrijdag 22 maart 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", WeekdayName(t), t.Day(), MonthName(t), t.Year())
}
