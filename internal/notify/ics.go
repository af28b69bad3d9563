package notify

import (
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const (
	calendarProductID = "-//Zomra//Donation Reminder//AR"
	eventSummary      = "موعد التبرع بالدم"
	eventDescription  = "تذكير زمرة: أنت مؤهل للتبرع بالدم الكامل من هذا اليوم. راجع أقرب بنك دم."
)

// ReminderCalendar renders an all-day event on date as an iCalendar file.
func ReminderCalendar(date, now time.Time) string {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	event := cal.AddEvent(uuid.NewString() + "@zomra")
	event.SetDtStampTime(now.UTC())
	event.SetAllDayStartAt(day)
	event.SetAllDayEndAt(day.AddDate(0, 0, 1))
	event.SetSummary(eventSummary)
	event.SetDescription(eventDescription)

	return cal.Serialize()
}
