package journey

import (
	"time"
	_ "time/tzdata" // Europe/Stockholm must resolve even without a system zone db
)

// stockholm is the display zone for all journey times.
var stockholm = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		panic(err)
	}
	return loc
}()

// stockholmTime converts a UTC timestamp like "2025-07-05T11:18:00Z" to an
// "HH:MM" string in Stockholm local time. Empty input stays empty and
// unparseable input is returned unchanged.
func stockholmTime(utcTime string) string {
	if utcTime == "" {
		return ""
	}

	t, err := time.Parse(time.RFC3339, utcTime)
	if err != nil {
		return utcTime
	}
	return t.In(stockholm).Format("15:04")
}

// bestTime picks the real-time estimate when one exists, otherwise the
// planned time, and renders it as Stockholm "HH:MM".
func bestTime(estimated, planned string) string {
	if estimated != "" {
		return stockholmTime(estimated)
	}
	return stockholmTime(planned)
}
