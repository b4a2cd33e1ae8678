package utils

import (
	"os"
	"time"
)

// ClinicTime converts t into the hospital's local timezone (CLINIC_TZ env,
// e.g. "Asia/Kolkata"). Falls back to the time unchanged when the zone is
// unset or unknown.
func ClinicTime(t time.Time) time.Time {
	tz := os.Getenv("CLINIC_TZ")
	if tz == "" {
		return t
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return t
	}
	return t.In(loc)
}
