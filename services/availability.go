package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medicore/hospital-app/models"
)

const clockLayout = "15:04"

// WithinWorkingHours checks whether the candidate window [start, end) falls
// inside at least one active schedule entry of the doctor for that weekday.
// Wall-clock times only; the schedule stores "HH:MM" strings.
func WithinWorkingHours(db *gorm.DB, doctorID uint, start, end time.Time) (bool, error) {
	var schedules []models.DoctorSchedule
	if err := db.Where("doctor_id = ? AND day_of_week = ? AND active = ?",
		doctorID, int(start.Weekday()), true).Find(&schedules).Error; err != nil {
		return false, fmt.Errorf("failed to load doctor schedule: %w", err)
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	// A window ending exactly at midnight is the end of the day, not minute 0.
	if endMin == 0 && end.After(start) {
		endMin = 24 * 60
	}

	for _, s := range schedules {
		winStart, err := minuteOfDay(s.StartTime)
		if err != nil {
			return false, fmt.Errorf("invalid schedule start time %q: %w", s.StartTime, err)
		}
		winEnd, err := minuteOfDay(s.EndTime)
		if err != nil {
			return false, fmt.Errorf("invalid schedule end time %q: %w", s.EndTime, err)
		}
		if startMin >= winStart && endMin <= winEnd {
			return true, nil
		}
	}
	return false, nil
}

// HasConflict reports whether the doctor already has a non-terminal
// appointment whose [start, end) window intersects the candidate one.
// Half-open semantics: two windows conflict iff existing.start < candidate.end
// AND existing.end > candidate.start. excludeID carves out the appointment
// being rescheduled; pass 0 on the creation path.
//
// Matching rows are locked, but FOR UPDATE only pins rows that already
// exist: when the slot is empty there is nothing to lock and two concurrent
// inserts would both pass this scan. The caller must hold the doctor row
// lock (lockDoctor) for the whole transaction; that row is the per-doctor
// booking mutex.
func HasConflict(tx *gorm.DB, doctorID uint, start, end time.Time, excludeID uint) (bool, error) {
	q := tx.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Where("status NOT IN ?", []models.AppointmentStatus{
			models.StatusCanceled, models.StatusNoShow, models.StatusCompleted,
		}).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	// sqlite (used in tests) has no FOR UPDATE.
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var conflicting []models.Appointment
	if err := q.Limit(1).Find(&conflicting).Error; err != nil {
		return false, fmt.Errorf("failed to check for conflicting appointments: %w", err)
	}
	return len(conflicting) > 0, nil
}

func minuteOfDay(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
