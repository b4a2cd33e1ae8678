package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// MaxReasonLength bounds the free-text visit reason.
const MaxReasonLength = 500

type Appointment struct {
	gorm.Model
	DoctorID    uint              `json:"doctor_id"`
	Doctor      Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID   uint              `json:"patient_id"`
	Patient     Patient           `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Status      AppointmentStatus `json:"status"`
	Reason      string            `json:"reason"`
	Notes       string            `json:"notes"`
	Location    string            `json:"location"`
	ConfirmedAt *time.Time        `json:"confirmed_at,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// IsTerminal reports whether the appointment has reached a final status.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// DurationMinutes is the booked window length in whole minutes.
func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime) / time.Minute)
}

// IsOverdue reports whether the appointment window has passed without the
// visit being closed out.
func (a *Appointment) IsOverdue(now time.Time) bool {
	if a.Status != StatusScheduled && a.Status != StatusConfirmed {
		return false
	}
	return now.After(a.EndTime)
}

// Confirm moves a scheduled appointment to confirmed and stamps the
// confirmation time.
func (a *Appointment) Confirm(now time.Time) error {
	if a.Status != StatusScheduled {
		return fmt.Errorf("only scheduled appointments can be confirmed. Current status: %s", a.Status)
	}
	a.Status = StatusConfirmed
	a.ConfirmedAt = &now
	return nil
}

// Cancel moves a scheduled or confirmed appointment to canceled and records
// the reason in the notes.
func (a *Appointment) Cancel(reason string) error {
	switch a.Status {
	case StatusCompleted:
		return fmt.Errorf("cannot cancel a completed appointment")
	case StatusCanceled:
		return fmt.Errorf("appointment is already canceled")
	case StatusNoShow:
		return fmt.Errorf("cannot cancel a no-show appointment")
	}
	a.Status = StatusCanceled
	a.Notes = "Canceled: " + reason
	return nil
}

// Complete closes out a scheduled or confirmed appointment with visit notes.
func (a *Appointment) Complete(notes string) error {
	if a.Status != StatusScheduled && a.Status != StatusConfirmed {
		return fmt.Errorf("only scheduled or confirmed appointments can be completed. Current status: %s", a.Status)
	}
	a.Status = StatusCompleted
	a.Notes = notes
	return nil
}

// Reschedule moves the appointment window. Participants never change; the
// caller is responsible for re-validating working hours and conflicts.
func (a *Appointment) Reschedule(start, end time.Time) error {
	if a.IsTerminal() {
		return fmt.Errorf("cannot reschedule a %s appointment", prettyStatus(a.Status))
	}
	if !end.After(start) {
		return fmt.Errorf("appointment end time must be after start time")
	}
	a.StartTime = start
	a.EndTime = end
	return nil
}

// MarkNoShow flags an appointment whose end time plus grace period has
// elapsed without the visit being closed out. System-triggered.
func (a *Appointment) MarkNoShow(now time.Time, grace time.Duration) error {
	if a.IsTerminal() {
		return fmt.Errorf("cannot mark a %s appointment as no-show", prettyStatus(a.Status))
	}
	if !now.After(a.EndTime.Add(grace)) {
		return fmt.Errorf("appointment has not passed its no-show grace period yet")
	}
	a.Status = StatusNoShow
	return nil
}

func prettyStatus(s AppointmentStatus) string {
	return strings.ReplaceAll(string(s), "_", "-")
}
