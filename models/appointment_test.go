package models

import (
	"strings"
	"testing"
	"time"
)

func futureAppointment(status AppointmentStatus) *Appointment {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	return &Appointment{
		DoctorID:  1,
		PatientID: 1,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    status,
		Reason:    "Checkup",
	}
}

func TestConfirm_FromScheduled(t *testing.T) {
	a := futureAppointment(StatusScheduled)
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	if err := a.Confirm(now); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if a.Status != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", a.Status)
	}
	if a.ConfirmedAt == nil || !a.ConfirmedAt.Equal(now) {
		t.Fatalf("ConfirmedAt = %v, want %v", a.ConfirmedAt, now)
	}
}

func TestConfirm_RejectedFromEveryOtherStatus(t *testing.T) {
	now := time.Now()
	for _, status := range []AppointmentStatus{StatusConfirmed, StatusCompleted, StatusCanceled, StatusNoShow} {
		a := futureAppointment(status)
		err := a.Confirm(now)
		if err == nil {
			t.Fatalf("Confirm from %s: expected error", status)
		}
		if a.Status != status {
			t.Fatalf("Confirm from %s mutated status to %s", status, a.Status)
		}
		if !strings.Contains(err.Error(), string(status)) {
			t.Fatalf("error %q does not name current status %s", err.Error(), status)
		}
	}
}

func TestCancel_SetsNotesWithReason(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusScheduled, StatusConfirmed} {
		a := futureAppointment(status)
		if err := a.Cancel("patient request"); err != nil {
			t.Fatalf("Cancel from %s: %v", status, err)
		}
		if a.Status != StatusCanceled {
			t.Fatalf("status = %s, want canceled", a.Status)
		}
		if a.Notes != "Canceled: patient request" {
			t.Fatalf("notes = %q", a.Notes)
		}
	}
}

func TestCancel_RejectedFromTerminal(t *testing.T) {
	cases := []struct {
		status AppointmentStatus
		want   string
	}{
		{StatusCompleted, "cannot cancel a completed appointment"},
		{StatusCanceled, "appointment is already canceled"},
		{StatusNoShow, "cannot cancel a no-show appointment"},
	}
	for _, tc := range cases {
		a := futureAppointment(tc.status)
		err := a.Cancel("whatever")
		if err == nil {
			t.Fatalf("Cancel from %s: expected error", tc.status)
		}
		if err.Error() != tc.want {
			t.Fatalf("Cancel from %s: error = %q, want %q", tc.status, err.Error(), tc.want)
		}
		if a.Status != tc.status {
			t.Fatalf("Cancel from %s mutated status to %s", tc.status, a.Status)
		}
	}
}

func TestComplete_FromScheduledAndConfirmed(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusScheduled, StatusConfirmed} {
		a := futureAppointment(status)
		if err := a.Complete("Checkup done"); err != nil {
			t.Fatalf("Complete from %s: %v", status, err)
		}
		if a.Status != StatusCompleted {
			t.Fatalf("status = %s, want completed", a.Status)
		}
		if a.Notes != "Checkup done" {
			t.Fatalf("notes = %q", a.Notes)
		}
	}
}

func TestComplete_RejectedFromTerminal(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusCompleted, StatusCanceled, StatusNoShow} {
		a := futureAppointment(status)
		if err := a.Complete("notes"); err == nil {
			t.Fatalf("Complete from %s: expected error", status)
		}
		if a.Status != status {
			t.Fatalf("Complete from %s mutated status", status)
		}
	}
}

func TestReschedule_KeepsParticipantsAndValidatesWindow(t *testing.T) {
	a := futureAppointment(StatusScheduled)
	newStart := a.StartTime.Add(24 * time.Hour)

	if err := a.Reschedule(newStart, newStart); err == nil {
		t.Fatalf("expected error for end == start")
	}
	if err := a.Reschedule(newStart, newStart.Add(30*time.Minute)); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !a.StartTime.Equal(newStart) {
		t.Fatalf("start = %v, want %v", a.StartTime, newStart)
	}
	if a.DoctorID != 1 || a.PatientID != 1 {
		t.Fatalf("participants changed")
	}
}

func TestReschedule_RejectedFromTerminal(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusCompleted, StatusCanceled, StatusNoShow} {
		a := futureAppointment(status)
		start := a.StartTime
		if err := a.Reschedule(start.Add(time.Hour), start.Add(2*time.Hour)); err == nil {
			t.Fatalf("Reschedule from %s: expected error", status)
		}
	}
}

func TestMarkNoShow_RequiresElapsedGracePeriod(t *testing.T) {
	a := futureAppointment(StatusScheduled)
	grace := 60 * time.Minute

	early := a.EndTime.Add(30 * time.Minute)
	if err := a.MarkNoShow(early, grace); err == nil {
		t.Fatalf("expected error before grace period elapsed")
	}
	if a.Status != StatusScheduled {
		t.Fatalf("status mutated on rejected no-show")
	}

	late := a.EndTime.Add(2 * time.Hour)
	if err := a.MarkNoShow(late, grace); err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if a.Status != StatusNoShow {
		t.Fatalf("status = %s, want no_show", a.Status)
	}
}

func TestDerivedViews(t *testing.T) {
	a := futureAppointment(StatusScheduled)
	if got := a.DurationMinutes(); got != 30 {
		t.Fatalf("DurationMinutes = %d, want 30", got)
	}
	if a.IsTerminal() {
		t.Fatalf("scheduled should not be terminal")
	}
	if !a.IsOverdue(a.EndTime.Add(time.Minute)) {
		t.Fatalf("expected overdue after end time")
	}
	if a.IsOverdue(a.StartTime) {
		t.Fatalf("not overdue before end time")
	}

	a.Status = StatusCompleted
	if !a.IsTerminal() {
		t.Fatalf("completed should be terminal")
	}
	if a.IsOverdue(a.EndTime.Add(time.Hour)) {
		t.Fatalf("completed appointment is never overdue")
	}
}
