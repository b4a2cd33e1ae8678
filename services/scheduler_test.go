package services

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/medicore/hospital-app/models"
)

type fixture struct {
	db        *gorm.DB
	scheduler *Scheduler
	doctor    models.Doctor
	patient   models.Patient
	now       time.Time
}

// newFixture seeds one doctor and one patient, both with linked user
// accounts, and a schedule covering every weekday from 08:00 to 18:00. The
// scheduler clock is pinned to Monday 2025-03-10 09:00 UTC.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)

	doctorUser := models.User{Name: "Dr. Roy", Email: "roy@hospital.test"}
	patientUser := models.User{Name: "Asha", Email: "asha@example.test"}
	if err := db.Create(&doctorUser).Error; err != nil {
		t.Fatalf("seed doctor user: %v", err)
	}
	if err := db.Create(&patientUser).Error; err != nil {
		t.Fatalf("seed patient user: %v", err)
	}

	doctor := models.Doctor{UserID: doctorUser.ID, Name: "Dr. Roy", LicenseNumber: "LIC-1"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	patient := models.Patient{UserID: patientUser.ID, Name: "Asha"}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	for day := models.Sunday; day <= models.Saturday; day++ {
		if err := db.Create(&models.DoctorSchedule{
			DoctorID: doctor.ID, DayOfWeek: day,
			StartTime: "08:00", EndTime: "18:00", SlotMinutes: 30, Active: true,
		}).Error; err != nil {
			t.Fatalf("seed schedule: %v", err)
		}
	}

	now := at(monday, 9, 0)
	scheduler := &Scheduler{
		db:       db,
		notifier: &Notifier{db: db},
		now:      func() time.Time { return now },
	}
	return &fixture{db: db, scheduler: scheduler, doctor: doctor, patient: patient, now: now}
}

func (f *fixture) schedule(t *testing.T, start time.Time) *models.Appointment {
	t.Helper()
	appointment, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: start,
		Reason:    "Checkup",
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	return appointment
}

func (f *fixture) countNotifications(t *testing.T, ntype models.NotificationType) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&models.Notification{}).Where("type = ?", ntype).Count(&n).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return n
}

func TestSchedule_DefaultsEndToThirtyMinutes(t *testing.T) {
	f := newFixture(t)
	tomorrow := at(monday.AddDate(0, 0, 1), 10, 0)

	appointment := f.schedule(t, tomorrow)

	if appointment.Status != models.StatusScheduled {
		t.Fatalf("status = %s, want scheduled", appointment.Status)
	}
	if !appointment.EndTime.Equal(tomorrow.Add(30 * time.Minute)) {
		t.Fatalf("end = %v, want %v", appointment.EndTime, tomorrow.Add(30*time.Minute))
	}
	if appointment.DoctorID != f.doctor.ID || appointment.PatientID != f.patient.ID {
		t.Fatalf("participants not persisted")
	}
}

func TestSchedule_NotifiesBothParticipants(t *testing.T) {
	f := newFixture(t)

	f.schedule(t, at(monday.AddDate(0, 0, 1), 10, 0))

	if got := f.countNotifications(t, models.NotifyAppointmentScheduled); got != 2 {
		t.Fatalf("scheduled notifications = %d, want 2 (doctor and patient)", got)
	}
}

func TestSchedule_RejectsOverlappingWindow(t *testing.T) {
	f := newFixture(t)
	tomorrow := monday.AddDate(0, 0, 1)
	f.schedule(t, at(tomorrow, 10, 0))

	_, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: at(tomorrow, 10, 15),
		Reason:    "Follow-up",
	})
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "time slot") {
		t.Fatalf("error %q does not name the conflict rule", err.Error())
	}
}

func TestSchedule_RejectsPastStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: f.now.Add(-24 * time.Hour),
		Reason:    "Checkup",
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err.Error() != "appointment date cannot be in the past" {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestSchedule_RejectsInvertedWindow(t *testing.T) {
	f := newFixture(t)
	start := at(monday.AddDate(0, 0, 1), 10, 0)
	end := start.Add(-time.Minute)

	_, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: start,
		EndTime:   &end,
		Reason:    "Checkup",
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSchedule_RejectsOutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	_, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: at(monday.AddDate(0, 0, 1), 7, 0),
		Reason:    "Checkup",
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "not available") {
		t.Fatalf("error %q does not name the working-hours rule", err.Error())
	}
}

func TestSchedule_RejectsMissingParticipants(t *testing.T) {
	f := newFixture(t)
	start := at(monday.AddDate(0, 0, 1), 10, 0)

	_, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  9999,
		PatientID: f.patient.ID,
		StartTime: start,
		Reason:    "Checkup",
	})
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected NotFoundError for missing doctor, got %v", err)
	}

	_, err = f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: 9999,
		StartTime: start,
		Reason:    "Checkup",
	})
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected NotFoundError for missing patient, got %v", err)
	}
}

func TestSchedule_RejectsEmptyReason(t *testing.T) {
	f := newFixture(t)

	_, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: at(monday.AddDate(0, 0, 1), 10, 0),
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestConfirmThenComplete(t *testing.T) {
	f := newFixture(t)
	appointment := f.schedule(t, at(monday.AddDate(0, 0, 1), 10, 0))

	confirmed, err := f.scheduler.Confirm(appointment.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", confirmed.Status)
	}
	if confirmed.ConfirmedAt == nil {
		t.Fatalf("confirmation timestamp not set")
	}
	if got := f.countNotifications(t, models.NotifyAppointmentConfirmation); got != 1 {
		t.Fatalf("confirmation notifications = %d, want 1", got)
	}

	completed, err := f.scheduler.Complete(appointment.ID, "Checkup done")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", completed.Status)
	}
	if completed.Notes != "Checkup done" {
		t.Fatalf("notes = %q", completed.Notes)
	}
}

func TestCancel_AfterCompleteRejected(t *testing.T) {
	f := newFixture(t)
	appointment := f.schedule(t, at(monday.AddDate(0, 0, 1), 10, 0))
	if _, err := f.scheduler.Complete(appointment.ID, "done"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	_, err := f.scheduler.Cancel(appointment.ID, "changed my mind")
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot cancel a completed appointment") {
		t.Fatalf("error = %q", err.Error())
	}

	var reloaded models.Appointment
	if err := f.db.First(&reloaded, appointment.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.StatusCompleted {
		t.Fatalf("status mutated to %s", reloaded.Status)
	}
}

func TestCancel_NotifiesBothParticipantsOnce(t *testing.T) {
	f := newFixture(t)
	appointment := f.schedule(t, at(monday.AddDate(0, 0, 1), 10, 0))

	canceled, err := f.scheduler.Cancel(appointment.ID, "doctor unavailable")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if canceled.Status != models.StatusCanceled {
		t.Fatalf("status = %s, want canceled", canceled.Status)
	}
	if canceled.Notes != "Canceled: doctor unavailable" {
		t.Fatalf("notes = %q", canceled.Notes)
	}
	if got := f.countNotifications(t, models.NotifyAppointmentCancellation); got != 2 {
		t.Fatalf("cancellation notifications = %d, want 2 (doctor and patient)", got)
	}

	// A second cancel must fail and must not emit again.
	_, err = f.scheduler.Cancel(appointment.ID, "again")
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError on double cancel, got %v", err)
	}
	if !strings.Contains(err.Error(), "already canceled") {
		t.Fatalf("error = %q", err.Error())
	}
	if got := f.countNotifications(t, models.NotifyAppointmentCancellation); got != 2 {
		t.Fatalf("double cancel re-emitted notifications: %d", got)
	}
}

func TestCancel_SkipsParticipantsWithoutUserAccount(t *testing.T) {
	f := newFixture(t)

	// A walk-in patient with no portal account.
	walkIn := models.Patient{Name: "Walk-in"}
	if err := f.db.Create(&walkIn).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	appointment, err := f.scheduler.Schedule(ScheduleRequest{
		DoctorID:  f.doctor.ID,
		PatientID: walkIn.ID,
		StartTime: at(monday.AddDate(0, 0, 1), 11, 0),
		Reason:    "Checkup",
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if _, err := f.scheduler.Cancel(appointment.ID, "closed"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	// Only the doctor gets notified; the missing account is not an error.
	if got := f.countNotifications(t, models.NotifyAppointmentCancellation); got != 1 {
		t.Fatalf("cancellation notifications = %d, want 1", got)
	}
}

func TestReschedule_MovesWindowAndRevalidates(t *testing.T) {
	f := newFixture(t)
	tomorrow := monday.AddDate(0, 0, 1)
	first := f.schedule(t, at(tomorrow, 10, 0))
	second := f.schedule(t, at(tomorrow, 11, 0))

	// Moving onto the other appointment conflicts.
	_, err := f.scheduler.Reschedule(second.ID, at(tomorrow, 10, 15), nil)
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected conflict ValidationError, got %v", err)
	}

	// Moving outside working hours is rejected too.
	_, err = f.scheduler.Reschedule(second.ID, at(tomorrow, 19, 0), nil)
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected working-hours ValidationError, got %v", err)
	}

	// A free in-hours window works and keeps the duration.
	moved, err := f.scheduler.Reschedule(second.ID, at(tomorrow, 14, 0), nil)
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !moved.StartTime.Equal(at(tomorrow, 14, 0)) || !moved.EndTime.Equal(at(tomorrow, 14, 30)) {
		t.Fatalf("window = [%v, %v)", moved.StartTime, moved.EndTime)
	}

	// Rescheduling over its own old slot is fine: the appointment excludes
	// itself from the conflict scan.
	if _, err := f.scheduler.Reschedule(first.ID, at(tomorrow, 10, 15), nil); err != nil {
		t.Fatalf("Reschedule over own window: %v", err)
	}
}

func TestReschedule_TerminalRejected(t *testing.T) {
	f := newFixture(t)
	tomorrow := monday.AddDate(0, 0, 1)
	appointment := f.schedule(t, at(tomorrow, 10, 0))
	if _, err := f.scheduler.Cancel(appointment.ID, "closed"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	_, err := f.scheduler.Reschedule(appointment.ID, at(tomorrow, 14, 0), nil)
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// Reschedule pins the doctor row inside its transaction before rescanning
// for conflicts, so a doctor removed underneath the appointment surfaces as
// not-found instead of a booking against a dangling id.
func TestReschedule_DoctorRemoved(t *testing.T) {
	f := newFixture(t)
	tomorrow := monday.AddDate(0, 0, 1)
	appointment := f.schedule(t, at(tomorrow, 10, 0))

	if err := f.db.Delete(&models.Doctor{}, f.doctor.ID).Error; err != nil {
		t.Fatalf("delete doctor: %v", err)
	}

	_, err := f.scheduler.Reschedule(appointment.ID, at(tomorrow, 14, 0), nil)
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestProcessNoShows_MarksOverdueAndIsIdempotent(t *testing.T) {
	f := newFixture(t)

	// Ended two hours before the pinned clock; seeded directly because the
	// scheduler refuses past-dated bookings.
	overdue := models.Appointment{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: f.now.Add(-150 * time.Minute),
		EndTime:   f.now.Add(-120 * time.Minute),
		Status:    models.StatusScheduled,
		Reason:    "Checkup",
	}
	if err := f.db.Create(&overdue).Error; err != nil {
		t.Fatalf("seed overdue appointment: %v", err)
	}
	// Ends within the grace period; must be left alone.
	recent := models.Appointment{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: f.now.Add(-60 * time.Minute),
		EndTime:   f.now.Add(-30 * time.Minute),
		Status:    models.StatusConfirmed,
		Reason:    "Checkup",
	}
	if err := f.db.Create(&recent).Error; err != nil {
		t.Fatalf("seed recent appointment: %v", err)
	}

	marked, err := f.scheduler.ProcessNoShows(60 * time.Minute)
	if err != nil {
		t.Fatalf("ProcessNoShows: %v", err)
	}
	if marked != 1 {
		t.Fatalf("marked = %d, want 1", marked)
	}

	var swept, untouched models.Appointment
	if err := f.db.First(&swept, overdue.ID).Error; err != nil {
		t.Fatalf("reload overdue: %v", err)
	}
	if swept.Status != models.StatusNoShow {
		t.Fatalf("overdue status = %s, want no_show", swept.Status)
	}
	if err := f.db.First(&untouched, recent.ID).Error; err != nil {
		t.Fatalf("reload recent: %v", err)
	}
	if untouched.Status != models.StatusConfirmed {
		t.Fatalf("recent status = %s, want confirmed", untouched.Status)
	}

	// Second run finds nothing new.
	marked, err = f.scheduler.ProcessNoShows(60 * time.Minute)
	if err != nil {
		t.Fatalf("ProcessNoShows (second run): %v", err)
	}
	if marked != 0 {
		t.Fatalf("second run marked = %d, want 0", marked)
	}
}

func TestTransitions_UnknownAppointment(t *testing.T) {
	f := newFixture(t)

	if _, err := f.scheduler.Confirm(42); err == nil || !IsNotFound(err) {
		t.Fatalf("Confirm: expected NotFoundError, got %v", err)
	}
	if _, err := f.scheduler.Cancel(42, "x"); err == nil || !IsNotFound(err) {
		t.Fatalf("Cancel: expected NotFoundError, got %v", err)
	}
	if _, err := f.scheduler.Complete(42, "x"); err == nil || !IsNotFound(err) {
		t.Fatalf("Complete: expected NotFoundError, got %v", err)
	}
}

func TestMarkNoShow_Manual(t *testing.T) {
	f := newFixture(t)

	overdue := models.Appointment{
		DoctorID:  f.doctor.ID,
		PatientID: f.patient.ID,
		StartTime: f.now.Add(-90 * time.Minute),
		EndTime:   f.now.Add(-60 * time.Minute),
		Status:    models.StatusConfirmed,
		Reason:    "Checkup",
	}
	if err := f.db.Create(&overdue).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	marked, err := f.scheduler.MarkNoShow(overdue.ID)
	if err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if marked.Status != models.StatusNoShow {
		t.Fatalf("status = %s, want no_show", marked.Status)
	}
	// No notification for no-shows.
	if got := f.countNotifications(t, models.NotifyAppointmentCancellation); got != 0 {
		t.Fatalf("no-show must not notify, got %d", got)
	}
}
