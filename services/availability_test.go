package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/medicore/hospital-app/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Specialty{},
		&models.Doctor{},
		&models.Patient{},
		&models.DoctorSchedule{},
		&models.Appointment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// monday is a fixed reference Monday used across the tests.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestWithinWorkingHours_Containment(t *testing.T) {
	db := openTestDB(t)

	doctor := models.Doctor{Name: "Dr. Roy", LicenseNumber: "LIC-1"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	if err := db.Create(&models.DoctorSchedule{
		DoctorID: doctor.ID, DayOfWeek: models.Monday,
		StartTime: "09:00", EndTime: "17:00", SlotMinutes: 30, Active: true,
	}).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside window", at(monday, 10, 0), at(monday, 10, 30), true},
		{"exactly the window", at(monday, 9, 0), at(monday, 17, 0), true},
		{"before opening", at(monday, 8, 30), at(monday, 9, 0), false},
		{"spills past closing", at(monday, 16, 45), at(monday, 17, 15), false},
		{"wrong weekday", at(monday.AddDate(0, 0, 5), 10, 0), at(monday.AddDate(0, 0, 5), 10, 30), false},
	}
	for _, tc := range cases {
		got, err := WithinWorkingHours(db, doctor.ID, tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWithinWorkingHours_InactiveEntryIgnored(t *testing.T) {
	db := openTestDB(t)

	doctor := models.Doctor{Name: "Dr. Roy", LicenseNumber: "LIC-1"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	if err := db.Create(&models.DoctorSchedule{
		DoctorID: doctor.ID, DayOfWeek: models.Monday,
		StartTime: "09:00", EndTime: "17:00", Active: false,
	}).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	ok, err := WithinWorkingHours(db, doctor.ID, at(monday, 10, 0), at(monday, 10, 30))
	if err != nil {
		t.Fatalf("WithinWorkingHours: %v", err)
	}
	if ok {
		t.Fatalf("inactive schedule entry should not grant availability")
	}
}

func TestHasConflict_HalfOpenIntervals(t *testing.T) {
	db := openTestDB(t)

	doctor := models.Doctor{Name: "Dr. Roy", LicenseNumber: "LIC-1"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	existing := models.Appointment{
		DoctorID:  doctor.ID,
		PatientID: 1,
		StartTime: at(monday, 10, 0),
		EndTime:   at(monday, 10, 30),
		Status:    models.StatusScheduled,
		Reason:    "Checkup",
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"overlapping middle", at(monday, 10, 15), at(monday, 10, 45), true},
		{"identical window", at(monday, 10, 0), at(monday, 10, 30), true},
		{"containing window", at(monday, 9, 45), at(monday, 11, 0), true},
		{"back to back after", at(monday, 10, 30), at(monday, 11, 0), false},
		{"back to back before", at(monday, 9, 30), at(monday, 10, 0), false},
		{"different time entirely", at(monday, 14, 0), at(monday, 14, 30), false},
	}
	for _, tc := range cases {
		got, err := HasConflict(db, doctor.ID, tc.start, tc.end, 0)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHasConflict_TerminalStatusesDoNotBlock(t *testing.T) {
	db := openTestDB(t)

	doctor := models.Doctor{Name: "Dr. Roy", LicenseNumber: "LIC-1"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	for _, status := range []models.AppointmentStatus{models.StatusCanceled, models.StatusNoShow, models.StatusCompleted} {
		if err := db.Create(&models.Appointment{
			DoctorID:  doctor.ID,
			PatientID: 1,
			StartTime: at(monday, 10, 0),
			EndTime:   at(monday, 10, 30),
			Status:    status,
			Reason:    "Checkup",
		}).Error; err != nil {
			t.Fatalf("seed %s appointment: %v", status, err)
		}
	}

	got, err := HasConflict(db, doctor.ID, at(monday, 10, 0), at(monday, 10, 30), 0)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if got {
		t.Fatalf("terminal appointments must not block the slot")
	}
}

func TestHasConflict_ExcludesRescheduledAppointment(t *testing.T) {
	db := openTestDB(t)

	doctor := models.Doctor{Name: "Dr. Roy", LicenseNumber: "LIC-1"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	existing := models.Appointment{
		DoctorID:  doctor.ID,
		PatientID: 1,
		StartTime: at(monday, 10, 0),
		EndTime:   at(monday, 10, 30),
		Status:    models.StatusScheduled,
		Reason:    "Checkup",
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	got, err := HasConflict(db, doctor.ID, at(monday, 10, 15), at(monday, 10, 45), existing.ID)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if got {
		t.Fatalf("an appointment must not conflict with itself during reschedule")
	}
}
