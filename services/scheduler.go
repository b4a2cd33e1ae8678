package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medicore/hospital-app/models"
)

// DefaultAppointmentDuration is applied when a booking request carries no
// explicit end time.
const DefaultAppointmentDuration = 30 * time.Minute

// Scheduler owns the appointment lifecycle: booking with availability and
// conflict validation, the status transitions, and the notification side
// effects. All mutations run validate-then-write inside one transaction,
// holding the doctor row (lockDoctor) for the writing paths so a concurrent
// booking for the same doctor cannot slip between the conflict check and the
// insert.
type Scheduler struct {
	db       *gorm.DB
	notifier *Notifier
	now      func() time.Time
}

func NewScheduler(db *gorm.DB, notifier *Notifier) *Scheduler {
	return &Scheduler{db: db, notifier: notifier, now: time.Now}
}

// ScheduleRequest carries the caller-supplied fields for a new appointment.
// EndTime is optional; participants are fixed at creation.
type ScheduleRequest struct {
	DoctorID  uint       `json:"doctor_id"`
	PatientID uint       `json:"patient_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Reason    string     `json:"reason"`
	Notes     string     `json:"notes,omitempty"`
	Location  string     `json:"location,omitempty"`
}

// Schedule books a new appointment. Fails with NotFoundError when doctor or
// patient is missing and with ValidationError when the window is invalid,
// outside working hours or conflicts with an existing booking.
func (s *Scheduler) Schedule(req ScheduleRequest) (*models.Appointment, error) {
	var patient models.Patient
	if err := s.db.First(&patient, req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("patient", req.PatientID)
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	if req.Reason == "" {
		return nil, invalidf("appointment reason is required")
	}
	if len(req.Reason) > models.MaxReasonLength {
		return nil, invalidf("appointment reason must be at most %d characters", models.MaxReasonLength)
	}

	start := req.StartTime
	end := start.Add(DefaultAppointmentDuration)
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if !end.After(start) {
		return nil, invalidf("appointment end time must be after start time")
	}
	if start.Before(s.now()) {
		return nil, invalidf("appointment date cannot be in the past")
	}

	appointment := models.Appointment{
		DoctorID:  req.DoctorID,
		PatientID: patient.ID,
		StartTime: start,
		EndTime:   end,
		Status:    models.StatusScheduled,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Location:  req.Location,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		doctor, err := lockDoctor(tx, req.DoctorID)
		if err != nil {
			return err
		}

		ok, err := WithinWorkingHours(tx, doctor.ID, start, end)
		if err != nil {
			return err
		}
		if !ok {
			return invalidf("doctor is not available on %s at %s",
				models.DayOfWeek(start.Weekday()), start.Format(clockLayout))
		}

		conflict, err := HasConflict(tx, doctor.ID, start, end, 0)
		if err != nil {
			return err
		}
		if conflict {
			return invalidf("doctor already has an appointment in this time slot")
		}

		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyBoth(&appointment, models.NotifyAppointmentScheduled,
		"Appointment Scheduled",
		fmt.Sprintf("Appointment on %s for %q has been scheduled.",
			appointment.StartTime.Format("2006-01-02 15:04"), appointment.Reason))

	return s.reload(appointment.ID)
}

// Confirm moves a scheduled appointment to confirmed and informs the patient.
func (s *Scheduler) Confirm(id uint) (*models.Appointment, error) {
	appointment, err := s.transition(id, func(a *models.Appointment) error {
		return a.Confirm(s.now())
	})
	if err != nil {
		return nil, err
	}

	var patient models.Patient
	if err := s.db.First(&patient, appointment.PatientID).Error; err == nil {
		s.notify(patient.UserID, models.NotifyAppointmentConfirmation,
			"Appointment Confirmed",
			fmt.Sprintf("Your appointment on %s has been confirmed.",
				appointment.StartTime.Format("2006-01-02 15:04")),
			appointment.ID)
	}
	return s.reload(appointment.ID)
}

// Cancel moves a scheduled or confirmed appointment to canceled and informs
// both participants. Participants without a linked user account are skipped
// silently.
func (s *Scheduler) Cancel(id uint, reason string) (*models.Appointment, error) {
	appointment, err := s.transition(id, func(a *models.Appointment) error {
		return a.Cancel(reason)
	})
	if err != nil {
		return nil, err
	}

	s.notifyBoth(appointment, models.NotifyAppointmentCancellation,
		"Appointment Canceled",
		fmt.Sprintf("Appointment on %s has been canceled. Reason: %s",
			appointment.StartTime.Format("2006-01-02 15:04"), reason))

	return s.reload(appointment.ID)
}

// Reschedule moves the appointment to a new window, keeping participants. The
// new window is validated against both working hours and conflicts, with the
// appointment itself excluded from the conflict scan. A nil newEnd keeps the
// current duration.
func (s *Scheduler) Reschedule(id uint, newStart time.Time, newEnd *time.Time) (*models.Appointment, error) {
	if newStart.Before(s.now()) {
		return nil, invalidf("appointment date cannot be in the past")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		appointment, err := lockAppointment(tx, id)
		if err != nil {
			return err
		}
		// Same per-doctor mutex as Schedule; without it two transactions
		// moving into the same empty slot could both pass the conflict scan.
		if _, err := lockDoctor(tx, appointment.DoctorID); err != nil {
			return err
		}

		end := newStart.Add(appointment.EndTime.Sub(appointment.StartTime))
		if newEnd != nil {
			end = *newEnd
		}

		ok, err := WithinWorkingHours(tx, appointment.DoctorID, newStart, end)
		if err != nil {
			return err
		}
		if !ok {
			return invalidf("doctor is not available on %s at %s",
				models.DayOfWeek(newStart.Weekday()), newStart.Format(clockLayout))
		}

		conflict, err := HasConflict(tx, appointment.DoctorID, newStart, end, appointment.ID)
		if err != nil {
			return err
		}
		if conflict {
			return invalidf("doctor already has an appointment in this time slot")
		}

		if err := appointment.Reschedule(newStart, end); err != nil {
			return invalidf("%s", err.Error())
		}
		return tx.Save(appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return s.reload(id)
}

// Complete closes out an appointment with visit notes.
func (s *Scheduler) Complete(id uint, notes string) (*models.Appointment, error) {
	appointment, err := s.transition(id, func(a *models.Appointment) error {
		return a.Complete(notes)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(appointment.ID)
}

// MarkNoShow flags a missed appointment. No notification is sent.
func (s *Scheduler) MarkNoShow(id uint) (*models.Appointment, error) {
	appointment, err := s.transition(id, func(a *models.Appointment) error {
		return a.MarkNoShow(s.now(), 0)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(appointment.ID)
}

// ProcessNoShows sweeps all non-terminal appointments whose end time passed
// more than grace ago and marks each as a no-show. Idempotent: appointments
// already in a terminal status are excluded from the fetch, so a second run
// finds nothing new. Returns the number of appointments transitioned.
func (s *Scheduler) ProcessNoShows(grace time.Duration) (int, error) {
	threshold := s.now().Add(-grace)

	var overdue []models.Appointment
	err := s.db.
		Where("status IN ?", []models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed}).
		Where("end_time < ?", threshold).
		Find(&overdue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to fetch overdue appointments: %w", err)
	}

	marked := 0
	for i := range overdue {
		_, err := s.transition(overdue[i].ID, func(a *models.Appointment) error {
			return a.MarkNoShow(s.now(), grace)
		})
		if err != nil {
			// A concurrent cancel/complete may have beaten the sweep; skip it.
			log.Printf("No-show sweep skipped appointment %d: %v", overdue[i].ID, err)
			continue
		}
		marked++
	}
	return marked, nil
}

// Get returns one appointment with its participants.
func (s *Scheduler) Get(id uint) (*models.Appointment, error) {
	return s.reload(id)
}

// transition applies one state-machine mutation under the row lock and saves
// atomically. Precondition failures surface as ValidationError with the
// status unchanged.
func (s *Scheduler) transition(id uint, mutate func(*models.Appointment) error) (*models.Appointment, error) {
	var appointment *models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		a, err := lockAppointment(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(a); err != nil {
			return invalidf("%s", err.Error())
		}
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		appointment = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// lockDoctor pins the doctor row for the rest of the transaction. Booking
// writes take it before the conflict scan: the scan's FOR UPDATE has nothing
// to lock when the candidate slot is empty, so without a common lock two
// concurrent inserts could both see zero conflicts and commit overlapping
// windows. Holding the doctor row serializes all bookings per doctor.
func lockDoctor(tx *gorm.DB, id uint) (*models.Doctor, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var doctor models.Doctor
	if err := q.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("doctor", id)
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	return &doctor, nil
}

func lockAppointment(tx *gorm.DB, id uint) (*models.Appointment, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var appointment models.Appointment
	if err := q.First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("appointment", id)
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return &appointment, nil
}

func (s *Scheduler) reload(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.Preload("Doctor").Preload("Patient").First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("appointment", id)
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return &appointment, nil
}

func (s *Scheduler) notify(userID uint, ntype models.NotificationType, title, body string, relatedID uint) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(userID, title, body, ntype, relatedID); err != nil {
		log.Printf("Failed to record notification for user %d: %v", userID, err)
	}
}

func (s *Scheduler) notifyBoth(appointment *models.Appointment, ntype models.NotificationType, title, body string) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, appointment.DoctorID).Error; err == nil {
		s.notify(doctor.UserID, ntype, title, body, appointment.ID)
	}
	var patient models.Patient
	if err := s.db.First(&patient, appointment.PatientID).Error; err == nil {
		s.notify(patient.UserID, ntype, title, body, appointment.ID)
	}
}
