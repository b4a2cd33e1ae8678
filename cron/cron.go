package cron

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/services"
	"github.com/medicore/hospital-app/utils"
)

const defaultNoShowGraceMinutes = 60

// StartCronJobs initializes the background jobs: the no-show sweep and
// appointment reminders.
func StartCronJobs() {
	c := cron.New()

	// Sweep overdue appointments every 5 minutes.
	_, err := c.AddFunc("*/5 * * * *", processNoShowAppointments)
	if err != nil {
		log.Fatalf("Failed to add no-show cron job: %v", err)
	}

	// Check for appointments starting within the next hour, every minute.
	_, err = c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started for no-show sweep and appointment reminders")
}

// processNoShowAppointments marks every appointment as no-show whose end time
// passed more than the grace period ago.
func processNoShowAppointments() {
	grace := defaultNoShowGraceMinutes
	if v := os.Getenv("NO_SHOW_GRACE_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			grace = parsed
		}
	}

	scheduler := services.NewScheduler(db.DB, services.NewNotifier(db.DB))
	marked, err := scheduler.ProcessNoShows(time.Duration(grace) * time.Minute)
	if err != nil {
		log.Printf("No-show sweep failed: %v", err)
		return
	}
	if marked > 0 {
		log.Printf("No-show sweep marked %d appointments", marked)
	}
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Patient.User").Preload("Doctor").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Patient.User.Email == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.User.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Reason:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Location:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Hospital Team</p>
	`, appointment.Patient.Name, appointment.Doctor.Name, appointment.Reason,
		appointment.StartTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime.Format("2006-01-02 15:04:05"),
		appointment.Location)

	return utils.SendEmail(appointment.Patient.User.Email, subject, body)
}
