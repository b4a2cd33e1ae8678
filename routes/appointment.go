package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/controllers"
	"github.com/medicore/hospital-app/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())
	appointment.Get("/", middleware.RequirePermission("appointments", "read"), controllers.GetAllAppointments)
	appointment.Get("/:id", middleware.RequirePermission("appointments", "read"), controllers.GetAppointment)
	appointment.Post("/", middleware.RequirePermission("appointments", "create"), controllers.CreateAppointment)
	appointment.Patch("/:id/confirm", middleware.RequirePermission("appointments", "update"), controllers.ConfirmAppointment)
	appointment.Patch("/:id/cancel", middleware.RequirePermission("appointments", "update"), controllers.CancelAppointment)
	appointment.Patch("/:id/reschedule", middleware.RequirePermission("appointments", "update"), controllers.RescheduleAppointment)
	appointment.Patch("/:id/complete", middleware.RequirePermission("appointments", "update"), controllers.CompleteAppointment)
	appointment.Patch("/:id/no-show", middleware.RequirePermission("appointments", "update"), controllers.MarkAppointmentNoShow)

	// Doctor-facing views of their own calendar.
	doctor := app.Group("/doctor/appointments", middleware.Protected())
	doctor.Get("/upcoming", controllers.GetDoctorUpcomingAppointments)
	doctor.Get("/history", controllers.GetDoctorAppointmentHistory)
}
