package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/controllers"
	"github.com/medicore/hospital-app/middleware"
)

// SetupDoctorRoutes configures doctor and schedule related routes
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/doctors")
	doctor.Get("/", controllers.GetAllDoctors)
	doctor.Get("/:id", controllers.GetDoctor)
	doctor.Get("/:id/availability", controllers.GetDoctorAvailability)
	doctor.Post("/", middleware.Protected(), middleware.RequirePermission("doctors", "create"), controllers.CreateDoctor)
	doctor.Patch("/:id", middleware.Protected(), middleware.RequirePermission("doctors", "update"), controllers.UpdateDoctor)
	doctor.Delete("/:id", middleware.Protected(), middleware.RequirePermission("doctors", "delete"), controllers.DeleteDoctor)

	schedule := app.Group("/schedules", middleware.Protected())
	schedule.Get("/", middleware.RequirePermission("schedules", "read"), controllers.GetDoctorSchedules)
	schedule.Post("/", middleware.RequirePermission("schedules", "create"), controllers.CreateDoctorSchedule)
	schedule.Patch("/:id", middleware.RequirePermission("schedules", "update"), controllers.UpdateDoctorSchedule)
	schedule.Delete("/:id", middleware.RequirePermission("schedules", "delete"), controllers.DeleteDoctorSchedule)
}
