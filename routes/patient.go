package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/controllers"
	"github.com/medicore/hospital-app/middleware"
)

// SetupPatientRoutes configures patient and medical record routes
func SetupPatientRoutes(app *fiber.App) {
	patient := app.Group("/patients", middleware.Protected())
	patient.Get("/", middleware.RequirePermission("patients", "read"), controllers.GetAllPatients)
	patient.Get("/:id", middleware.RequirePermission("patients", "read"), controllers.GetPatient)
	patient.Get("/:id/records", middleware.RequirePermission("records", "read"), controllers.GetPatientRecords)
	patient.Post("/", middleware.RequirePermission("patients", "create"), controllers.CreatePatient)
	patient.Post("/:id/photo", middleware.RequirePermission("patients", "update"), controllers.UploadPatientPhoto)
	patient.Patch("/:id", middleware.RequirePermission("patients", "update"), controllers.UpdatePatient)
	patient.Delete("/:id", middleware.RequirePermission("patients", "delete"), controllers.DeletePatient)

	record := app.Group("/records", middleware.Protected())
	record.Get("/:id", middleware.RequirePermission("records", "read"), controllers.GetMedicalRecord)
	record.Post("/", middleware.RequirePermission("records", "create"), controllers.CreateMedicalRecord)
	record.Post("/:id/attachment", middleware.RequirePermission("records", "update"), controllers.UploadRecordAttachment)
	record.Patch("/:id", middleware.RequirePermission("records", "update"), controllers.UpdateMedicalRecord)

	prescription := app.Group("/prescriptions", middleware.Protected())
	prescription.Get("/", middleware.RequirePermission("prescriptions", "read"), controllers.GetAllPrescriptions)
	prescription.Get("/:id", middleware.RequirePermission("prescriptions", "read"), controllers.GetPrescription)
	prescription.Post("/", middleware.RequirePermission("prescriptions", "create"), controllers.CreatePrescription)
	prescription.Delete("/:id", middleware.RequirePermission("prescriptions", "delete"), controllers.DeletePrescription)
}
