package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// GetAllPrescriptions godoc
// @Summary Get prescriptions, optionally filtered by patient or doctor
// @Tags prescriptions
// @Success 200 {array} models.Prescription
// @Router /prescriptions [get]
func GetAllPrescriptions(c *fiber.Ctx) error {
	var prescriptions []models.Prescription
	query := db.DB.Preload("Doctor").Preload("Patient")
	if patientID := c.QueryInt("patient_id"); patientID > 0 {
		query = query.Where("patient_id = ?", patientID)
	}
	if doctorID := c.QueryInt("doctor_id"); doctorID > 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if err := query.Order("created_at desc").Find(&prescriptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}
	return c.JSON(prescriptions)
}

// GetPrescription godoc
// @Summary Get a prescription by ID
// @Tags prescriptions
// @Param id path int true "Prescription ID"
// @Success 200 {object} models.Prescription
// @Router /prescriptions/{id} [get]
func GetPrescription(c *fiber.Ctx) error {
	id := c.Params("id")
	var prescription models.Prescription
	if err := db.DB.Preload("Doctor").Preload("Patient").First(&prescription, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(prescription)
}

// CreatePrescription godoc
// @Summary Issue a prescription
// @Tags prescriptions
// @Success 201 {object} models.Prescription
// @Router /prescriptions [post]
func CreatePrescription(c *fiber.Ctx) error {
	var prescription models.Prescription
	if err := c.BodyParser(&prescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if prescription.Medication == "" || prescription.Dosage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Medication and dosage are required",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, prescription.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	var patient models.Patient
	if err := db.DB.First(&patient, prescription.PatientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&prescription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create prescription",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(prescription)
}

// DeletePrescription godoc
// @Summary Delete a prescription by ID
// @Tags prescriptions
// @Param id path int true "Prescription ID"
// @Success 204
// @Router /prescriptions/{id} [delete]
func DeletePrescription(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Prescription{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete prescription",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
