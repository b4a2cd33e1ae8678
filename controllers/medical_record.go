package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// GetPatientRecords godoc
// @Summary Get the medical history of a patient
// @Tags records
// @Param id path int true "Patient ID"
// @Success 200 {array} models.MedicalRecord
// @Router /patients/{id}/records [get]
func GetPatientRecords(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	var records []models.MedicalRecord
	if err := db.DB.Preload("Doctor").
		Where("patient_id = ?", patient.ID).
		Order("visit_date desc").
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch medical records",
			Error:   err.Error(),
		})
	}
	return c.JSON(records)
}

// GetMedicalRecord godoc
// @Summary Get a medical record by ID
// @Tags records
// @Param id path int true "Record ID"
// @Success 200 {object} models.MedicalRecord
// @Router /records/{id} [get]
func GetMedicalRecord(c *fiber.Ctx) error {
	id := c.Params("id")
	var record models.MedicalRecord
	if err := db.DB.Preload("Doctor").Preload("Patient").First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medical record not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(record)
}

// CreateMedicalRecord godoc
// @Summary Create a medical record
// @Tags records
// @Success 201 {object} models.MedicalRecord
// @Router /records [post]
func CreateMedicalRecord(c *fiber.Ctx) error {
	var record models.MedicalRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if record.Diagnosis == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Diagnosis is required",
		})
	}
	if record.VisitDate.IsZero() {
		record.VisitDate = time.Now()
	}

	var patient models.Patient
	if err := db.DB.First(&patient, record.PatientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	var doctor models.Doctor
	if err := db.DB.First(&doctor, record.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create medical record",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// UpdateMedicalRecord godoc
// @Summary Update a medical record by ID
// @Tags records
// @Param id path int true "Record ID"
// @Success 200 {object} models.MedicalRecord
// @Router /records/{id} [patch]
func UpdateMedicalRecord(c *fiber.Ctx) error {
	id := c.Params("id")
	var record models.MedicalRecord
	if err := db.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medical record not found",
			Error:   err.Error(),
		})
	}
	var updates models.MedicalRecord
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Model(&record).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update medical record",
			Error:   err.Error(),
		})
	}
	return c.JSON(record)
}

// UploadRecordAttachment stores a scanned report on Cloudinary and links it
// to the record.
// @Summary Attach a scanned report to a medical record
// @Tags records
// @Param id path int true "Record ID"
// @Success 200 {object} models.MedicalRecord
// @Router /records/{id}/attachment [post]
func UploadRecordAttachment(c *fiber.Ctx) error {
	id := c.Params("id")
	var record models.MedicalRecord
	if err := db.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Medical record not found",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing attachment file",
			Error:   err.Error(),
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read attachment file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(file, fmt.Sprintf("record-%d", record.ID), "records")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload attachment",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&record).Update("attachment_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save attachment URL",
			Error:   err.Error(),
		})
	}
	return c.JSON(record)
}
