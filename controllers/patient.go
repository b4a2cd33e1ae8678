package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// GetAllPatients godoc
// @Summary Get all patients
// @Tags patients
// @Produce json
// @Success 200 {array} models.Patient
// @Router /patients [get]
func GetAllPatients(c *fiber.Ctx) error {
	var patients []models.Patient
	query := db.DB
	if name := c.Query("name"); name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}
	if err := query.Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}
	return c.JSON(patients)
}

// GetPatient godoc
// @Summary Get a patient by ID
// @Tags patients
// @Param id path int true "Patient ID"
// @Success 200 {object} models.Patient
// @Failure 404 {object} utils.ErrorResponse
// @Router /patients/{id} [get]
func GetPatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

// CreatePatient godoc
// @Summary Register a new patient
// @Tags patients
// @Accept json
// @Success 201 {object} models.Patient
// @Router /patients [post]
func CreatePatient(c *fiber.Ctx) error {
	var patient models.Patient
	if err := c.BodyParser(&patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if patient.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Patient name is required",
		})
	}
	if err := db.DB.Create(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create patient",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(patient)
}

// UpdatePatient godoc
// @Summary Update a patient by ID
// @Tags patients
// @Param id path int true "Patient ID"
// @Success 200 {object} models.Patient
// @Router /patients/{id} [patch]
func UpdatePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	var updates models.Patient
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Model(&patient).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update patient",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

// DeletePatient godoc
// @Summary Delete a patient by ID
// @Tags patients
// @Param id path int true "Patient ID"
// @Success 204
// @Router /patients/{id} [delete]
func DeletePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Patient{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete patient",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPatientPhoto stores the patient's photo on Cloudinary and saves the
// URL on the record.
// @Summary Upload a patient photo
// @Tags patients
// @Param id path int true "Patient ID"
// @Success 200 {object} models.Patient
// @Router /patients/{id}/photo [post]
func UploadPatientPhoto(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing photo file",
			Error:   err.Error(),
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read photo file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(file, fmt.Sprintf("patient-%d", patient.ID), "patients")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload photo",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&patient).Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save photo URL",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}
