package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// GetAllSpecialties godoc
// @Summary Get all specialties
// @Tags specialties
// @Success 200 {array} models.Specialty
// @Router /specialties [get]
func GetAllSpecialties(c *fiber.Ctx) error {
	var specialties []models.Specialty
	if err := db.DB.Find(&specialties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch specialties",
			Error:   err.Error(),
		})
	}
	return c.JSON(specialties)
}

// GetSpecialty godoc
// @Summary Get a specialty by ID
// @Tags specialties
// @Param id path int true "Specialty ID"
// @Success 200 {object} models.Specialty
// @Router /specialties/{id} [get]
func GetSpecialty(c *fiber.Ctx) error {
	id := c.Params("id")
	var specialty models.Specialty
	if err := db.DB.First(&specialty, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Specialty not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(specialty)
}

// CreateSpecialty godoc
// @Summary Create a specialty
// @Tags specialties
// @Success 201 {object} models.Specialty
// @Router /specialties [post]
func CreateSpecialty(c *fiber.Ctx) error {
	var specialty models.Specialty
	if err := c.BodyParser(&specialty); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if specialty.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Specialty name is required",
		})
	}
	if err := db.DB.Create(&specialty).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create specialty",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(specialty)
}

// UpdateSpecialty godoc
// @Summary Update a specialty by ID
// @Tags specialties
// @Param id path int true "Specialty ID"
// @Success 200 {object} models.Specialty
// @Router /specialties/{id} [put]
func UpdateSpecialty(c *fiber.Ctx) error {
	id := c.Params("id")
	var specialty models.Specialty
	if err := db.DB.First(&specialty, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Specialty not found",
			Error:   err.Error(),
		})
	}
	var updates models.Specialty
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Model(&specialty).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update specialty",
			Error:   err.Error(),
		})
	}
	return c.JSON(specialty)
}

// DeleteSpecialty godoc
// @Summary Delete a specialty by ID
// @Tags specialties
// @Param id path int true "Specialty ID"
// @Success 204
// @Router /specialties/{id} [delete]
func DeleteSpecialty(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Specialty{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete specialty",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
