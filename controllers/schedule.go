package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// GetDoctorSchedules godoc
// @Summary Get schedule entries, optionally filtered by doctor
// @Tags schedules
// @Success 200 {array} models.DoctorSchedule
// @Router /schedules [get]
func GetDoctorSchedules(c *fiber.Ctx) error {
	var schedules []models.DoctorSchedule
	query := db.DB
	if doctorID := c.QueryInt("doctor_id"); doctorID > 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if err := query.Order("day_of_week asc, start_time asc").Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedules",
			Error:   err.Error(),
		})
	}
	return c.JSON(schedules)
}

// CreateDoctorSchedule godoc
// @Summary Add a weekly availability window for a doctor
// @Tags schedules
// @Success 201 {object} models.DoctorSchedule
// @Router /schedules [post]
func CreateDoctorSchedule(c *fiber.Ctx) error {
	var schedule models.DoctorSchedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if schedule.DayOfWeek < models.Sunday || schedule.DayOfWeek > models.Saturday {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "day_of_week must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	if err := validateClockRange(schedule.StartTime, schedule.EndTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, schedule.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create schedule entry",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// UpdateDoctorSchedule godoc
// @Summary Update a schedule entry by ID
// @Tags schedules
// @Param id path int true "Schedule ID"
// @Success 200 {object} models.DoctorSchedule
// @Router /schedules/{id} [patch]
func UpdateDoctorSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var schedule models.DoctorSchedule
	if err := db.DB.First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Schedule entry not found",
			Error:   err.Error(),
		})
	}

	var updates models.DoctorSchedule
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if updates.StartTime != "" || updates.EndTime != "" {
		start := schedule.StartTime
		end := schedule.EndTime
		if updates.StartTime != "" {
			start = updates.StartTime
		}
		if updates.EndTime != "" {
			end = updates.EndTime
		}
		if err := validateClockRange(start, end); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		}
	}

	if err := db.DB.Model(&schedule).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update schedule entry",
			Error:   err.Error(),
		})
	}
	return c.JSON(schedule)
}

// DeleteDoctorSchedule godoc
// @Summary Delete a schedule entry by ID
// @Tags schedules
// @Param id path int true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func DeleteDoctorSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.DoctorSchedule{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete schedule entry",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validateClockRange(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "start_time must be in HH:MM 24h format")
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "end_time must be in HH:MM 24h format")
	}
	if !e.After(s) {
		return fiber.NewError(fiber.StatusBadRequest, "end_time must be after start_time")
	}
	return nil
}
