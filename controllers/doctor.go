package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/services"
	"github.com/medicore/hospital-app/utils"
)

// GetAllDoctors godoc
// @Summary Get all doctors
// @Tags doctors
// @Produce json
// @Success 200 {array} models.Doctor
// @Router /doctors [get]
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	query := db.DB.Preload("Specialty")
	if specialtyID := c.QueryInt("specialty_id"); specialtyID > 0 {
		query = query.Where("specialty_id = ?", specialtyID)
	}
	if err := query.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// GetDoctor godoc
// @Summary Get a doctor by ID
// @Tags doctors
// @Param id path int true "Doctor ID"
// @Success 200 {object} models.Doctor
// @Failure 404 {object} utils.ErrorResponse
// @Router /doctors/{id} [get]
func GetDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.Preload("Specialty").Preload("Schedules").First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

// CreateDoctor godoc
// @Summary Register a new doctor
// @Tags doctors
// @Accept json
// @Success 201 {object} models.Doctor
// @Router /doctors [post]
func CreateDoctor(c *fiber.Ctx) error {
	var doctor models.Doctor
	if err := c.BodyParser(&doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if doctor.Name == "" || doctor.LicenseNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Doctor name and license number are required",
		})
	}
	if err := db.DB.Create(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// UpdateDoctor godoc
// @Summary Update a doctor by ID
// @Tags doctors
// @Param id path int true "Doctor ID"
// @Success 200 {object} models.Doctor
// @Router /doctors/{id} [patch]
func UpdateDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	var updates models.Doctor
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Model(&doctor).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update doctor",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

// DeleteDoctor godoc
// @Summary Delete a doctor by ID
// @Tags doctors
// @Param id path int true "Doctor ID"
// @Success 204
// @Router /doctors/{id} [delete]
func DeleteDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Doctor{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete doctor",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type availabilitySlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

// GetDoctorAvailability returns the bookable slots of a doctor for one day,
// derived from the weekly schedule and already-booked appointments.
// @Summary Get a doctor's free slots for a day
// @Tags doctors
// @Param id path int true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} availabilitySlot
// @Router /doctors/{id}/availability [get]
func GetDoctorAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor ID",
		})
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid or missing date, expected YYYY-MM-DD",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	var schedules []models.DoctorSchedule
	if err := db.DB.Where("doctor_id = ? AND day_of_week = ? AND active = ?",
		doctor.ID, int(day.Weekday()), true).Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load doctor schedule",
			Error:   err.Error(),
		})
	}

	slots := []availabilitySlot{}
	for _, schedule := range slotWindows(day, schedules) {
		conflict, err := services.HasConflict(db.DB, doctor.ID, schedule.StartTime, schedule.EndTime, 0)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to check slot availability",
				Error:   err.Error(),
			})
		}
		schedule.Available = !conflict
		slots = append(slots, schedule)
	}

	return c.JSON(fiber.Map{
		"date":  day.Format("2006-01-02"),
		"slots": slots,
	})
}

// slotWindows expands schedule entries into concrete slot windows on the
// given day.
func slotWindows(day time.Time, schedules []models.DoctorSchedule) []availabilitySlot {
	var out []availabilitySlot
	for _, s := range schedules {
		start, err1 := time.Parse("15:04", s.StartTime)
		end, err2 := time.Parse("15:04", s.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		slotLen := time.Duration(s.SlotMinutes) * time.Minute
		if slotLen <= 0 {
			slotLen = services.DefaultAppointmentDuration
		}

		cursor := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, day.Location())
		windowEnd := time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, day.Location())
		for !cursor.Add(slotLen).After(windowEnd) {
			out = append(out, availabilitySlot{StartTime: cursor, EndTime: cursor.Add(slotLen)})
			cursor = cursor.Add(slotLen)
		}
	}
	return out
}
