package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/services"
	"github.com/medicore/hospital-app/utils"
)

func scheduler() *services.Scheduler {
	return services.NewScheduler(db.DB, services.NewNotifier(db.DB))
}

// schedulingError maps service-layer failures onto HTTP statuses: missing
// resources are 404, rejected requests are 409, the rest is a 500.
func schedulingError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	if services.IsNotFound(err) {
		status = fiber.StatusNotFound
	} else if services.IsValidation(err) {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(utils.ErrorResponse{
		Message: message,
		Error:   err.Error(),
	})
}

// GetAllAppointments godoc
// @Summary Get all appointments
// @Tags appointments
// @Produce json
// @Success 200 {array} models.Appointment
// @Failure 500 {object} utils.ErrorResponse
// @Router /appointments [get]
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	query := db.DB.Preload("Doctor").Preload("Patient")

	if doctorID := c.QueryInt("doctor_id"); doctorID > 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if patientID := c.QueryInt("patient_id"); patientID > 0 {
		query = query.Where("patient_id = ?", patientID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	page := 1
	limit := 20
	if parsed := c.QueryInt("page"); parsed > 0 {
		page = parsed
	}
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}

	var total int64
	query.Model(&models.Appointment{}).Count(&total)

	if err := query.Order("start_time asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// GetAppointment godoc
// @Summary Get an appointment by ID
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Router /appointments/{id} [get]
func GetAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}
	appointment, err := scheduler().Get(uint(id))
	if err != nil {
		return schedulingError(c, "Appointment not found", err)
	}
	return c.JSON(appointment)
}

// CreateAppointment books a new appointment after validating working hours
// and conflicts.
// @Summary Schedule a new appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body services.ScheduleRequest true "Appointment"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments [post]
func CreateAppointment(c *fiber.Ctx) error {
	var req services.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	req.StartTime = utils.ClinicTime(req.StartTime)
	if req.EndTime != nil {
		end := utils.ClinicTime(*req.EndTime)
		req.EndTime = &end
	}

	appointment, err := scheduler().Schedule(req)
	if err != nil {
		return schedulingError(c, "Failed to schedule appointment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// ConfirmAppointment transitions a scheduled appointment to confirmed.
// @Summary Confirm an appointment
// @Tags appointments
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments/{id}/confirm [patch]
func ConfirmAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}
	appointment, err := scheduler().Confirm(uint(id))
	if err != nil {
		return schedulingError(c, "Failed to confirm appointment", err)
	}
	return c.JSON(appointment)
}

// CancelAppointment cancels a scheduled or confirmed appointment and
// notifies both participants.
// @Summary Cancel an appointment
// @Tags appointments
// @Accept json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments/{id}/cancel [patch]
func CancelAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cancellation reason is required",
		})
	}

	appointment, err := scheduler().Cancel(uint(id), body.Reason)
	if err != nil {
		return schedulingError(c, "Failed to cancel appointment", err)
	}
	return c.JSON(appointment)
}

// RescheduleAppointment moves an appointment to a new time window.
// @Summary Reschedule an appointment
// @Tags appointments
// @Accept json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments/{id}/reschedule [patch]
func RescheduleAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}

	var body struct {
		StartTime time.Time  `json:"start_time"`
		EndTime   *time.Time `json:"end_time,omitempty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.StartTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "New start time is required",
		})
	}

	start := utils.ClinicTime(body.StartTime)
	end := body.EndTime
	if end != nil {
		e := utils.ClinicTime(*end)
		end = &e
	}

	appointment, err := scheduler().Reschedule(uint(id), start, end)
	if err != nil {
		return schedulingError(c, "Failed to reschedule appointment", err)
	}
	return c.JSON(appointment)
}

// CompleteAppointment closes out a visit with notes.
// @Summary Complete an appointment
// @Tags appointments
// @Accept json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments/{id}/complete [patch]
func CompleteAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	appointment, err := scheduler().Complete(uint(id), body.Notes)
	if err != nil {
		return schedulingError(c, "Failed to complete appointment", err)
	}
	return c.JSON(appointment)
}

// MarkAppointmentNoShow flags a missed appointment.
// @Summary Mark an appointment as a no-show
// @Tags appointments
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments/{id}/no-show [patch]
func MarkAppointmentNoShow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}
	appointment, err := scheduler().MarkNoShow(uint(id))
	if err != nil {
		return schedulingError(c, "Failed to mark appointment as no-show", err)
	}
	return c.JSON(appointment)
}

// GetDoctorUpcomingAppointments returns upcoming appointments for the
// logged-in doctor.
func GetDoctorUpcomingAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var doctor models.Doctor
	if err := db.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No doctor profile linked to this account",
		})
	}

	limit := 10
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}

	now := time.Now()
	startDate := now
	endDate := now.AddDate(0, 0, 30)

	dateFilter := c.Query("filter", "month")
	switch dateFilter {
	case "today":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		startDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, now.Location())
	case "week":
		endDate = now.AddDate(0, 0, 7)
	case "month":
		endDate = now.AddDate(0, 1, 0)
	}

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").
		Where("doctor_id = ?", doctor.ID).
		Where("start_time >= ? AND start_time <= ?", startDate, endDate).
		Where("status IN ?", []models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed}).
		Order("start_time asc").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
		"filter":       dateFilter,
		"start_date":   startDate.Format("2006-01-02"),
		"end_date":     endDate.Format("2006-01-02"),
	})
}

// GetDoctorAppointmentHistory returns past appointments for the logged-in
// doctor, paginated.
func GetDoctorAppointmentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var doctor models.Doctor
	if err := db.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No doctor profile linked to this account",
		})
	}

	page := 1
	limit := 10
	if parsed := c.QueryInt("page"); parsed > 0 {
		page = parsed
	}
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}
	offset := (page - 1) * limit

	statuses := []models.AppointmentStatus{models.StatusCompleted, models.StatusCanceled, models.StatusNoShow}
	switch models.AppointmentStatus(c.Query("status")) {
	case models.StatusCompleted:
		statuses = []models.AppointmentStatus{models.StatusCompleted}
	case models.StatusCanceled:
		statuses = []models.AppointmentStatus{models.StatusCanceled}
	case models.StatusNoShow:
		statuses = []models.AppointmentStatus{models.StatusNoShow}
	}

	var appointments []models.Appointment
	var total int64

	countQuery := db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctor.ID).
		Where("status IN ?", statuses)
	countQuery.Count(&total)

	err := db.DB.Preload("Patient").
		Where("doctor_id = ?", doctor.ID).
		Where("status IN ?", statuses).
		Order("start_time desc").
		Offset(offset).Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}
