package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/redis"
	"github.com/medicore/hospital-app/utils"
)

const dashboardCacheKey = "dashboard:stats"
const dashboardCacheTTL = 60 * time.Second

type dashboardStats struct {
	Doctors           int64            `json:"doctors"`
	Patients          int64            `json:"patients"`
	RoomsAvailable    int64            `json:"rooms_available"`
	AppointmentsToday int64            `json:"appointments_today"`
	StatusBreakdown   map[string]int64 `json:"status_breakdown"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// GetDashboardStats returns hospital-wide counters for the admin dashboard.
// Served from a short-lived redis cache when available.
// @Summary Get dashboard statistics
// @Tags dashboard
// @Success 200 {object} dashboardStats
// @Router /dashboard/stats [get]
func GetDashboardStats(c *fiber.Ctx) error {
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, dashboardCacheKey).Result(); err == nil {
			var stats dashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return c.JSON(stats)
			}
		}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats := dashboardStats{
		StatusBreakdown: map[string]int64{},
		GeneratedAt:     now,
	}

	db.DB.Model(&models.Doctor{}).Count(&stats.Doctors)
	db.DB.Model(&models.Patient{}).Count(&stats.Patients)
	db.DB.Model(&models.Room{}).Where("occupied < capacity").Count(&stats.RoomsAvailable)
	db.DB.Model(&models.Appointment{}).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Count(&stats.AppointmentsToday)

	type statusCount struct {
		Status models.AppointmentStatus
		Count  int64
	}
	var counts []statusCount
	if err := db.DB.Model(&models.Appointment{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute dashboard statistics",
			Error:   err.Error(),
		})
	}
	for _, sc := range counts {
		stats.StatusBreakdown[string(sc.Status)] = sc.Count
	}

	if redis.Client != nil {
		if payload, err := json.Marshal(stats); err == nil {
			redis.Client.Set(redis.Ctx, dashboardCacheKey, payload, dashboardCacheTTL)
		}
	}

	return c.JSON(stats)
}
