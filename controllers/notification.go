package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// GetMyNotifications returns the inbox of the logged-in user, newest first.
// @Summary Get the current user's notifications
// @Tags notifications
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func GetMyNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	query := db.DB.Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").Limit(50).Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch notifications",
			Error:   err.Error(),
		})
	}
	return c.JSON(notifications)
}

// MarkNotificationRead flags one of the user's notifications as read.
// @Summary Mark a notification as read
// @Tags notifications
// @Param id path int true "Notification ID"
// @Success 200 {object} models.Notification
// @Router /notifications/{id}/read [patch]
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var notification models.Notification
	if err := db.DB.Where("user_id = ?", userID).First(&notification, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Notification not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&notification).Update("read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to mark notification as read",
			Error:   err.Error(),
		})
	}
	return c.JSON(notification)
}
