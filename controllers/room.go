package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// GetAllRooms godoc
// @Summary Get all rooms
// @Tags rooms
// @Success 200 {array} models.Room
// @Router /rooms [get]
func GetAllRooms(c *fiber.Ctx) error {
	var rooms []models.Room
	query := db.DB
	if roomType := c.Query("type"); roomType != "" {
		query = query.Where("type = ?", roomType)
	}
	if err := query.Find(&rooms).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch rooms",
			Error:   err.Error(),
		})
	}
	return c.JSON(rooms)
}

// GetRoom godoc
// @Summary Get a room by ID
// @Tags rooms
// @Param id path int true "Room ID"
// @Success 200 {object} models.Room
// @Router /rooms/{id} [get]
func GetRoom(c *fiber.Ctx) error {
	id := c.Params("id")
	var room models.Room
	if err := db.DB.First(&room, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Room not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(room)
}

// CreateRoom godoc
// @Summary Create a room
// @Tags rooms
// @Success 201 {object} models.Room
// @Router /rooms [post]
func CreateRoom(c *fiber.Ctx) error {
	var room models.Room
	if err := c.BodyParser(&room); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if room.Number == "" || room.Capacity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Room number and a positive capacity are required",
		})
	}
	if err := db.DB.Create(&room).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create room",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

// UpdateRoom godoc
// @Summary Update a room by ID
// @Tags rooms
// @Param id path int true "Room ID"
// @Success 200 {object} models.Room
// @Router /rooms/{id} [patch]
func UpdateRoom(c *fiber.Ctx) error {
	id := c.Params("id")
	var room models.Room
	if err := db.DB.First(&room, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Room not found",
			Error:   err.Error(),
		})
	}
	var updates models.Room
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Model(&room).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update room",
			Error:   err.Error(),
		})
	}
	return c.JSON(room)
}

// DeleteRoom godoc
// @Summary Delete a room by ID
// @Tags rooms
// @Param id path int true "Room ID"
// @Success 204
// @Router /rooms/{id} [delete]
func DeleteRoom(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Room{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete room",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
