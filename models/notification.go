package models

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifyAppointmentScheduled    NotificationType = "appointment_scheduled"
	NotifyAppointmentConfirmation NotificationType = "appointment_confirmation"
	NotifyAppointmentCancellation NotificationType = "appointment_cancellation"
	NotifyAppointmentReminder     NotificationType = "appointment_reminder"
)

// Notification is a user-facing inbox record. The scheduling core only ever
// creates these; read-state belongs to the inbox endpoints.
type Notification struct {
	gorm.Model
	UserID    uint             `json:"user_id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Type      NotificationType `json:"type"`
	RelatedID uint             `json:"related_id"`
	Read      bool             `json:"read" gorm:"default:false"`
}
