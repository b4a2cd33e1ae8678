package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d DayOfWeek) String() string {
	if d < Sunday || d > Saturday {
		return "Unknown"
	}
	return dayNames[d]
}

// DoctorSchedule is one weekly availability window for a doctor.
type DoctorSchedule struct {
	gorm.Model
	DoctorID    uint      `json:"doctor_id"`
	DayOfWeek   DayOfWeek `json:"day_of_week"`
	StartTime   string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime     string    `json:"end_time"`   // Format "HH:MM" in 24h
	SlotMinutes int       `json:"slot_minutes" gorm:"default:30"`
	Active      bool      `json:"active" gorm:"default:true"`
}
