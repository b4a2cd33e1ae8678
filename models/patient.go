package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	UserID      uint      `json:"user_id"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	BloodGroup  string    `json:"blood_group"`
	PhotoURL    string    `json:"photo_url"`
}
