package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	UserID          uint      `json:"user_id"`
	User            User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name            string    `json:"name"`
	SpecialtyID     uint      `json:"specialty_id"`
	Specialty       Specialty `json:"specialty,omitempty" gorm:"foreignKey:SpecialtyID"`
	LicenseNumber   string    `json:"license_number" gorm:"unique"`
	Phone           string    `json:"phone"`
	ConsultationFee float64   `json:"consultation_fee"`
	Schedules       []DoctorSchedule `json:"schedules,omitempty" gorm:"foreignKey:DoctorID"`
}
