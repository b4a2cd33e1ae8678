package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Prescription struct {
	gorm.Model
	Number        string      `json:"number" gorm:"unique"`
	AppointmentID *uint       `json:"appointment_id,omitempty"`
	Appointment   Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	DoctorID      uint        `json:"doctor_id"`
	Doctor        Doctor      `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID     uint        `json:"patient_id"`
	Patient       Patient     `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Medication    string      `json:"medication"`
	Dosage        string      `json:"dosage"`
	Frequency     string      `json:"frequency"`
	DurationDays  int         `json:"duration_days"`
	Instructions  string      `json:"instructions"`
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.Number == "" {
		p.Number = uuid.NewString()
	}
	return nil
}
