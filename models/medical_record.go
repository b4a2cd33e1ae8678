package models

import (
	"time"

	"gorm.io/gorm"
)

type MedicalRecord struct {
	gorm.Model
	PatientID     uint      `json:"patient_id"`
	Patient       Patient   `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DoctorID      uint      `json:"doctor_id"`
	Doctor        Doctor    `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	VisitDate     time.Time `json:"visit_date"`
	Diagnosis     string    `json:"diagnosis"`
	Treatment     string    `json:"treatment"`
	AttachmentURL string    `json:"attachment_url"`
}
