package db

import (
	"fmt"
	"log"

	"github.com/medicore/hospital-app/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Specialty{},
		&models.Doctor{},
		&models.Patient{},
		&models.Room{},
		&models.DoctorSchedule{},
		&models.Appointment{},
		&models.Prescription{},
		&models.MedicalRecord{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Make sure the default roles and permissions exist before any login.
	Seed()

	fmt.Println("✅ Migrations applied successfully!")
}
