package db

import (
	"log"

	"github.com/medicore/hospital-app/models"
)

// Seed creates the default roles and permissions if they don't exist.
func Seed() {
	roles := []models.Role{
		{Name: "admin", Description: "Administrator with full access"},
		{Name: "doctor", Description: "Doctor who manages appointments and records"},
		{Name: "receptionist", Description: "Front desk staff who manage scheduling"},
		{Name: "patient", Description: "Patient who can book appointments"},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}

	resources := []string{
		"appointments", "patients", "doctors", "rooms", "specialties",
		"schedules", "prescriptions", "records", "users", "roles", "permissions",
	}
	actions := []string{"create", "read", "update", "delete"}

	for _, resource := range resources {
		for _, action := range actions {
			name := action + "_" + resource
			var existing models.Permission
			if DB.Where("name = ?", name).First(&existing).RowsAffected == 0 {
				DB.Create(&models.Permission{
					Name:     name,
					Resource: resource,
					Action:   action,
				})
			}
		}
	}

	// Admin gets everything.
	var adminRole models.Role
	if DB.Where("name = ?", "admin").First(&adminRole).RowsAffected > 0 {
		var allPermissions []models.Permission
		DB.Find(&allPermissions)
		DB.Model(&adminRole).Association("Permissions").Clear()
		DB.Model(&adminRole).Association("Permissions").Append(allPermissions)
	}

	// Doctors read/update their own domain.
	var doctorRole models.Role
	if DB.Where("name = ?", "doctor").First(&doctorRole).RowsAffected > 0 {
		var doctorPermissions []models.Permission
		DB.Where("resource IN ?", []string{"appointments", "prescriptions", "records", "schedules"}).
			Where("action IN ?", []string{"read", "create", "update"}).
			Find(&doctorPermissions)
		var patientRead models.Permission
		if DB.Where("name = ?", "read_patients").First(&patientRead).RowsAffected > 0 {
			doctorPermissions = append(doctorPermissions, patientRead)
		}
		DB.Model(&doctorRole).Association("Permissions").Clear()
		DB.Model(&doctorRole).Association("Permissions").Append(doctorPermissions)
	}

	// Receptionists run the front desk: scheduling plus patient intake.
	var receptionistRole models.Role
	if DB.Where("name = ?", "receptionist").First(&receptionistRole).RowsAffected > 0 {
		var receptionistPermissions []models.Permission
		DB.Where("resource IN ?", []string{"appointments", "patients", "rooms", "schedules"}).
			Where("action IN ?", []string{"read", "create", "update"}).
			Find(&receptionistPermissions)
		DB.Model(&receptionistRole).Association("Permissions").Clear()
		DB.Model(&receptionistRole).Association("Permissions").Append(receptionistPermissions)
	}

	// Patients book and view their own appointments.
	var patientRole models.Role
	if DB.Where("name = ?", "patient").First(&patientRole).RowsAffected > 0 {
		var patientPermissions []models.Permission
		DB.Where("name IN ?", []string{
			"create_appointments",
			"read_appointments",
			"update_appointments",
			"read_doctors",
			"read_specialties",
		}).Find(&patientPermissions)
		DB.Model(&patientRole).Association("Permissions").Clear()
		DB.Model(&patientRole).Association("Permissions").Append(patientPermissions)
	}

	log.Println("✅ Default roles and permissions seeded")
}
