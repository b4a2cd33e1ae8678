package models

import (
	"gorm.io/gorm"
)

type Specialty struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique"`
	Description string `json:"description"`
}
