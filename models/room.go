package models

import (
	"gorm.io/gorm"
)

type RoomType string

const (
	RoomWard         RoomType = "ward"
	RoomICU          RoomType = "icu"
	RoomConsultation RoomType = "consultation"
	RoomOperating    RoomType = "operating"
)

type Room struct {
	gorm.Model
	Number    string   `json:"number" gorm:"unique"`
	Type      RoomType `json:"type"`
	Floor     int      `json:"floor"`
	Capacity  int      `json:"capacity"`
	Occupied  int      `json:"occupied"`
	Available bool     `json:"available" gorm:"-"`
}

func (r *Room) AfterFind(tx *gorm.DB) (err error) {
	r.Available = r.Occupied < r.Capacity
	return
}
