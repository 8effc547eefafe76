package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TableAvailable   = "available"
	TableOccupied    = "occupied"
	TableMaintenance = "maintenance"
)

type Table struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Number   string `gorm:"size:50;uniqueIndex;not null" json:"number"`
	Capacity int    `gorm:"not null" json:"capacity"`

	Location   string `gorm:"size:100;default:'indoor'" json:"location"`
	Accessible bool   `gorm:"default:false" json:"accessible"`
	HasView    bool   `gorm:"default:false" json:"has_view"`

	Status string `gorm:"size:20;default:'available'" json:"status"`

	LastCleanedAt *time.Time `json:"last_cleaned_at"`
	AverageRating int        `gorm:"default:0" json:"average_rating"`

	Reservations []Reservation `gorm:"constraint:OnDelete:RESTRICT;" json:"reservations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
