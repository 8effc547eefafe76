package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TableID uuid.UUID `gorm:"type:uuid;not null;index" json:"table_id"`
	Table   *Table    `json:"table,omitempty"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Client   `gorm:"constraint:OnDelete:CASCADE;" json:"client,omitempty"`

	StartTime   time.Time `gorm:"not null" json:"start_time"`
	DurationMin int       `gorm:"not null" json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string `gorm:"size:500" json:"notes"`
	PartySize   int    `gorm:"not null" json:"party_size"`
	SpecialMenu bool   `gorm:"default:false" json:"special_menu"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime is derived: a reservation holds its table for [StartTime, EndTime).
func (r *Reservation) EndTime() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationMin) * time.Minute)
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
