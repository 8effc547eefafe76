package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Surname string `gorm:"size:100;not null" json:"surname"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:256;uniqueIndex;not null" json:"email"`

	BirthDate   *time.Time `json:"birth_date"`
	Preferences string     `gorm:"size:500" json:"preferences"`

	LoyaltyPoints int  `gorm:"default:0" json:"loyalty_points"`
	VIP           bool `gorm:"default:false" json:"vip"`
	VisitCount    int  `gorm:"default:0" json:"visit_count"`

	InternalNotes string `gorm:"type:text" json:"internal_notes"`

	Reservations []Reservation `json:"reservations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
