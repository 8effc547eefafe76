package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/brasaviva/restaurant-api/internal/models"
)

type ReservationListDTO struct {
	ID          uuid.UUID `json:"id"`
	TableNumber string    `json:"table_number"`
	ClientName  string    `json:"client_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	PartySize   int       `json:"party_size"`
}

func NewReservationListDTO(res *models.Reservation) ReservationListDTO {
	row := ReservationListDTO{
		ID:        res.ID,
		StartTime: res.StartTime,
		EndTime:   res.EndTime(),
		Status:    res.Status,
		PartySize: res.PartySize,
	}

	if res.Table != nil {
		row.TableNumber = res.Table.Number
	}
	if res.Client != nil {
		row.ClientName = res.Client.Name + " " + res.Client.Surname
	}

	return row
}
