package dto

import "time"

type AppointmentListDTO struct {
	ID         uint      `json:"id"`
	BarberName string    `json:"barber_name"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	ClientName string    `json:"client_name"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}
