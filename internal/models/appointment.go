package models

import "time"

// Appointment guarda nome e telefone do cliente como foto do momento da
// reserva, não como referência viva ao Client.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;uniqueIndex:idx_appointment_slot,priority:1" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ClientName string `gorm:"type:text;not null" json:"client_name"`
	Phone      string `gorm:"type:text" json:"phone"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_appointment_slot,priority:2" json:"date"`
	Time string `gorm:"size:5;not null;uniqueIndex:idx_appointment_slot,priority:3" json:"time"`

	CreatedAt time.Time `json:"created_at"`
}
