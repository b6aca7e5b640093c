package models

import "time"

// Client é identificado pelo id da plataforma de chat.
type Client struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ExternalUserID int64  `gorm:"uniqueIndex;not null" json:"external_user_id"`
	Name           string `gorm:"type:text" json:"name"`
	Phone          string `gorm:"type:text" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
