package model

import (
	"time"

	"github.com/google/uuid"
)

// Bar is a point of sale inside an event. Stock is assigned per bar and
// tickets are confirmed against a bar.
// Status: "active" | "inactive" | "closed"
type Bar struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"eventId"`
	Name    string    `gorm:"not null" json:"name"`
	Printer *string   `json:"printer,omitempty"`
	Status  string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Event *Event `gorm:"foreignKey:EventID" json:"-"`
}

// Event groups bars, stock and tickets for one night/party.
// Status: "active" | "finished" | "cancelled"
type Event struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name   string     `gorm:"not null" json:"name"`
	Date   *time.Time `json:"date,omitempty"`
	Status string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
