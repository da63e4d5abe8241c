// Package model contains the GORM-specific structs for the durable
// collections: registrations, feed validators and seen events.
package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationModel is the GORM struct for the 'registrations' table. The
// composite unique index enforces one registration per (subscriber, point)
// pair at the store boundary.
type RegistrationModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Subscriber string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_registrations_subscriber_point;index:idx_registrations_subscriber"`
	Latitude   float64   `gorm:"type:decimal(11,8);not null;uniqueIndex:idx_registrations_subscriber_point"`
	Longitude  float64   `gorm:"type:decimal(11,8);not null;uniqueIndex:idx_registrations_subscriber_point"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (RegistrationModel) TableName() string {
	return "registrations"
}
