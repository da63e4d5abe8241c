package model

import "time"

// EventModel is the GORM struct for the 'events' table: the durable set of
// alert event identifiers already evaluated for notification.
type EventModel struct {
	ID        string `gorm:"type:varchar(512);primary_key"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}
