package model

import "time"

// FeedModel is the GORM struct for the 'feeds' table, one row of HTTP
// validators per configured feed URL.
type FeedModel struct {
	URL          string `gorm:"type:text;primary_key"`
	LastModified string `gorm:"type:varchar(255)"`
	ETag         string `gorm:"type:varchar(255)"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (FeedModel) TableName() string {
	return "feeds"
}
