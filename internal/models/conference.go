package models

import "time"

// Conference holds the metadata shown on the public site. At most one
// conference is active at a time.
type Conference struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	NameZH       string    `gorm:"size:200;not null" json:"name_zh"`
	NameEN       string    `gorm:"size:200;not null" json:"name_en"`
	SubtitleZH   string    `gorm:"size:200" json:"subtitle_zh,omitempty"`
	SubtitleEN   string    `gorm:"size:200" json:"subtitle_en,omitempty"`
	DateStart    string    `gorm:"size:20;not null" json:"date_start"`
	DateEnd      string    `gorm:"size:20;not null" json:"date_end"`
	CheckinTime  string    `gorm:"size:50" json:"checkin_time,omitempty"`
	VenueZH      string    `gorm:"size:200;not null" json:"venue_zh"`
	VenueEN      string    `gorm:"size:200;not null" json:"venue_en"`
	ContactEmail string    `gorm:"size:100" json:"contact_email,omitempty"`
	IsActive     bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
