package models

import "time"

// Sponsor categories follow the conference programme: organizer, diamond,
// gold, media.
type Sponsor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NameZH    string    `gorm:"size:100;not null" json:"name_zh"`
	NameEN    string    `gorm:"size:100;not null" json:"name_en"`
	Abbr      string    `gorm:"size:20" json:"abbr,omitempty"`
	Category  string    `gorm:"size:20;not null" json:"category"`
	LogoURL   string    `gorm:"size:255" json:"logo_url,omitempty"`
	Website   string    `gorm:"size:255" json:"website,omitempty"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
