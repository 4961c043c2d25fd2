package models

import "time"

// Area is a geographic grouping of scenic spots
type Area struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	IsRecommended bool      `gorm:"default:false" json:"is_recommended"`
	Introduction  string    `gorm:"type:text" json:"introduction"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Scenic is a tourist attraction
type Scenic struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"uniqueIndex;size:255;not null" json:"title"`
	Logo          string    `gorm:"size:255" json:"logo"` // stored file name under the upload dir
	Star          int       `gorm:"default:1" json:"star"`
	Address       string    `gorm:"size:255" json:"address"`
	IsHot         bool      `gorm:"default:false" json:"is_hot"`
	IsRecommended bool      `gorm:"default:false" json:"is_recommended"`
	AreaID        uint      `gorm:"index" json:"area_id"`
	Introduction  string    `gorm:"type:text" json:"introduction"`
	Content       string    `gorm:"type:text" json:"content"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Travels is a travel note attached to a scenic spot
type Travels struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;size:255;not null" json:"title"`
	Author    string    `gorm:"size:255" json:"author"`
	ScenicID  uint      `gorm:"index" json:"scenic_id"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Area) TableName() string    { return "areas" }
func (Scenic) TableName() string  { return "scenics" }
func (Travels) TableName() string { return "travels" }
