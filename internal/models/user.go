package models

import "time"

// User is a member of the public site
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string    `gorm:"size:255" json:"-"`
	Email     string    `gorm:"uniqueIndex;size:100" json:"email"`
	Phone     string    `gorm:"size:11" json:"phone"`
	Info      string    `gorm:"type:text" json:"info"`
	Face      string    `gorm:"size:255" json:"face"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Suggestion is feedback left on the public site
type Suggestion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (User) TableName() string       { return "users" }
func (Suggestion) TableName() string { return "suggestions" }
