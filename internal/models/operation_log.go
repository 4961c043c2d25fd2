package models

import "time"

// AdminLoginLog records a successful staff login
type AdminLoginLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminID   uint      `gorm:"index;not null" json:"admin_id"`
	Admin     *Admin    `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	IP        string    `gorm:"size:100" json:"ip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// OperationLog records an administrative mutation
type OperationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminID   uint      `gorm:"index;not null" json:"admin_id"`
	Admin     *Admin    `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	IP        string    `gorm:"size:100" json:"ip"`
	Reason    string    `gorm:"size:600" json:"reason"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// UserLoginLog records a member login on the public site
type UserLoginLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IP        string    `gorm:"size:100" json:"ip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AdminLoginLog) TableName() string { return "admin_login_logs" }
func (OperationLog) TableName() string  { return "operation_logs" }
func (UserLoginLog) TableName() string  { return "user_login_logs" }
