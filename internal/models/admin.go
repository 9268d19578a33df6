package models

import "time"

type AdminCredential struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

func (AdminCredential) TableName() string {
	return "admin_credentials"
}
