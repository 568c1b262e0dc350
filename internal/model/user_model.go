package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DisplayName  string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	AuthProvider string    `gorm:"type:varchar(50);not null;default:'google'"`
	GoogleSub    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	LastActiveAt time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
