package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Plan          string     `gorm:"type:varchar(50);not null"`
	Status        string     `gorm:"type:varchar(50);not null"`
	Store         string     `gorm:"type:varchar(50);not null"`
	LimitPerMonth *int       `gorm:""`
	StartedAt     time.Time  `gorm:"not null;index"`
	ExpiresAt     *time.Time `gorm:""`
	PurchaseToken string     `gorm:"type:varchar(255)"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
