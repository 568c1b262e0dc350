package model

import (
	"time"

	"github.com/google/uuid"
)

type UsageLog struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	ActionType string    `gorm:"type:varchar(50);not null"`
	HandId     *string   `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (UsageLog) TableName() string {
	return "usage_logs"
}
