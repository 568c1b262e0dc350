package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type HandHistory struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	HandId       string         `gorm:"type:varchar(255);not null"`
	Title        string         `gorm:"type:varchar(255)"`
	Snapshot     datatypes.JSON `gorm:"type:jsonb"`
	Evaluation   datatypes.JSON `gorm:"type:jsonb"`
	Conversation datatypes.JSON `gorm:"type:jsonb"`
	Markdown     string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (HandHistory) TableName() string {
	return "hand_histories"
}
