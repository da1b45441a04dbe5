package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                  string         `gorm:"type:varchar(100);not null"`
	AdminId               uuid.UUID      `gorm:"type:uuid;not null;index"`
	IsActive              bool           `gorm:"default:true"`
	ChunkSize             int            `gorm:"default:1000"`
	ChunkOverlap          int            `gorm:"default:200"`
	InternetSearchEnabled bool           `gorm:"default:false"`
	ModelConfig           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime"`
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
