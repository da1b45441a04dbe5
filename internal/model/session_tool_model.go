package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionTool struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name          string         `gorm:"type:varchar(100);not null"`
	Type          string         `gorm:"type:varchar(50);not null"`
	ApiUrl        string         `gorm:"type:varchar(1000)"`
	HttpMethod    string         `gorm:"type:varchar(10);default:'GET'"`
	Source        string         `gorm:"type:text"`
	Description   string         `gorm:"type:text"`
	ParamsDoc     string         `gorm:"type:text"`
	ReturnsDoc    string         `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (SessionTool) TableName() string {
	return "session_tools"
}
