package models

import "time"

type Project struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	Blocks        string    `gorm:"type:text"`
	GeneratedCode string    `gorm:"type:text"`
	Language      string    `gorm:"type:varchar(20);default:python"`
	Thumbnail     string    `gorm:"size:500"`
	Tags          []string  `gorm:"serializer:json;type:text"`
	IsPublic      bool      `gorm:"default:false"`
	OwnerID       uint      `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
