package models

import "time"

type AIModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	ModelType    string `gorm:"size:50;not null;index"` // vision, speech, prediction
	Description  string `gorm:"type:text"`
	Accuracy     *float64
	Size         string    `gorm:"size:50"`
	FilePath     string    `gorm:"size:500"`
	IsPretrained bool      `gorm:"not null"`
	IsPublic     bool      `gorm:"not null"`
	OwnerID      *uint     `gorm:"index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (AIModel) TableName() string {
	return "ai_models"
}
