package models

import "time"

type Tutorial struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"not null"`
	Description     string `gorm:"type:text"`
	Content         string `gorm:"type:text"`
	Thumbnail       string `gorm:"size:500"`
	Difficulty      string `gorm:"size:20;default:beginner"`
	Category        string `gorm:"size:50;not null;index"`
	DurationMinutes int    `gorm:"default:15"`
	// Order is quoted by gorm, it is a reserved word in SQL
	Order       int       `gorm:"column:order;default:0"`
	IsPublished bool      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Tutorial) TableName() string {
	return "tutorials"
}

type UserProgress struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_user_tutorial"`
	TutorialID  uint `gorm:"not null;uniqueIndex:idx_user_tutorial"`
	Completed   bool `gorm:"default:false"`
	CompletedAt *time.Time
	XPEarned    int `gorm:"column:xp_earned;default:0"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// All returns every persisted model, in migration order
func All() []any {
	return []any{
		&User{},
		&Project{},
		&Device{},
		&SensorData{},
		&AIModel{},
		&Tutorial{},
		&UserProgress{},
	}
}
