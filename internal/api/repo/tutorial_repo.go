package repo

import (
	"iotplatform"
	"iotplatform/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TutorialRepository struct {
	Db *gorm.DB
}

func NewTutorialRepository() *TutorialRepository {
	return &TutorialRepository{Db: iotplatform.DB}
}

// FindPublished lists published tutorials in curriculum order
func (slf *TutorialRepository) FindPublished(category, difficulty string) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial
	query := slf.Db.Where("is_published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).Order("id").Find(&tutorials).Error
	return tutorials, err
}

func (slf *TutorialRepository) FindPublishedByID(id uint) (models.Tutorial, error) {
	var tutorial models.Tutorial
	err := slf.Db.Where("id = ? AND is_published = ?", id, true).First(&tutorial).Error
	return tutorial, err
}

func (slf *TutorialRepository) FindByID(id uint) (models.Tutorial, error) {
	var tutorial models.Tutorial
	err := slf.Db.First(&tutorial, id).Error
	return tutorial, err
}

func (slf *TutorialRepository) CountPublished() (int64, error) {
	var count int64
	err := slf.Db.Model(&models.Tutorial{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}

func (slf *TutorialRepository) Create(tutorial *models.Tutorial) error {
	return slf.Db.Create(tutorial).Error
}

func (slf *TutorialRepository) FindProgress(userID, tutorialID uint) (models.UserProgress, error) {
	var progress models.UserProgress
	err := slf.Db.Where("user_id = ? AND tutorial_id = ?", userID, tutorialID).First(&progress).Error
	return progress, err
}

func (slf *TutorialRepository) SaveProgress(progress *models.UserProgress) error {
	return slf.Db.Save(progress).Error
}

// CompletedProgress returns the user's completed entries ordered by tutorial
func (slf *TutorialRepository) CompletedProgress(userID uint) ([]models.UserProgress, error) {
	var progress []models.UserProgress
	err := slf.Db.Where("user_id = ? AND completed = ?", userID, true).Order("tutorial_id").Find(&progress).Error
	return progress, err
}
