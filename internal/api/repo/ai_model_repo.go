package repo

import (
	"iotplatform"
	"iotplatform/internal/api/models"

	"gorm.io/gorm"
)

type AIModelRepository struct {
	Db *gorm.DB
}

func NewAIModelRepository() *AIModelRepository {
	return &AIModelRepository{Db: iotplatform.DB}
}

// FindPublic lists public models, newest first, optionally restricted to one model type
func (slf *AIModelRepository) FindPublic(modelType string) ([]models.AIModel, error) {
	var list []models.AIModel
	query := slf.Db.Where("is_public = ?", true)
	if modelType != "" {
		query = query.Where("model_type = ?", modelType)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&list).Error
	return list, err
}

func (slf *AIModelRepository) FindByID(id uint) (models.AIModel, error) {
	var model models.AIModel
	err := slf.Db.First(&model, id).Error
	return model, err
}

func (slf *AIModelRepository) Create(model *models.AIModel) error {
	return slf.Db.Create(model).Error
}
