package service

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
)

// ModelTestResult is the outcome of a trial prediction
type ModelTestResult struct {
	Model      string
	Status     string
	Result     string
	Confidence float64
}

type AIModelService struct {
	modelRepo *repo.AIModelRepository
	logger    zerolog.Logger
}

func NewAIModelService() *AIModelService {
	return &AIModelService{
		modelRepo: repo.NewAIModelRepository(),
		logger:    iotplatform.Logger,
	}
}

// FindPublic lists the public catalogue, optionally filtered by model type
func (slf *AIModelService) FindPublic(modelType string) ([]models.AIModel, error) {
	list, err := slf.modelRepo.FindPublic(modelType)
	if err != nil {
		slf.logger.Error().Err(err).Str("modelType", modelType).Msg("Error listing AI models")
		return nil, err
	}
	return list, nil
}

func (slf *AIModelService) FindByID(id uint) (*models.AIModel, error) {
	model, err := slf.modelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		slf.logger.Error().Err(err).Uint("modelId", id).Msg("Error getting AI model")
		return nil, err
	}
	return &model, nil
}

// Create stores a user-trained model. User models are listed publicly like the pretrained ones.
func (slf *AIModelService) Create(model models.AIModel, ownerID uint) (*models.AIModel, error) {
	model.OwnerID = &ownerID
	model.IsPretrained = false
	model.IsPublic = true

	if err := slf.modelRepo.Create(&model); err != nil {
		slf.logger.Error().Err(err).Uint("ownerId", ownerID).Msg("Error creating AI model")
		return nil, err
	}
	slf.logger.Info().Uint("modelId", model.ID).Str("modelType", model.ModelType).Msg("AI model created")
	return &model, nil
}

// Test runs a simulated prediction against the model
func (slf *AIModelService) Test(id uint) (*ModelTestResult, error) {
	model, err := slf.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &ModelTestResult{
		Model:      model.Name,
		Status:     "success",
		Result:     "Test prediction: sample_class",
		Confidence: 0.95,
	}, nil
}
