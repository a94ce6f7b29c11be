package mapper

import (
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
)

type AIModelMapper interface {
	CreateAIModel(req request.CreateAIModel) models.AIModel

	ToAIModelResponses(entities []models.AIModel) []response.AIModel
	ToAIModelResponse(m models.AIModel) response.AIModel
}

// AIModelMapperImpl implements AIModelMapper
type AIModelMapperImpl struct{}

func NewAIModelMapper() AIModelMapper {
	return &AIModelMapperImpl{}
}

func (m AIModelMapperImpl) CreateAIModel(req request.CreateAIModel) models.AIModel {
	return models.AIModel{
		Name:        req.Name,
		ModelType:   req.ModelType,
		Description: req.Description,
	}
}

func (m AIModelMapperImpl) ToAIModelResponses(entities []models.AIModel) []response.AIModel {
	responses := make([]response.AIModel, len(entities))
	for i, e := range entities {
		responses[i] = m.ToAIModelResponse(e)
	}
	return responses
}

func (m AIModelMapperImpl) ToAIModelResponse(mo models.AIModel) response.AIModel {
	return response.AIModel{
		ID:           mo.ID,
		Name:         mo.Name,
		ModelType:    mo.ModelType,
		Description:  mo.Description,
		Accuracy:     mo.Accuracy,
		Size:         mo.Size,
		IsPretrained: mo.IsPretrained,
		CreatedAt:    mo.CreatedAt,
	}
}
