package mapper

import (
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
)

func ToTutorialResponses(entities []models.Tutorial) []response.Tutorial {
	responses := make([]response.Tutorial, len(entities))
	for i, e := range entities {
		responses[i] = ToTutorialResponse(e)
	}
	return responses
}

func ToTutorialResponse(t models.Tutorial) response.Tutorial {
	return response.Tutorial{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Thumbnail:       t.Thumbnail,
		Difficulty:      t.Difficulty,
		Category:        t.Category,
		DurationMinutes: t.DurationMinutes,
	}
}

func ToTutorialDetail(t models.Tutorial) response.TutorialDetail {
	return response.TutorialDetail{
		Tutorial: ToTutorialResponse(t),
		Content:  t.Content,
	}
}
