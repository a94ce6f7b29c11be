package mapper

import (
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
)

type ProjectMapper interface {
	CreateProject(req request.CreateProject) models.Project

	// --update
	PatchProject(req request.UpdateProject, project *models.Project)

	ToProjectResponses(entities []models.Project) []response.Project
	ToProjectResponse(p models.Project) response.Project
}

// ProjectMapperImpl implements ProjectMapper
type ProjectMapperImpl struct{}

func NewProjectMapper() ProjectMapper {
	return &ProjectMapperImpl{}
}

func (m ProjectMapperImpl) CreateProject(req request.CreateProject) models.Project {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Project{
		Name:        req.Name,
		Description: req.Description,
		Blocks:      req.Blocks,
		Language:    req.Language,
		Tags:        tags,
	}
}

func (m ProjectMapperImpl) PatchProject(req request.UpdateProject, project *models.Project) {
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Blocks != nil {
		project.Blocks = *req.Blocks
	}
	if req.Language != nil {
		project.Language = *req.Language
	}
	if req.Thumbnail != nil {
		project.Thumbnail = *req.Thumbnail
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}
	if req.IsPublic != nil {
		project.IsPublic = *req.IsPublic
	}
}

func (m ProjectMapperImpl) ToProjectResponses(entities []models.Project) []response.Project {
	responses := make([]response.Project, len(entities))
	for i, e := range entities {
		responses[i] = m.ToProjectResponse(e)
	}
	return responses
}

func (m ProjectMapperImpl) ToProjectResponse(p models.Project) response.Project {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return response.Project{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Blocks:        p.Blocks,
		GeneratedCode: p.GeneratedCode,
		Language:      p.Language,
		Thumbnail:     p.Thumbnail,
		Tags:          tags,
		IsPublic:      p.IsPublic,
		OwnerID:       p.OwnerID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
