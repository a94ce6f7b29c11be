package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
	"iotplatform/internal/gen"
)

const (
	DefaultProjectPageSize = 50
	MaxProjectPageSize     = 200
)

type ProjectService struct {
	projectRepo *repo.ProjectRepository
	codeService *CodeService
	logger      zerolog.Logger
}

func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repo.NewProjectRepository(),
		codeService: NewCodeService(),
		logger:      iotplatform.Logger,
	}
}

// FindAllForOwner returns one page of the owner's projects
func (slf *ProjectService) FindAllForOwner(ownerID uint, skip, limit int) ([]models.Project, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultProjectPageSize
	}
	if limit > MaxProjectPageSize {
		limit = MaxProjectPageSize
	}

	projects, err := slf.projectRepo.FindByOwner(ownerID, skip, limit)
	if err != nil {
		slf.logger.Error().Err(err).Uint("ownerId", ownerID).Msg("Error listing projects")
		return nil, err
	}
	return projects, nil
}

// FindVisible returns a project the user owns or that is public
func (slf *ProjectService) FindVisible(id, userID uint) (*models.Project, error) {
	project, err := slf.projectRepo.FindVisible(id, userID)
	if err != nil {
		return nil, slf.notFound(err, id, "Error getting project")
	}
	return &project, nil
}

func (slf *ProjectService) Create(project models.Project, ownerID uint) (*models.Project, error) {
	project.OwnerID = ownerID
	if project.Language == "" {
		project.Language = string(gen.DefaultLanguage)
	}
	if err := slf.projectRepo.Create(&project); err != nil {
		slf.logger.Error().Err(err).Uint("ownerId", ownerID).Msg("Error creating project")
		return nil, err
	}
	slf.logger.Info().Uint("projectId", project.ID).Uint("ownerId", ownerID).Msg("Project created")
	return &project, nil
}

// Update applies patch to a project the user owns
func (slf *ProjectService) Update(id, ownerID uint, patch func(*models.Project)) (*models.Project, error) {
	project, err := slf.projectRepo.FindOwned(id, ownerID)
	if err != nil {
		return nil, slf.notFound(err, id, "Error getting project for update")
	}

	patch(&project)
	if err := slf.projectRepo.Update(&project); err != nil {
		slf.logger.Error().Err(err).Uint("projectId", id).Msg("Error updating project")
		return nil, err
	}
	return &project, nil
}

func (slf *ProjectService) Delete(id, ownerID uint) error {
	if _, err := slf.projectRepo.FindOwned(id, ownerID); err != nil {
		return slf.notFound(err, id, "Error getting project for delete")
	}
	if err := slf.projectRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("projectId", id).Msg("Error deleting project")
		return err
	}
	slf.logger.Info().Uint("projectId", id).Msg("Project deleted")
	return nil
}

// Duplicate copies a visible project into the user's workspace
func (slf *ProjectService) Duplicate(id, userID uint) (*models.Project, error) {
	original, err := slf.projectRepo.FindVisible(id, userID)
	if err != nil {
		return nil, slf.notFound(err, id, "Error getting project to duplicate")
	}

	tags := append([]string{}, original.Tags...)
	copied := models.Project{
		Name:        original.Name + " (Copy)",
		Description: original.Description,
		Blocks:      original.Blocks,
		Language:    original.Language,
		Tags:        tags,
		OwnerID:     userID,
	}
	if err := slf.projectRepo.Create(&copied); err != nil {
		slf.logger.Error().Err(err).Uint("projectId", id).Msg("Error duplicating project")
		return nil, err
	}
	return &copied, nil
}

// Generate regenerates code from the stored blocks of an owned project and stores it.
// An empty lang keeps the project's language.
func (slf *ProjectService) Generate(ctx context.Context, id, ownerID uint, lang gen.Language, targetDevice string) (*models.Project, gen.Result, error) {
	project, err := slf.projectRepo.FindOwned(id, ownerID)
	if err != nil {
		return nil, gen.Result{}, slf.notFound(err, id, "Error getting project to generate")
	}

	if lang == "" {
		lang, err = gen.ParseLanguage(project.Language)
		if err != nil {
			return nil, gen.Result{}, err
		}
	}

	result, err := slf.codeService.Generate(ctx, gen.Request{Document: project.Blocks, Language: lang, TargetDevice: targetDevice})
	if err != nil {
		return nil, gen.Result{}, err
	}

	if err := slf.projectRepo.UpdateGeneratedCode(project.ID, lang.String(), result.Code); err != nil {
		slf.logger.Error().Err(err).Uint("projectId", id).Msg("Error storing generated code")
		return nil, gen.Result{}, err
	}
	project.GeneratedCode = result.Code
	project.Language = lang.String()
	return &project, result, nil
}

func (slf *ProjectService) notFound(err error, id uint, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProjectNotFound
	}
	slf.logger.Error().Err(err).Uint("projectId", id).Msg(msg)
	return err
}
