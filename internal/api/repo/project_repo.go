package repo

import (
	"iotplatform"
	"iotplatform/internal/api/models"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	Db *gorm.DB
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{Db: iotplatform.DB}
}

// FindByOwner returns one page of the owner's projects, most recently updated first
func (slf *ProjectRepository) FindByOwner(ownerID uint, skip, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := slf.Db.Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FindOwned returns the project only when ownerID owns it
func (slf *ProjectRepository) FindOwned(id, ownerID uint) (models.Project, error) {
	var project models.Project
	err := slf.Db.Where("id = ? AND owner_id = ?", id, ownerID).First(&project).Error
	return project, err
}

// FindVisible returns the project when ownerID owns it or it is public
func (slf *ProjectRepository) FindVisible(id, userID uint) (models.Project, error) {
	var project models.Project
	err := slf.Db.Where("id = ? AND (owner_id = ? OR is_public = ?)", id, userID, true).First(&project).Error
	return project, err
}

func (slf *ProjectRepository) Create(project *models.Project) error {
	return slf.Db.Create(project).Error
}

func (slf *ProjectRepository) Update(project *models.Project) error {
	return slf.Db.Save(project).Error
}

// UpdateGeneratedCode stores freshly generated code without touching other columns
func (slf *ProjectRepository) UpdateGeneratedCode(id uint, language, code string) error {
	return slf.Db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{"generated_code": code, "language": language}).Error
}

func (slf *ProjectRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.Project{}, id).Error
}
