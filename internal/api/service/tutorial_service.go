package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
)

const (
	TutorialXP = 50

	CompletionStatusCompleted        = "completed"
	CompletionStatusAlreadyCompleted = "already_completed"
)

// Completion is the outcome of marking a tutorial complete
type Completion struct {
	Status   string
	XPEarned int
}

// Progress summarises a user's completed tutorials
type Progress struct {
	CompletedCount       int
	TotalCount           int64
	ProgressPercentage   float64
	TotalXP              int
	CompletedTutorialIDs []uint
}

type TutorialService struct {
	tutorialRepo *repo.TutorialRepository
	logger       zerolog.Logger
	now          func() time.Time
}

func NewTutorialService() *TutorialService {
	return &TutorialService{
		tutorialRepo: repo.NewTutorialRepository(),
		logger:       iotplatform.Logger,
		now:          time.Now,
	}
}

func (slf *TutorialService) FindPublished(category, difficulty string) ([]models.Tutorial, error) {
	tutorials, err := slf.tutorialRepo.FindPublished(category, difficulty)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing tutorials")
		return nil, err
	}
	return tutorials, nil
}

func (slf *TutorialService) FindPublishedByID(id uint) (*models.Tutorial, error) {
	tutorial, err := slf.tutorialRepo.FindPublishedByID(id)
	if err != nil {
		return nil, slf.notFound(err, id)
	}
	return &tutorial, nil
}

// Complete marks the tutorial complete for the user. XP is awarded only the first time.
func (slf *TutorialService) Complete(userID, tutorialID uint) (*Completion, error) {
	if _, err := slf.tutorialRepo.FindByID(tutorialID); err != nil {
		return nil, slf.notFound(err, tutorialID)
	}

	progress, err := slf.tutorialRepo.FindProgress(userID, tutorialID)
	switch {
	case err == nil:
		if progress.Completed {
			return &Completion{Status: CompletionStatusAlreadyCompleted, XPEarned: 0}, nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = models.UserProgress{UserID: userID, TutorialID: tutorialID}
	default:
		slf.logger.Error().Err(err).Uint("tutorialId", tutorialID).Msg("Error reading progress")
		return nil, err
	}

	now := slf.now().UTC()
	progress.Completed = true
	progress.CompletedAt = &now
	progress.XPEarned = TutorialXP
	if err := slf.tutorialRepo.SaveProgress(&progress); err != nil {
		slf.logger.Error().Err(err).Uint("tutorialId", tutorialID).Uint("userId", userID).Msg("Error saving progress")
		return nil, err
	}

	slf.logger.Info().Uint("tutorialId", tutorialID).Uint("userId", userID).Msg("Tutorial completed")
	return &Completion{Status: CompletionStatusCompleted, XPEarned: TutorialXP}, nil
}

func (slf *TutorialService) Progress(userID uint) (*Progress, error) {
	completed, err := slf.tutorialRepo.CompletedProgress(userID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error reading progress")
		return nil, err
	}
	total, err := slf.tutorialRepo.CountPublished()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error counting tutorials")
		return nil, err
	}

	out := &Progress{
		CompletedCount:       len(completed),
		TotalCount:           total,
		CompletedTutorialIDs: make([]uint, 0, len(completed)),
	}
	for _, p := range completed {
		out.TotalXP += p.XPEarned
		out.CompletedTutorialIDs = append(out.CompletedTutorialIDs, p.TutorialID)
	}
	if total > 0 {
		out.ProgressPercentage = float64(len(completed)) / float64(total) * 100
	}
	return out, nil
}

func (slf *TutorialService) notFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTutorialNotFound
	}
	slf.logger.Error().Err(err).Uint("tutorialId", id).Msg("Error getting tutorial")
	return err
}
