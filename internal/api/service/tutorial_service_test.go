package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"iotplatform/internal/api/models"
)

func createTutorial(t *testing.T, db *gorm.DB, title, category string, order int, published bool) models.Tutorial {
	t.Helper()
	tutorial := models.Tutorial{Title: title, Category: category, Difficulty: "beginner", Order: order, IsPublished: published}
	require.NoError(t, db.Create(&tutorial).Error)
	return tutorial
}

func TestTutorialService_FindPublished(t *testing.T) {
	db := setupTestDB(t)
	second := createTutorial(t, db, "Sensors", "iot", 2, true)
	first := createTutorial(t, db, "Blink", "iot", 1, true)
	createTutorial(t, db, "Draft", "iot", 0, false)
	ai := createTutorial(t, db, "Vision", "ai", 1, true)

	svc := NewTutorialService()

	all, err := svc.FindPublished("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	iot, err := svc.FindPublished("iot", "")
	require.NoError(t, err)
	require.Len(t, iot, 2)
	assert.Equal(t, first.ID, iot[0].ID)
	assert.Equal(t, second.ID, iot[1].ID)

	none, err := svc.FindPublished("ai", "advanced")
	require.NoError(t, err)
	assert.Empty(t, none)

	got, err := svc.FindPublishedByID(ai.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vision", got.Title)
}

func TestTutorialService_DraftIsHidden(t *testing.T) {
	db := setupTestDB(t)
	draft := createTutorial(t, db, "Draft", "iot", 0, false)

	_, err := NewTutorialService().FindPublishedByID(draft.ID)
	assert.ErrorIs(t, err, ErrTutorialNotFound)
}

func TestTutorialService_CompleteAwardsXPOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "ada@example.com")
	tutorial := createTutorial(t, db, "Blink", "iot", 1, true)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc := NewTutorialService()
	svc.now = fixedClock(now)

	first, err := svc.Complete(user.ID, tutorial.ID)
	require.NoError(t, err)
	assert.Equal(t, CompletionStatusCompleted, first.Status)
	assert.Equal(t, TutorialXP, first.XPEarned)

	again, err := svc.Complete(user.ID, tutorial.ID)
	require.NoError(t, err)
	assert.Equal(t, CompletionStatusAlreadyCompleted, again.Status)
	assert.Zero(t, again.XPEarned)

	var rows []models.UserProgress
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
	assert.Equal(t, TutorialXP, rows[0].XPEarned)
	require.NotNil(t, rows[0].CompletedAt)
	assert.True(t, rows[0].CompletedAt.Equal(now))
}

func TestTutorialService_CompleteUnknownTutorial(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "ada@example.com")

	_, err := NewTutorialService().Complete(user.ID, 404)
	assert.ErrorIs(t, err, ErrTutorialNotFound)
}

func TestTutorialService_Progress(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "ada@example.com")
	other := createUser(t, db, "grace@example.com")
	a := createTutorial(t, db, "Blink", "iot", 1, true)
	b := createTutorial(t, db, "Sensors", "iot", 2, true)
	createTutorial(t, db, "Vision", "ai", 1, true)
	createTutorial(t, db, "Vision", "ai", 1, true)

	svc := NewTutorialService()
	_, err := svc.Complete(user.ID, b.ID)
	require.NoError(t, err)
	_, err = svc.Complete(user.ID, a.ID)
	require.NoError(t, err)
	_, err = svc.Complete(other.ID, a.ID)
	require.NoError(t, err)

	progress, err := svc.Progress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.CompletedCount)
	assert.Equal(t, int64(4), progress.TotalCount)
	assert.InDelta(t, 50.0, progress.ProgressPercentage, 1e-9)
	assert.Equal(t, 2*TutorialXP, progress.TotalXP)
	assert.Equal(t, []uint{a.ID, b.ID}, progress.CompletedTutorialIDs)
}

func TestTutorialService_ProgressWithoutTutorials(t *testing.T) {
	setupTestDB(t)

	progress, err := NewTutorialService().Progress(1)
	require.NoError(t, err)
	assert.Zero(t, progress.CompletedCount)
	assert.Zero(t, progress.ProgressPercentage)
	assert.Empty(t, progress.CompletedTutorialIDs)
}
