package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotplatform/internal/api/models"
	"iotplatform/pkg"
)

func TestAIModelService_CreateIsPublicUserModel(t *testing.T) {
	setupTestDB(t)
	svc := NewAIModelService()

	created, err := svc.Create(models.AIModel{
		Name:         "Cats",
		ModelType:    "vision",
		IsPretrained: true,
		IsPublic:     false,
		Accuracy:     pkg.ToPtr(0.8),
	}, 7)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.OwnerID)
	assert.Equal(t, uint(7), *created.OwnerID)
	assert.False(t, created.IsPretrained)
	assert.True(t, created.IsPublic)

	listed, err := svc.FindPublic("vision")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Cats", listed[0].Name)
	assert.False(t, listed[0].IsPretrained)
}

func TestAIModelService_FindPublicFilters(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.AIModel{Name: "Speech", ModelType: "speech", IsPretrained: true, IsPublic: true}).Error)
	require.NoError(t, db.Create(&models.AIModel{Name: "Private", ModelType: "speech", IsPublic: false}).Error)
	require.NoError(t, db.Create(&models.AIModel{Name: "Faces", ModelType: "vision", IsPretrained: true, IsPublic: true}).Error)

	svc := NewAIModelService()

	all, err := svc.FindPublic("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	speech, err := svc.FindPublic("speech")
	require.NoError(t, err)
	require.Len(t, speech, 1)
	assert.Equal(t, "Speech", speech[0].Name)
}

func TestAIModelService_Test(t *testing.T) {
	db := setupTestDB(t)
	model := models.AIModel{Name: "Faces", ModelType: "vision", IsPretrained: true, IsPublic: true}
	require.NoError(t, db.Create(&model).Error)

	svc := NewAIModelService()

	result, err := svc.Test(model.ID)
	require.NoError(t, err)
	assert.Equal(t, "Faces", result.Model)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "Test prediction: sample_class", result.Result)
	assert.Equal(t, 0.95, result.Confidence)

	_, err = svc.Test(model.ID + 1)
	assert.ErrorIs(t, err, ErrModelNotFound)
}
