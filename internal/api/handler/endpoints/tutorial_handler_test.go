package endpoints

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
)

func TestTutorialHandler_ListAndComplete(t *testing.T) {
	router, db := newTestRouter(t, "dev")
	devUser(t, db)

	blink := models.Tutorial{Title: "Blink", Category: "iot", Content: "# Blink", Order: 1, IsPublished: true}
	draft := models.Tutorial{Title: "Draft", Category: "iot", IsPublished: false}
	require.NoError(t, db.Create(&blink).Error)
	require.NoError(t, db.Create(&draft).Error)

	w := doJSON(t, router, http.MethodGet, "/api/v1/tutorials?category=iot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]response.Tutorial](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Blink", list[0].Title)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tutorials/%d", blink.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Blink", decode[response.TutorialDetail](t, w).Content)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tutorials/%d", draft.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	completePath := fmt.Sprintf("/api/v1/tutorials/%d/complete", blink.ID)
	w = doJSON(t, router, http.MethodPost, completePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.TutorialCompletion{Status: "completed", XPEarned: 50}, decode[response.TutorialCompletion](t, w))

	w = doJSON(t, router, http.MethodPost, completePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.TutorialCompletion{Status: "already_completed", XPEarned: 0}, decode[response.TutorialCompletion](t, w))

	w = doJSON(t, router, http.MethodGet, "/api/v1/tutorials/progress/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[response.LearningProgress](t, w)
	assert.Equal(t, 1, progress.CompletedCount)
	assert.Equal(t, int64(1), progress.TotalCount)
	assert.InDelta(t, 100.0, progress.ProgressPercentage, 1e-9)
	assert.Equal(t, []uint{blink.ID}, progress.CompletedTutorialIDs)
}

func TestTutorialHandler_PublicListingWithoutToken(t *testing.T) {
	router, _ := newTestRouter(t, "prod")

	w := doJSON(t, router, http.MethodGet, "/api/v1/tutorials", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]response.Tutorial](t, w))

	w = doJSON(t, router, http.MethodGet, "/api/v1/tutorials/progress/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
