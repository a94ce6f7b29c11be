package endpoints

import (
	"errors"
	"net/http"

	"iotplatform"
	"iotplatform/internal/api/handler/mapper"
	"iotplatform/internal/api/handler/middleware"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/service"
	"iotplatform/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type tutorialHandler struct {
	tutorialService *service.TutorialService
	config          iotplatform.AppConfig
	logger          zerolog.Logger
}

func newTutorialHandler() *tutorialHandler {
	return &tutorialHandler{
		tutorialService: service.NewTutorialService(),
		config:          iotplatform.GetConfig(),
		logger:          iotplatform.Logger,
	}
}

func TutorialHandler(router *graceful.Graceful) {
	newTutorialHandler().register(router)
}

func (slf *tutorialHandler) register(router gin.IRouter) {
	auth := middleware.AuthMiddleware(slf.config)

	routes := router.Group("/api/v1/tutorials")
	{
		routes.GET("", slf.getAll)
		routes.GET("/progress/me", auth, slf.progress)
		routes.GET("/:id", slf.getByID)
		routes.POST("/:id/complete", auth, slf.complete)
	}
}

func (slf *tutorialHandler) getAll(c *gin.Context) {
	tutorials, err := slf.tutorialService.FindPublished(c.Query("category"), c.Query("difficulty"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve tutorials"})
		return
	}
	c.JSON(http.StatusOK, mapper.ToTutorialResponses(tutorials))
}

func (slf *tutorialHandler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tutorial, err := slf.tutorialService.FindPublishedByID(id)
	if err != nil {
		slf.writeError(c, err, "Failed to retrieve tutorial")
		return
	}
	c.JSON(http.StatusOK, mapper.ToTutorialDetail(*tutorial))
}

func (slf *tutorialHandler) complete(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	completion, err := slf.tutorialService.Complete(userID, id)
	if err != nil {
		slf.writeError(c, err, "Failed to complete tutorial")
		return
	}
	c.JSON(http.StatusOK, response.TutorialCompletion{Status: completion.Status, XPEarned: completion.XPEarned})
}

func (slf *tutorialHandler) progress(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	progress, err := slf.tutorialService.Progress(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve progress"})
		return
	}
	c.JSON(http.StatusOK, response.LearningProgress{
		CompletedCount:       progress.CompletedCount,
		TotalCount:           progress.TotalCount,
		ProgressPercentage:   progress.ProgressPercentage,
		TotalXP:              progress.TotalXP,
		CompletedTutorialIDs: progress.CompletedTutorialIDs,
	})
}

func (slf *tutorialHandler) writeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrTutorialNotFound) {
		c.JSON(http.StatusNotFound, response.APIError{Message: "Tutorial not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, response.APIError{Message: msg})
}
