package endpoints

import (
	"errors"
	"net/http"

	"iotplatform"
	"iotplatform/internal/api/handler/mapper"
	"iotplatform/internal/api/handler/middleware"
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/service"
	"iotplatform/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type aiModelHandler struct {
	modelService *service.AIModelService
	modelMapper  mapper.AIModelMapper
	config       iotplatform.AppConfig
	logger       zerolog.Logger
}

func newAIModelHandler() *aiModelHandler {
	return &aiModelHandler{
		modelService: service.NewAIModelService(),
		modelMapper:  mapper.NewAIModelMapper(),
		config:       iotplatform.GetConfig(),
		logger:       iotplatform.Logger,
	}
}

func AIModelHandler(router *graceful.Graceful) {
	newAIModelHandler().register(router)
}

// register exposes the catalogue publicly; only creating a model needs a user
func (slf *aiModelHandler) register(router gin.IRouter) {
	routes := router.Group("/api/v1/ai-models")
	{
		routes.GET("", slf.getAll)
		routes.GET("/:id", slf.getByID)
		routes.POST("/:id/test", slf.test)
		routes.POST("", middleware.AuthMiddleware(slf.config), slf.create)
	}
}

func (slf *aiModelHandler) getAll(c *gin.Context) {
	list, err := slf.modelService.FindPublic(c.Query("model_type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve models"})
		return
	}
	c.JSON(http.StatusOK, slf.modelMapper.ToAIModelResponses(list))
}

func (slf *aiModelHandler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	model, err := slf.modelService.FindByID(id)
	if err != nil {
		slf.writeError(c, err, "Failed to retrieve model")
		return
	}
	c.JSON(http.StatusOK, slf.modelMapper.ToAIModelResponse(*model))
}

func (slf *aiModelHandler) create(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	var req request.CreateAIModel
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	model, err := slf.modelService.Create(slf.modelMapper.CreateAIModel(req), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create model"})
		return
	}
	c.JSON(http.StatusCreated, slf.modelMapper.ToAIModelResponse(*model))
}

func (slf *aiModelHandler) test(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := slf.modelService.Test(id)
	if err != nil {
		slf.writeError(c, err, "Failed to test model")
		return
	}
	c.JSON(http.StatusOK, response.AIModelTest{
		Model:      result.Model,
		Status:     result.Status,
		Result:     result.Result,
		Confidence: result.Confidence,
	})
}

func (slf *aiModelHandler) writeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrModelNotFound) {
		c.JSON(http.StatusNotFound, response.APIError{Message: "Model not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, response.APIError{Message: msg})
}
