package endpoints

import (
	"errors"
	"net/http"

	"iotplatform"
	"iotplatform/internal/api/handler/mapper"
	"iotplatform/internal/api/handler/middleware"
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/service"
	"iotplatform/internal/gen"
	"iotplatform/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type projectHandler struct {
	projectService *service.ProjectService
	projectMapper  mapper.ProjectMapper
	config         iotplatform.AppConfig
	logger         zerolog.Logger
}

func newProjectHandler() *projectHandler {
	return &projectHandler{
		projectService: service.NewProjectService(),
		projectMapper:  mapper.NewProjectMapper(),
		config:         iotplatform.GetConfig(),
		logger:         iotplatform.Logger,
	}
}

func ProjectHandler(router *graceful.Graceful) {
	newProjectHandler().register(router)
}

func (slf *projectHandler) register(router gin.IRouter) {
	routes := router.Group("/api/v1/projects")
	routes.Use(middleware.AuthMiddleware(slf.config))
	{
		routes.GET("", slf.getAll)
		routes.POST("", slf.create)
		routes.GET("/:id", slf.getByID)
		routes.PUT("/:id", slf.update)
		routes.DELETE("/:id", slf.delete)
		routes.POST("/:id/duplicate", slf.duplicate)
		routes.POST("/:id/generate", slf.generate)
	}
}

// getAll returns one page of the current user's projects
func (slf *projectHandler) getAll(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", service.DefaultProjectPageSize)

	projects, err := slf.projectService.FindAllForOwner(userID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve projects"})
		return
	}
	c.JSON(http.StatusOK, slf.projectMapper.ToProjectResponses(projects))
}

func (slf *projectHandler) create(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	var req request.CreateProject
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Debug().Err(err).Msg("Failed to parse create project request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	created, err := slf.projectService.Create(slf.projectMapper.CreateProject(req), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, slf.projectMapper.ToProjectResponse(*created))
}

// getByID returns a project the user owns or that is public
func (slf *projectHandler) getByID(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := slf.projectService.FindVisible(id, userID)
	if err != nil {
		slf.writeError(c, err, "Failed to retrieve project")
		return
	}
	c.JSON(http.StatusOK, slf.projectMapper.ToProjectResponse(*project))
}

func (slf *projectHandler) update(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.UpdateProject
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	updated, err := slf.projectService.Update(id, userID, func(p *models.Project) {
		slf.projectMapper.PatchProject(req, p)
	})
	if err != nil {
		slf.writeError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, slf.projectMapper.ToProjectResponse(*updated))
}

func (slf *projectHandler) delete(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := slf.projectService.Delete(id, userID); err != nil {
		slf.writeError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

func (slf *projectHandler) duplicate(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	copied, err := slf.projectService.Duplicate(id, userID)
	if err != nil {
		slf.writeError(c, err, "Failed to duplicate project")
		return
	}
	c.JSON(http.StatusCreated, slf.projectMapper.ToProjectResponse(*copied))
}

// generate regenerates the stored code of a project from its blocks.
// The body is optional; without it the project's own language is used.
func (slf *projectHandler) generate(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.GenerateProject
	if c.Request.ContentLength > 0 {
		if err := pkg.ParseAndValidate(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
			return
		}
	}

	var lang gen.Language
	if req.Language != "" {
		lang = gen.Language(req.Language)
	}

	project, _, err := slf.projectService.Generate(c.Request.Context(), id, userID, lang, pkg.ValueOr(req.TargetDevice, ""))
	if err != nil {
		slf.writeError(c, err, "Failed to generate project code")
		return
	}
	c.JSON(http.StatusOK, slf.projectMapper.ToProjectResponse(*project))
}

func (slf *projectHandler) writeError(c *gin.Context, err error, msg string) {
	var genErr *gen.GenerationError
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: "Project not found"})
	case errors.As(err, &genErr), errors.Is(err, gen.ErrUnsupportedLanguage):
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Code generation failed: " + err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.APIError{Message: msg})
	}
}
