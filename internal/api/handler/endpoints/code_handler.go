package endpoints

import (
	"errors"
	"net/http"

	"iotplatform"
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/service"
	"iotplatform/internal/gen"
	"iotplatform/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type codeHandler struct {
	codeService *service.CodeService
	config      iotplatform.AppConfig
	logger      zerolog.Logger
}

func newCodeHandler() *codeHandler {
	return &codeHandler{
		codeService: service.NewCodeService(),
		config:      iotplatform.GetConfig(),
		logger:      iotplatform.Logger,
	}
}

func CodeHandler(router *graceful.Graceful) {
	newCodeHandler().register(router)
}

func (slf *codeHandler) register(router gin.IRouter) {
	routes := router.Group("/api/v1/code")
	{
		routes.POST("/generate", slf.generate)
		routes.POST("/validate", slf.validate)
		routes.POST("/check", slf.check)
		routes.GET("/templates", slf.templates)
		routes.GET("/templates/:name", slf.template)
	}
}

// generate turns a block document into source code
func (slf *codeHandler) generate(c *gin.Context) {
	var req request.GenerateCode
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	lang, err := service.ResolveLanguage(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Code generation failed: " + err.Error()})
		return
	}

	result, err := slf.codeService.Generate(c.Request.Context(), gen.Request{
		Document:     req.Blocks,
		Language:     lang,
		TargetDevice: pkg.ValueOr(req.TargetDevice, ""),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Code generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.GeneratedCode{
		Code:     result.Code,
		Language: result.Language.String(),
		Warnings: result.Warnings,
	})
}

// validate generates the document and reports whether the result is well-formed.
// Failures are part of the report, never an error status.
func (slf *codeHandler) validate(c *gin.Context) {
	var req request.GenerateCode
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	lang, err := service.ResolveLanguage(req.Language)
	if err != nil {
		c.JSON(http.StatusOK, response.CodeValidation{Valid: false, Warnings: []string{}, Errors: []string{err.Error()}})
		return
	}

	result := slf.codeService.Validate(gen.Request{
		Document:     req.Blocks,
		Language:     lang,
		TargetDevice: pkg.ValueOr(req.TargetDevice, ""),
	})
	c.JSON(http.StatusOK, toCodeValidation(result))
}

// check validates code the client already has
func (slf *codeHandler) check(c *gin.Context) {
	var req request.CheckCode
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	lang, err := service.ResolveLanguage(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toCodeValidation(slf.codeService.Check(req.Code, lang)))
}

func (slf *codeHandler) templates(c *gin.Context) {
	summaries := slf.codeService.Templates()
	out := make([]response.CodeTemplateSummary, len(summaries))
	for i, s := range summaries {
		langs := make([]string, len(s.Languages))
		for j, l := range s.Languages {
			langs[j] = l.String()
		}
		out[i] = response.CodeTemplateSummary{Name: s.Name, Title: s.Title, Description: s.Description, Languages: langs}
	}
	c.JSON(http.StatusOK, out)
}

// template returns one catalogue program. Any language string is accepted and
// reported as unavailable when the template has no such variant.
func (slf *codeHandler) template(c *gin.Context) {
	name := c.Param("name")
	lang := gen.Language(c.DefaultQuery("language", gen.DefaultLanguage.String()))

	tmpl, err := slf.codeService.Template(name, lang)
	switch {
	case errors.Is(err, gen.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: "Template not found"})
		return
	case errors.Is(err, gen.ErrTemplateLanguageUnavailable):
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	case err != nil:
		slf.logger.Error().Err(err).Str("template", name).Msg("Failed to load template")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to load template"})
		return
	}

	c.JSON(http.StatusOK, response.CodeTemplate{
		Template: tmpl.Name,
		Language: tmpl.Language.String(),
		Code:     tmpl.Code,
	})
}

func toCodeValidation(v gen.ValidationResult) response.CodeValidation {
	warnings := v.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	errs := v.Errors
	if errs == nil {
		errs = []string{}
	}
	return response.CodeValidation{Valid: v.Valid, Warnings: warnings, Errors: errs}
}
