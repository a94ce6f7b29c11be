package service

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"iotplatform"
	"iotplatform/internal/gen"
	"iotplatform/pkg"
)

const codeCachePrefix = "code:"

// CodeService fronts the block generator with a result cache
type CodeService struct {
	generator *gen.Generator
	cache     *pkg.Cache
	cacheTTL  time.Duration
	logger    zerolog.Logger
}

func NewCodeService() *CodeService {
	generator := gen.NewGenerator()
	generator.Logger = iotplatform.Logger
	return &CodeService{
		generator: generator,
		cache:     pkg.NewCache(iotplatform.Redis, codeCachePrefix),
		cacheTTL:  iotplatform.GetConfig().RedisConfig.CodeTTL,
		logger:    iotplatform.Logger,
	}
}

// ResolveLanguage maps a request value to a generation target, defaulting to python
func ResolveLanguage(raw string) (gen.Language, error) {
	return gen.ParseLanguage(raw)
}

// Generate returns the program for req, from cache when an identical request was served before
func (slf *CodeService) Generate(ctx context.Context, req gen.Request) (gen.Result, error) {
	key := requestKey(req)

	var cached gen.Result
	err := slf.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		slf.logger.Debug().Str("key", key).Msg("Generated code served from cache")
		return cached, nil
	case !pkg.IsRedisNil(err):
		slf.logger.Warn().Err(err).Msg("Code cache read failed")
	}

	result, err := slf.generator.Generate(req)
	if err != nil {
		var genErr *gen.GenerationError
		if errors.As(err, &genErr) {
			slf.logger.Info().Err(err).Str("blockType", string(genErr.BlockType)).Str("language", req.Language.String()).Msg("Code generation failed")
		}
		return gen.Result{}, err
	}

	if slf.cacheTTL > 0 {
		if err := slf.cache.Set(ctx, key, result, slf.cacheTTL); err != nil {
			slf.logger.Warn().Err(err).Msg("Code cache write failed")
		}
	}
	return result, nil
}

// Validate generates req and checks the result, reporting every failure in the result
func (slf *CodeService) Validate(req gen.Request) gen.ValidationResult {
	return slf.generator.ValidateRequest(req)
}

// Check validates code the caller already has
func (slf *CodeService) Check(code string, lang gen.Language) gen.ValidationResult {
	report := gen.Validate(code, lang)
	errs := []string{}
	if !report.Valid {
		errs = append(errs, gen.ErrorSyntax)
		errs = append(errs, report.Diagnostics...)
	}
	return gen.ValidationResult{Valid: report.Valid, Warnings: []string{}, Errors: errs}
}

// Templates lists the catalogue
func (slf *CodeService) Templates() []TemplateSummary {
	names := gen.TemplateNames()
	out := make([]TemplateSummary, 0, len(names))
	for _, name := range names {
		langs, err := gen.TemplateLanguages(name)
		if err != nil || len(langs) == 0 {
			continue
		}
		summary := TemplateSummary{Name: name, Languages: langs}
		if tmpl, err := gen.LookupTemplate(name, langs[0]); err == nil {
			summary.Title = tmpl.Title
			summary.Description = tmpl.Description
		}
		out = append(out, summary)
	}
	return out
}

// Template returns one catalogue entry in one language
func (slf *CodeService) Template(name string, lang gen.Language) (gen.CodeTemplate, error) {
	return gen.LookupTemplate(name, lang)
}

// TemplateSummary describes a catalogue entry without its code
type TemplateSummary struct {
	Name        string
	Title       string
	Description string
	Languages   []gen.Language
}

func requestKey(req gen.Request) string {
	h := xxh3.New()
	_, _ = h.WriteString(req.Language.String())
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(req.TargetDevice)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(req.Document)
	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:])
}
