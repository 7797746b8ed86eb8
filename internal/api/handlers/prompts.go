package handlers

import (
	"context"
	"net/http"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/logger"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PromptGenerator is the generation service used by the JSON API
type PromptGenerator interface {
	Generate(ctx context.Context, idea string, cfg models.Configuration) (*models.GeneratedResult, error)
}

type PromptHandler struct {
	generator PromptGenerator
}

func NewPromptHandler(generator PromptGenerator) *PromptHandler {
	return &PromptHandler{generator: generator}
}

type GeneratePromptRequest struct {
	Idea          string                `json:"idea" binding:"required"`
	Configuration *ConfigurationRequest `json:"configuration"`
}

// ConfigurationRequest uses plain strings so unknown values reach ParseTone/ParseFormat.
// Omitted fields take their defaults.
type ConfigurationRequest struct {
	Tone             string `json:"tone"`
	Format           string `json:"format"`
	IncludeReasoning *bool  `json:"includeReasoning"`
}

type GeneratePromptResponse struct {
	RequestID string                  `json:"request_id"`
	Result    *models.GeneratedResult `json:"result"`
}

// configuration resolves the request configuration against the defaults
func (r *GeneratePromptRequest) configuration() (models.Configuration, error) {
	cfg := models.DefaultConfiguration()
	if r.Configuration == nil {
		return cfg, nil
	}

	if r.Configuration.Tone != "" {
		tone, err := models.ParseTone(r.Configuration.Tone)
		if err != nil {
			return cfg, err
		}
		cfg.Tone = tone
	}
	if r.Configuration.Format != "" {
		format, err := models.ParseFormat(r.Configuration.Format)
		if err != nil {
			return cfg, err
		}
		cfg.Format = format
	}
	if r.Configuration.IncludeReasoning != nil {
		cfg.IncludeReasoning = *r.Configuration.IncludeReasoning
	}
	return cfg, nil
}

// Generate handles POST /api/v1/prompts/generate
func (h *PromptHandler) Generate(c *gin.Context) {
	var req GeneratePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err.Error())
		return
	}

	if models.IsBlank(req.Idea) {
		h.invalid(c, models.ErrBlankIdea.Error())
		return
	}

	cfg, err := req.configuration()
	if err != nil {
		h.invalid(c, err.Error())
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.Idea, cfg)
	if err != nil {
		fields := logger.WithContext(c)
		fields["error_kind"] = string(services.KindOf(err))
		logger.Warn("Prompt generation failed: "+err.Error(), fields)

		kind := services.KindOf(err)
		if kind == "" {
			kind = "internal"
		}
		c.JSON(services.HTTPStatus(err), gin.H{
			"error":      err.Error(),
			"kind":       kind,
			"request_id": c.GetString("request_id"),
		})
		return
	}

	c.JSON(http.StatusOK, GeneratePromptResponse{
		RequestID: c.GetString("request_id"),
		Result:    result,
	})
}

func (h *PromptHandler) invalid(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      message,
		"kind":       services.KindInvalidInput,
		"request_id": c.GetString("request_id"),
	})
}

type OptionsResponse struct {
	Tones    []models.Tone        `json:"tones"`
	Formats  []models.Format      `json:"formats"`
	Defaults models.Configuration `json:"defaults"`
	Examples []models.ExampleIdea `json:"examples"`
}

// Options handles GET /api/v1/prompts/options
func (h *PromptHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Tones:    models.Tones,
		Formats:  models.Formats,
		Defaults: models.DefaultConfiguration(),
		Examples: models.ExampleIdeas(),
	})
}
