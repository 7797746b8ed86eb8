package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GeneratorStatus describes how the generator is wired
type GeneratorStatus interface {
	ProviderName() string
	Model() string
	HasCredential() bool
}

type HealthHandler struct {
	status GeneratorStatus
}

func NewHealthHandler(status GeneratorStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

// HealthCheck returns the health status of the API.
// A missing API key does not make the service unhealthy; generation reports it per call.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	llmStatus := "disabled"
	if h.status.HasCredential() {
		llmStatus = "enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"llm": gin.H{
			"status":   llmStatus,
			"provider": h.status.ProviderName(),
			"model":    h.status.Model(),
		},
	})
}
