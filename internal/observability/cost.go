package observability

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/llm"
)

// Pricing constants
const (
	tokensPerMillion    = 1_000_000.0
	costFormatPrecision = 6

	// Gemini 2.5 Flash pricing
	gemini25FlashInputPrice  = 0.30
	gemini25FlashOutputPrice = 2.50

	// Gemini 2.5 Flash-Lite pricing
	gemini25FlashLiteInputPrice  = 0.10
	gemini25FlashLiteOutputPrice = 0.40

	// Gemini 2.5 Pro pricing
	gemini25ProInputPrice  = 1.25
	gemini25ProOutputPrice = 10.00

	// GPT-4.1-mini pricing
	gpt41MiniInputPrice  = 0.40
	gpt41MiniOutputPrice = 1.60

	// GPT-4o-mini pricing
	gpt4oMiniInputPrice  = 0.15
	gpt4oMiniOutputPrice = 0.60

	defaultModel = "gemini-2.5-flash"
)

// ModelPricing contains pricing information per 1M tokens
type ModelPricing struct {
	InputPricePer1M  float64 // Price per 1M input tokens in USD
	OutputPricePer1M float64 // Price per 1M output tokens in USD
}

// PricingTable contains pricing for all models
var PricingTable = map[string]ModelPricing{
	"gemini-2.5-flash": {
		InputPricePer1M:  gemini25FlashInputPrice,
		OutputPricePer1M: gemini25FlashOutputPrice,
	},
	"gemini-2.5-flash-lite": {
		InputPricePer1M:  gemini25FlashLiteInputPrice,
		OutputPricePer1M: gemini25FlashLiteOutputPrice,
	},
	"gemini-2.5-pro": {
		InputPricePer1M:  gemini25ProInputPrice,
		OutputPricePer1M: gemini25ProOutputPrice,
	},
	"gpt-4.1-mini": {
		InputPricePer1M:  gpt41MiniInputPrice,
		OutputPricePer1M: gpt41MiniOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1M:  gpt4oMiniInputPrice,
		OutputPricePer1M: gpt4oMiniOutputPrice,
	},
}

// LookupPricing returns pricing for a model, matching versioned ids by prefix
func LookupPricing(model string) ModelPricing {
	if pricing, ok := PricingTable[model]; ok {
		return pricing
	}

	// "gemini-2.5-flash-preview-05-20" prices like "gemini-2.5-flash"; the longest prefix wins
	best := ""
	for name := range PricingTable {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return PricingTable[best]
	}

	// Default to Gemini Flash pricing if model not found
	return PricingTable[defaultModel]
}

// CalculateCost calculates the cost in USD for one generation call
func CalculateCost(model string, usage llm.TokenUsage) float64 {
	pricing := LookupPricing(model)

	inputCost := (float64(usage.InputTokens) / tokensPerMillion) * pricing.InputPricePer1M
	outputCost := (float64(usage.OutputTokens) / tokensPerMillion) * pricing.OutputPricePer1M

	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + formatFloat(cost, costFormatPrecision)
}

// formatFloat formats a float with specified precision using strconv
func formatFloat(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
