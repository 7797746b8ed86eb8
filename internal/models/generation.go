package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrBlankIdea is returned when the idea is empty or whitespace only
var ErrBlankIdea = errors.New("idea must not be blank")

// GenerationRequest pairs a raw idea with its configuration
type GenerationRequest struct {
	Idea          string        `json:"idea"`
	Configuration Configuration `json:"configuration"`
}

// NewGenerationRequest validates the idea and configuration.
// The idea is kept as typed; trimming only decides whether it is blank.
func NewGenerationRequest(idea string, cfg Configuration) (*GenerationRequest, error) {
	if IsBlank(idea) {
		return nil, ErrBlankIdea
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &GenerationRequest{Idea: idea, Configuration: cfg}, nil
}

// IsBlank reports whether an idea has no non-whitespace content
func IsBlank(idea string) bool {
	return strings.TrimSpace(idea) == ""
}

// GeneratedResult is the structured reply of a successful generation
type GeneratedResult struct {
	OptimizedPrompt string   `json:"optimizedPrompt"`
	Explanation     string   `json:"explanation"`
	Tags            []string `json:"tags"`
}

// generatedResultPayload mirrors GeneratedResult with pointer fields so that
// missing and null members can be told apart from empty ones
type generatedResultPayload struct {
	OptimizedPrompt *string    `json:"optimizedPrompt" validate:"required"`
	Explanation     *string    `json:"explanation" validate:"required"`
	Tags            *[]*string `json:"tags" validate:"required,dive,required"`
}

var resultValidator = newResultValidator()

func newResultValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseGeneratedResult decodes and validates a raw model reply.
// Every field is required; a missing or null field or tag is an error, never a default.
func ParseGeneratedResult(raw string) (*GeneratedResult, error) {
	var payload generatedResultPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	if err := resultValidator.Struct(payload); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			missing := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				missing = append(missing, fieldErr.Field())
			}
			return nil, fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
		}
		return nil, fmt.Errorf("invalid result: %w", err)
	}

	tags := make([]string, 0, len(*payload.Tags))
	for _, tag := range *payload.Tags {
		tags = append(tags, *tag)
	}

	return &GeneratedResult{
		OptimizedPrompt: *payload.OptimizedPrompt,
		Explanation:     *payload.Explanation,
		Tags:            tags,
	}, nil
}
