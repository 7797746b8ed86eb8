package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a generation failure. The set is closed.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindInvalidInput  Kind = "invalid_input"
	KindGeneration    Kind = "generation"
	KindParse         Kind = "parse"
	KindTransport     Kind = "transport"
)

// GenerationError is the only error type returned by PromptGenerator.Generate
type GenerationError struct {
	Kind    Kind
	Message string
	// Raw holds the unparseable reply for KindParse
	Raw string
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a generation error, or "" for any other error
func KindOf(err error) Kind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return ""
}

// FallbackMessage is shown when an error carries no message of its own
const FallbackMessage = "Something went wrong while generating the prompt. Please try again."

// UserMessage returns the message to show an end user, without wrapped causes
func UserMessage(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) && genErr.Message != "" {
		return genErr.Message
	}
	return FallbackMessage
}

// HTTPStatus maps an error to the status code returned to HTTP callers
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindConfiguration:
		return http.StatusServiceUnavailable
	case KindGeneration, KindParse, KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, message string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: message, Err: err}
}
