package models

import (
	"errors"
	"fmt"
	"strings"
)

// Tone is the voice the refined prompt should be written in
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneCreative     Tone = "Creative"
	ToneConcise      Tone = "Concise"
	ToneAcademic     Tone = "Academic"
	TonePlayful      Tone = "Playful"
	ToneTechnical    Tone = "Technical"
)

// Tones lists every tone in display order
var Tones = []Tone{
	ToneProfessional,
	ToneCreative,
	ToneConcise,
	ToneAcademic,
	TonePlayful,
	ToneTechnical,
}

// Format is the output structure the refined prompt should ask for
type Format string

const (
	FormatParagraph   Format = "Paragraph"
	FormatStructured  Format = "Structured (Markdown)"
	FormatStepByStep  Format = "Step-by-Step"
	FormatCodeFocused Format = "Code Focused"
)

// Formats lists every format in display order
var Formats = []Format{
	FormatParagraph,
	FormatStructured,
	FormatStepByStep,
	FormatCodeFocused,
}

// short keys accepted by ParseFormat in addition to the display values
var formatKeys = map[string]Format{
	"paragraph":   FormatParagraph,
	"structured":  FormatStructured,
	"stepbystep":  FormatStepByStep,
	"codefocused": FormatCodeFocused,
}

var (
	ErrUnknownTone   = errors.New("unknown tone")
	ErrUnknownFormat = errors.New("unknown format")
)

// ParseTone resolves a tone name case-insensitively
func ParseTone(s string) (Tone, error) {
	value := strings.TrimSpace(s)
	for _, tone := range Tones {
		if strings.EqualFold(string(tone), value) {
			return tone, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTone, s)
}

// ParseFormat resolves a format from its display value or short key
func ParseFormat(s string) (Format, error) {
	value := strings.TrimSpace(s)
	for _, format := range Formats {
		if strings.EqualFold(string(format), value) {
			return format, nil
		}
	}
	if format, ok := formatKeys[strings.ToLower(value)]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Valid reports whether t is one of the known tones
func (t Tone) Valid() bool {
	for _, tone := range Tones {
		if tone == t {
			return true
		}
	}
	return false
}

// Valid reports whether f is one of the known formats
func (f Format) Valid() bool {
	for _, format := range Formats {
		if format == f {
			return true
		}
	}
	return false
}

// Configuration holds the display preferences attached to a generation request
type Configuration struct {
	Tone             Tone   `json:"tone"`
	Format           Format `json:"format"`
	IncludeReasoning bool   `json:"includeReasoning"`
}

// DefaultConfiguration is what the form starts with
func DefaultConfiguration() Configuration {
	return Configuration{
		Tone:             ToneProfessional,
		Format:           FormatStructured,
		IncludeReasoning: true,
	}
}

// Validate rejects tones and formats outside the known sets
func (c Configuration) Validate() error {
	if !c.Tone.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTone, c.Tone)
	}
	if !c.Format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	return nil
}

// ReasoningLabel renders IncludeReasoning the way the instruction template expects
func (c Configuration) ReasoningLabel() string {
	if c.IncludeReasoning {
		return "Yes"
	}
	return "No"
}
