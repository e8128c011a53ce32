package models

import "github.com/ehunter/skycast/internal/constants"

// Poem is a generated (or canned) weather poem.
type Poem struct {
	Style    constants.PoemStyle `json:"style"`
	Text     string              `json:"text"`
	Fallback bool                `json:"fallback"`
}
