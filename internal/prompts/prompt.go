// Package prompts implements the prompt domain: text prompts with an optional
// reference image held in blob storage.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a text prompt with an optional image blob key.
// Image is non-nil exactly when non-empty image bytes were last attached.
type Prompt struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	Image     *string    `json:"image"`
	RequestID *uuid.UUID `json:"request_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateCommand carries the data for a new prompt.
// An empty Image stores no blob.
type CreateCommand struct {
	Text      string
	Image     []byte
	RequestID *uuid.UUID
}

// UpdateCommand replaces a prompt's text and image.
// An empty Image clears any existing image and frees its blob.
type UpdateCommand struct {
	Text  string
	Image []byte
}
