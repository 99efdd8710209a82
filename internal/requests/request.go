// Package requests groups prompts into generation requests and produces an
// output image for each from the prompts' text.
package requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/easel/internal/prompts"
)

// Request is an ordered set of prompts with an optional generated output.
// Prompts is populated by Find and Generate; List leaves it empty.
type Request struct {
	ID          uuid.UUID        `json:"id"`
	OutputImage *string          `json:"output_image"`
	Prompts     []prompts.Prompt `json:"prompts,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Texts returns prompt texts in request order.
func (r *Request) Texts() []string {
	texts := make([]string, len(r.Prompts))
	for i, p := range r.Prompts {
		texts[i] = p.Text
	}
	return texts
}

// Generator stores a new output image for the given texts, replacing prior.
type Generator interface {
	Generate(ctx context.Context, prior *string, texts []string) (string, error)
}

// PromptSource lists the prompts attached to a request, oldest first.
type PromptSource interface {
	ByRequest(ctx context.Context, requestID uuid.UUID) ([]prompts.Prompt, error)
}
