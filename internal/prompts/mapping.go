package prompts

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/easel/pkg/query"
	"github.com/JaimeStill/easel/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("text", "Text").
	Project("image", "Image").
	Project("request_id", "RequestID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// requestOrder is the order prompts contribute text to a generation request.
var requestOrder = []query.SortField{
	{Field: "CreatedAt"},
	{Field: "ID"},
}

const returning = "RETURNING id, text, image, request_id, created_at, updated_at"

// Filters narrows prompt queries. Nil fields are ignored.
type Filters struct {
	RequestID *uuid.UUID `json:"request_id,omitempty"`
	Text      *string    `json:"text,omitempty"`
	HasImage  *bool      `json:"has_image,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var requestID any
	if f.RequestID != nil {
		requestID = *f.RequestID
	}

	return b.
		WhereEquals("RequestID", requestID).
		WhereContains("Text", f.Text).
		WherePresent("Image", f.HasImage)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Malformed values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if rid := values.Get("request_id"); rid != "" {
		if id, err := uuid.Parse(rid); err == nil {
			f.RequestID = &id
		}
	}

	if t := values.Get("text"); t != "" {
		f.Text = &t
	}

	if hi := values.Get("has_image"); hi != "" {
		if v, err := strconv.ParseBool(hi); err == nil {
			f.HasImage = &v
		}
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Text,
		&p.Image,
		&p.RequestID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
