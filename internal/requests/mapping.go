package requests

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/easel/pkg/query"
	"github.com/JaimeStill/easel/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "requests", "r").
	Project("id", "ID").
	Project("output_image", "OutputImage").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

const returning = "RETURNING id, output_image, created_at, updated_at"

// Filters narrows request queries. Nil fields are ignored.
type Filters struct {
	HasOutput *bool `json:"has_output,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WherePresent("OutputImage", f.HasOutput)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if ho := values.Get("has_output"); ho != "" {
		if v, err := strconv.ParseBool(ho); err == nil {
			f.HasOutput = &v
		}
	}

	return f
}

func scanRequest(s repository.Scanner) (Request, error) {
	var r Request
	err := s.Scan(
		&r.ID,
		&r.OutputImage,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
