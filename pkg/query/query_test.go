package query_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/easel/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Project("text", "Text").
		Project("image", "Image").
		Project("request_id", "RequestID").
		Project("created_at", "CreatedAt")
}

func TestProjectionColumns(t *testing.T) {
	p := testProjection()

	if got := p.Table(); got != "public.prompts p" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.Column("Text"); got != "p.text" {
		t.Errorf("Column(Text) = %q", got)
	}
	if got := p.Column("createdAt"); got != "p.created_at" {
		t.Errorf("Column(createdAt) = %q, want case-insensitive match", got)
	}
	if got := p.Column("unknown"); got != "unknown" {
		t.Errorf("Column(unknown) = %q, want passthrough", got)
	}
	if p.Known("nope") {
		t.Error("Known(nope) = true")
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *query.Builder) *query.Builder
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no conditions",
			build:   func(b *query.Builder) *query.Builder { return b },
			wantSQL: "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p ORDER BY p.created_at DESC",
		},
		{
			name: "equals and contains",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereEquals("RequestID", "r1").WhereContains("Text", ptr("dog"))
			},
			wantSQL:  "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p WHERE p.request_id = $1 AND p.text ILIKE $2 ESCAPE '\\' ORDER BY p.created_at DESC",
			wantArgs: []any{"r1", "%dog%"},
		},
		{
			name: "nil values skipped",
			build: func(b *query.Builder) *query.Builder {
				var id *string
				return b.WhereEquals("RequestID", id).WhereContains("Text", nil).WherePresent("Image", nil)
			},
			wantSQL: "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p ORDER BY p.created_at DESC",
		},
		{
			name: "present and absent",
			build: func(b *query.Builder) *query.Builder {
				return b.WherePresent("Image", ptr(true)).WherePresent("RequestID", ptr(false))
			},
			wantSQL: "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p WHERE p.image IS NOT NULL AND p.request_id IS NULL ORDER BY p.created_at DESC",
		},
		{
			name: "search then equals numbers params in order",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereSearch(ptr("cat"), "Text", "Image").WhereEquals("ID", 3)
			},
			wantSQL:  "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p WHERE (p.text ILIKE $1 ESCAPE '\\' OR p.image ILIKE $2 ESCAPE '\\') AND p.id = $3 ORDER BY p.created_at DESC",
			wantArgs: []any{"%cat%", "%cat%", 3},
		},
		{
			name: "wildcards in user input match literally",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereContains("Text", ptr("100%")).WhereSearch(ptr(`a_b\c`), "Image")
			},
			wantSQL:  "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p WHERE p.text ILIKE $1 ESCAPE '\\' AND (p.image ILIKE $2 ESCAPE '\\') ORDER BY p.created_at DESC",
			wantArgs: []any{`%100\%%`, `%a\_b\\c%`},
		},
		{
			name: "explicit sort drops unknown fields",
			build: func(b *query.Builder) *query.Builder {
				return b.OrderByFields([]query.SortField{
					{Field: "text"},
					{Field: "1; DROP TABLE prompts", Descending: true},
				})
			},
			wantSQL: "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p ORDER BY p.text ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
			sql, args := tt.build(b).Build()

			if sql != tt.wantSQL {
				t.Errorf("sql:\n got  %q\n want %q", sql, tt.wantSQL)
			}
			if !slices.Equal(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuildCountAndPage(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereEquals("RequestID", "r1")

	countSQL, countArgs := b.BuildCount()
	if countSQL != "SELECT COUNT(*) FROM public.prompts p WHERE p.request_id = $1" {
		t.Errorf("count sql = %q", countSQL)
	}
	if len(countArgs) != 1 {
		t.Errorf("count args = %v", countArgs)
	}

	pageSQL, _ := b.BuildPage(3, 20)
	want := "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p WHERE p.request_id = $1 LIMIT 20 OFFSET 40"
	if pageSQL != want {
		t.Errorf("page sql:\n got  %q\n want %q", pageSQL, want)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", 9)

	want := "SELECT p.id, p.text, p.image, p.request_id, p.created_at FROM public.prompts p WHERE p.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != 9 {
		t.Errorf("args = %v", args)
	}
}

func TestParseSortFields(t *testing.T) {
	got := query.ParseSortFields("text, -createdAt,,")
	want := []query.SortField{
		{Field: "text"},
		{Field: "createdAt", Descending: true},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ParseSortFields() = %v, want %v", got, want)
	}

	if query.ParseSortFields("") != nil {
		t.Error("empty input should return nil")
	}
}
