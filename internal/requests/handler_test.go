package requests_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/easel/internal/requests"
	"github.com/JaimeStill/easel/pkg/pagination"
	"github.com/JaimeStill/easel/pkg/routes"
	"github.com/JaimeStill/easel/pkg/storage"
)

type mockSystem struct {
	listFn     func(ctx context.Context, page pagination.PageRequest, filters requests.Filters) (*pagination.PageResult[requests.Request], error)
	findFn     func(ctx context.Context, id uuid.UUID) (*requests.Request, error)
	createFn   func(ctx context.Context) (*requests.Request, error)
	generateFn func(ctx context.Context, id uuid.UUID) (*requests.Request, error)
	outputFn   func(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *requests.Handler {
	return requests.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters requests.Filters) (*pagination.PageResult[requests.Request], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*requests.Request, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context) (*requests.Request, error) {
	return m.createFn(ctx)
}

func (m *mockSystem) Generate(ctx context.Context, id uuid.UUID) (*requests.Request, error) {
	return m.generateFn(ctx, id)
}

func (m *mockSystem) Output(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error) {
	return m.outputFn(ctx, id)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestHandlerList(t *testing.T) {
	var captured requests.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, _ pagination.PageRequest, f requests.Filters) (*pagination.PageResult[requests.Request], error) {
			captured = f
			result := pagination.NewPageResult([]requests.Request{{ID: uuid.New()}}, 1, 1, 20)
			return &result, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/requests?has_output=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.HasOutput == nil || !*captured.HasOutput {
		t.Errorf("has_output filter = %v, want true", captured.HasOutput)
	}
}

func TestHandlerCreate(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{
		createFn: func(context.Context) (*requests.Request, error) {
			return &requests.Request{ID: id}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("POST", "/requests", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var got requests.Request
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != id {
		t.Errorf("id = %v, want %v", got.ID, id)
	}
}

func TestHandlerGenerate(t *testing.T) {
	id := uuid.New()
	key := "outputs/abc"
	sys := &mockSystem{
		generateFn: func(_ context.Context, got uuid.UUID) (*requests.Request, error) {
			if got != id {
				return nil, requests.ErrNotFound
			}
			return &requests.Request{ID: id, OutputImage: &key}, nil
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"generates", "/requests/" + id.String() + "/generate", http.StatusOK},
		{"not found", "/requests/" + uuid.NewString() + "/generate", http.StatusNotFound},
		{"invalid uuid", "/requests/nope/generate", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerOutput(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{
		outputFn: func(_ context.Context, got uuid.UUID) (*storage.BlobResult, error) {
			if got != id {
				return nil, requests.ErrNoOutput
			}
			return &storage.BlobResult{
				Body:        io.NopCloser(strings.NewReader("jpeg")),
				ContentType: "image/jpeg",
			}, nil
		},
	}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/requests/"+id.String()+"/output", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "jpeg" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("content-type = %s", ct)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/requests/"+uuid.NewString()+"/output", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	var deleted uuid.UUID
	sys := &mockSystem{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	id := uuid.New()

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("DELETE", "/requests/"+id.String(), nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if deleted != id {
		t.Errorf("deleted = %v, want %v", deleted, id)
	}
}
