package prompts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/easel/pkg/repository"
	"github.com/JaimeStill/easel/pkg/storage"
)

var (
	ErrNotFound        = errors.New("prompt not found")
	ErrInvalidPrompt   = errors.New("invalid prompt")
	ErrImageTooLarge   = errors.New("image exceeds maximum upload size")
	ErrRequestNotFound = errors.New("referenced request not found")
	ErrNoImage         = errors.New("prompt has no image")
)

var repoErrors = repository.Errors{
	NotFound:   ErrNotFound,
	ForeignKey: ErrRequestNotFound,
}

// MapHTTPStatus maps prompt domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoImage):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPrompt), errors.Is(err, ErrRequestNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
