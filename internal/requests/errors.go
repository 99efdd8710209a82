package requests

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/easel/pkg/repository"
	"github.com/JaimeStill/easel/pkg/storage"
)

var (
	ErrNotFound       = errors.New("request not found")
	ErrNoOutput       = errors.New("request has no output image")
	ErrInvalidRequest = errors.New("invalid request")
)

var repoErrors = repository.Errors{
	NotFound: ErrNotFound,
}

// MapHTTPStatus maps request domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoOutput), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
