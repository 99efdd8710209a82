package generator

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/easel/pkg/storage"
)

// ErrUnknownResource means a catalog name has no bundled file.
var ErrUnknownResource = errors.New("unknown sample resource")

// MapHTTPStatus maps generator errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownResource):
		return http.StatusInternalServerError
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
