// Package routes declares HTTP route groups and registers them with a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/easel/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// OpenAPI is optional; routes without it are left out of generated specs.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
