package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/easel/internal/config"
	"github.com/JaimeStill/easel/pkg/openapi"
	"github.com/JaimeStill/easel/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Prompts.Handler(runtime.MaxUploadSize).Routes(),
		domain.Requests.Handler().Routes(),
		newSamplesHandler(domain.Generator.Selector(), runtime.Logger).routes(),
	}

	routes.Register(mux, groups...)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	routes.Describe(spec, groups...)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
