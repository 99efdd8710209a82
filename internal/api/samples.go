package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/easel/internal/generator"
	"github.com/JaimeStill/easel/pkg/handlers"
	"github.com/JaimeStill/easel/pkg/openapi"
	"github.com/JaimeStill/easel/pkg/routes"
)

type catalog struct {
	Rules    []generator.Rule `json:"rules"`
	Fallback string           `json:"fallback"`
}

type samplesHandler struct {
	selector *generator.Selector
	logger   *slog.Logger
}

func newSamplesHandler(selector *generator.Selector, logger *slog.Logger) *samplesHandler {
	return &samplesHandler{
		selector: selector,
		logger:   logger.With("handler", "samples"),
	}
}

func (h *samplesHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/samples",
		Tags:   []string{"Samples"},
		Schemas: map[string]*openapi.Schema{
			"SampleCatalog": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"rules": {
						Type: "array",
						Items: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"keywords":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
								"candidates": {Type: "array", Items: &openapi.Schema{Type: "string"}},
							},
						},
					},
					"fallback": {Type: "string"},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: h.list,
				OpenAPI: &openapi.Operation{
					Summary: "List keyword rules and sample images in evaluation order",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Sample catalog", "SampleCatalog"),
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/{name}",
				Handler: h.read,
				OpenAPI: &openapi.Operation{
					Summary:    "Download a bundled sample image",
					Parameters: []*openapi.Parameter{openapi.PathParam("name", "Sample file name")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseBinary("Image bytes"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

func (h *samplesHandler) list(w http.ResponseWriter, r *http.Request) {
	rules, fallback := h.selector.Catalog()
	handlers.RespondJSON(w, http.StatusOK, catalog{Rules: rules, Fallback: fallback})
}

func (h *samplesHandler) read(w http.ResponseWriter, r *http.Request) {
	data, err := h.selector.Read(r.PathValue("name"))
	if errors.Is(err, generator.ErrUnknownResource) {
		handlers.RespondError(w, h.logger, http.StatusNotFound, err)
		return
	}
	if err != nil {
		handlers.RespondError(w, h.logger, generator.MapHTTPStatus(err), err)
		return
	}

	contentType := http.DetectContentType(data)
	if err := handlers.RespondStream(w, contentType, int64(len(data)), bytes.NewReader(data)); err != nil {
		h.logger.Error("sample write failed", "name", r.PathValue("name"), "error", err)
	}
}
