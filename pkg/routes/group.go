package routes

import (
	"net/http"

	"github.com/JaimeStill/easel/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix   string
	Tags     []string
	Schemas  map[string]*openapi.Schema
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		walk("", group, func(prefix string, _ Group, route Route) {
			mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
		})
	}
}

// Describe adds documented routes and group schemas to spec.
// Operations without tags inherit the tags of their group.
func Describe(spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		walk("", group, func(prefix string, g Group, route Route) {
			if route.OpenAPI == nil {
				return
			}
			op := *route.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = g.Tags
			}
			spec.AddOperation(route.Method, prefix+route.Pattern, &op)
		})
		describeSchemas(spec, group)
	}
}

func describeSchemas(spec *openapi.Spec, group Group) {
	if group.Schemas != nil {
		spec.Components.AddSchemas(group.Schemas)
	}
	for _, child := range group.Children {
		describeSchemas(spec, child)
	}
}

func walk(parentPrefix string, group Group, visit func(prefix string, g Group, route Route)) {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		visit(prefix, group, route)
	}
	for _, child := range group.Children {
		walk(prefix, child, visit)
	}
}
