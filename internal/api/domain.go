package api

import (
	"github.com/JaimeStill/easel/internal/generator"
	"github.com/JaimeStill/easel/internal/prompts"
	"github.com/JaimeStill/easel/internal/requests"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts   prompts.System
	Requests  requests.System
	Generator *generator.Generator
}

// NewDomain creates all domain systems from the API runtime.
// Prompts own the image prefix; requests and the generator share the output prefix.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	promptsSystem := prompts.New(
		db,
		runtime.Images,
		runtime.Logger,
		runtime.Pagination,
	)

	gen := generator.New(
		generator.NewSelector(runtime.Seed),
		runtime.Outputs,
		runtime.Logger,
	)

	requestsSystem := requests.New(
		db,
		promptsSystem,
		gen,
		runtime.Outputs,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Prompts:   promptsSystem,
		Requests:  requestsSystem,
		Generator: gen,
	}
}
