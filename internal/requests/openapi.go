package requests

import "github.com/JaimeStill/easel/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"Request": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":           {Type: "string", Format: "uuid"},
			"output_image": {Type: "string", Nullable: true, Description: "Blob key of the generated output"},
			"prompts":      {Type: "array", Items: openapi.SchemaRef("Prompt")},
			"created_at":   {Type: "string", Format: "date-time"},
			"updated_at":   {Type: "string", Format: "date-time"},
		},
	},
	"RequestPage": openapi.PageResultSchema("Request"),
}

var idParam = openapi.PathParam("id", "Request ID")

var listOp = &openapi.Operation{
	Summary: "List requests",
	Parameters: append(
		openapi.PageQueryParams(),
		openapi.QueryParam("has_output", "boolean", "Filter by output presence", false),
	),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of requests", "RequestPage"),
	},
}

var findOp = &openapi.Operation{
	Summary:    "Find a request with its prompts",
	Parameters: []*openapi.Parameter{idParam},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Request", "Request"),
		404: openapi.ResponseRef("NotFound"),
	},
}

var createOp = &openapi.Operation{
	Summary: "Create an empty request",
	Responses: map[int]*openapi.Response{
		201: openapi.ResponseJSON("Created request", "Request"),
	},
}

var generateOp = &openapi.Operation{
	Summary:     "Generate the request output",
	Description: "Selects a sample image by keyword match over the concatenated prompt text and replaces any prior output.",
	Parameters:  []*openapi.Parameter{idParam},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Request with new output", "Request"),
		404: openapi.ResponseRef("NotFound"),
		500: openapi.ResponseRef("InternalError"),
	},
}

var outputOp = &openapi.Operation{
	Summary:    "Download the output image",
	Parameters: []*openapi.Parameter{idParam},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseBinary("Image bytes"),
		404: openapi.ResponseRef("NotFound"),
	},
}

var deleteOp = &openapi.Operation{
	Summary:    "Delete a request, its prompts, and their images",
	Parameters: []*openapi.Parameter{idParam},
	Responses: map[int]*openapi.Response{
		204: openapi.ResponseNoContent("Deleted"),
		404: openapi.ResponseRef("NotFound"),
	},
}
