package prompts

import "github.com/JaimeStill/easel/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"Prompt": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"text":       {Type: "string"},
			"image":      {Type: "string", Nullable: true, Description: "Blob key of the attached image"},
			"request_id": {Type: "string", Format: "uuid", Nullable: true},
			"created_at": {Type: "string", Format: "date-time"},
			"updated_at": {Type: "string", Format: "date-time"},
		},
	},
	"PromptPage": openapi.PageResultSchema("Prompt"),
	"PromptForm": {
		Type:     "object",
		Required: []string{"text"},
		Properties: map[string]*openapi.Schema{
			"text":       {Type: "string"},
			"image":      {Type: "string", Format: "binary", Description: "Omit or send empty to clear the image on update"},
			"request_id": {Type: "string", Format: "uuid", Description: "Create only"},
		},
	},
	"PromptSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":       {Type: "integer"},
			"page_size":  {Type: "integer"},
			"search":     {Type: "string"},
			"sort":       {Type: "string"},
			"request_id": {Type: "string", Format: "uuid"},
			"text":       {Type: "string"},
			"has_image":  {Type: "boolean"},
		},
	},
}

var idParam = openapi.PathParam("id", "Prompt ID")

var listOp = &openapi.Operation{
	Summary: "List prompts",
	Parameters: append(
		openapi.PageQueryParams(),
		openapi.QueryParam("request_id", "string", "Filter by request", false),
		openapi.QueryParam("text", "string", "Text contains", false),
		openapi.QueryParam("has_image", "boolean", "Filter by image presence", false),
	),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of prompts", "PromptPage"),
	},
}

var searchOp = &openapi.Operation{
	Summary:     "Search prompts",
	RequestBody: openapi.RequestBodyJSON("PromptSearch", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of prompts", "PromptPage"),
		400: openapi.ResponseRef("BadRequest"),
	},
}

var findOp = &openapi.Operation{
	Summary:    "Find a prompt",
	Parameters: []*openapi.Parameter{idParam},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Prompt", "Prompt"),
		404: openapi.ResponseRef("NotFound"),
	},
}

var createOp = &openapi.Operation{
	Summary:     "Create a prompt",
	RequestBody: openapi.RequestBodyMultipart("PromptForm", true),
	Responses: map[int]*openapi.Response{
		201: openapi.ResponseJSON("Created prompt", "Prompt"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("TooLarge"),
	},
}

var updateOp = &openapi.Operation{
	Summary:     "Replace a prompt's text and image",
	Parameters:  []*openapi.Parameter{idParam},
	RequestBody: openapi.RequestBodyMultipart("PromptForm", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Updated prompt", "Prompt"),
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
		413: openapi.ResponseRef("TooLarge"),
	},
}

var deleteOp = &openapi.Operation{
	Summary:    "Delete a prompt and its image",
	Parameters: []*openapi.Parameter{idParam},
	Responses: map[int]*openapi.Response{
		204: openapi.ResponseNoContent("Deleted"),
		404: openapi.ResponseRef("NotFound"),
	},
}

var imageOp = &openapi.Operation{
	Summary:    "Download a prompt's image",
	Parameters: []*openapi.Parameter{idParam},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseBinary("Image bytes"),
		404: openapi.ResponseRef("NotFound"),
	},
}
