package validation

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const todoRequestSchemaURL = "https://todo-api.local/schemas/todo-request.json"

// todoRequestSchema describes the body accepted by create and update.
// Unknown members are ignored; null means "not supplied".
const todoRequestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"task":      {"type": ["string", "null"]},
		"completed": {"type": ["boolean", "null"]},
		"priority":  {"type": ["string", "null"]}
	}
}`

// RequestValidator checks the shape of decoded JSON request bodies.
type RequestValidator struct {
	schema *jsonschema.Schema
}

// NewRequestValidator compiles the request schema.
func NewRequestValidator() (*RequestValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(todoRequestSchemaURL, strings.NewReader(todoRequestSchema)); err != nil {
		return nil, fmt.Errorf("add request schema: %w", err)
	}

	schema, err := compiler.Compile(todoRequestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}

	return &RequestValidator{schema: schema}, nil
}

// Validate checks doc, a value produced by encoding/json, against the
// request schema. Violations are reported as a *ValidationError.
func (rv *RequestValidator) Validate(doc interface{}) error {
	err := rv.schema.Validate(doc)
	if err == nil {
		return nil
	}

	schemaErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validate request: %w", err)
	}

	validationError := NewValidationError()
	collectSchemaErrors(schemaErr, doc, validationError)
	if !validationError.HasErrors() {
		validationError.AddInvalidTypeError("body", nil, schemaErr.Message)
	}
	return validationError
}

// collectSchemaErrors flattens the cause tree into one FieldError per leaf.
func collectSchemaErrors(err *jsonschema.ValidationError, doc interface{}, out *ValidationError) {
	if len(err.Causes) == 0 {
		field := pointerToField(err.InstanceLocation)
		out.AddInvalidTypeError(field, lookupPointer(doc, err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, doc, out)
	}
}

// pointerToField turns a JSON pointer such as "/task" into "task".
// The document root is reported as "body".
func pointerToField(pointer string) string {
	trimmed := strings.TrimPrefix(pointer, "/")
	if trimmed == "" {
		return "body"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}

func lookupPointer(doc interface{}, pointer string) interface{} {
	key := strings.TrimPrefix(pointer, "/")
	if key == "" {
		return doc
	}
	if obj, ok := doc.(map[string]interface{}); ok {
		return obj[key]
	}
	return nil
}
