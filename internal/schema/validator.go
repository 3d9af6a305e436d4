// Package schema wraps JSON schema validation for complexity reports.
// Validation is structural only: types, required fields, numeric ranges and
// array shapes. Semantic checks belong to the consumers.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParseError marks a document that is not even parseable as JSON. Callers
// use it to tell "fix the JSON" apart from "fix the shape".
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("document is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Validator holds a compiled JSON schema plus its raw source, which the
// repair loop embeds verbatim in its prompt.
type Validator struct {
	schema *gojsonschema.Schema
	raw    []byte
}

// New compiles a validator from raw JSON schema bytes.
func New(schemaData []byte) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("compiling JSON schema: %w", err)
	}
	return &Validator{schema: compiled, raw: schemaData}, nil
}

// Schema returns the raw schema source.
func (v *Validator) Schema() []byte {
	return v.raw
}

// Validate checks a document against the schema. It returns (true, "") for
// a conforming document and (false, diagnostic) for a well-formed document
// that violates the schema; the diagnostic names each offending field. A
// document that does not parse as JSON returns a *ParseError instead.
func (v *Validator) Validate(document []byte) (bool, string, error) {
	var probe interface{}
	if err := json.Unmarshal(document, &probe); err != nil {
		return false, "", &ParseError{Err: err}
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return false, "", fmt.Errorf("validating document: %w", err)
	}
	if result.Valid() {
		return true, "", nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %s", desc.Field(), desc.Description())
	}
	return false, sb.String(), nil
}
