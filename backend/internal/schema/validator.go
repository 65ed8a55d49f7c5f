// Package schema validates tool arguments against the JSON Schema attached to
// each descriptor before the tool runs.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"aiotoolsuite/backend/internal/catalog"
	apperrors "aiotoolsuite/backend/pkg/errors"
)

// Validator holds one compiled schema per tool slug
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// ValidationError lists every schema violation of one argument object
type ValidationError struct {
	*apperrors.ErrInvalidInput
	Violations []string
}

// Compile builds a validator for every descriptor carrying an input schema.
// A schema that does not compile is a configuration defect.
func Compile(descriptors []catalog.ToolDescriptor) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(descriptors))}
	for _, d := range descriptors {
		if d.InputSchema == nil {
			continue
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(d.InputSchema))
		if err != nil {
			return nil, apperrors.NewConfigValidationFailed("inputSchema", fmt.Sprintf("tool %s: %v", d.Slug, err))
		}
		v.schemas[d.Slug] = s
	}
	return v, nil
}

// Validate checks args against slug's schema. Tools without a schema accept
// anything; empty args are validated as an empty object.
func (v *Validator) Validate(slug string, args json.RawMessage) error {
	s, ok := v.schemas[slug]
	if !ok {
		return nil
	}

	doc := args
	if len(strings.TrimSpace(string(doc))) == 0 {
		doc = json.RawMessage(`{}`)
	}
	if !json.Valid(doc) {
		return apperrors.NewInvalidInput("", "arguments are not valid JSON")
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return apperrors.NewInvalidInput("", err.Error())
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return &ValidationError{
		ErrInvalidInput: apperrors.NewInvalidInput("", strings.Join(violations, "; ")),
		Violations:      violations,
	}
}
