package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Form names used to look up payload schemas.
const (
	FormProjectCreate     = "project.create"
	FormProjectUpdate     = "project.update"
	FormFeatureCreate     = "feature.create"
	FormFeatureUpdate     = "feature.update"
	FormKeyCreate         = "key.create"
	FormKeyUpdate         = "key.update"
	FormLanguageCreate    = "language.create"
	FormLanguageUpdate    = "language.update"
	FormTranslationCreate = "translation.create"
	FormTranslationUpdate = "translation.update"
	FormBulkUpsert        = "translation.bulk_upsert"
	FormAITranslate       = "ai.translate"
	FormAITranslateBatch  = "ai.translate_batch"
)

// FormValidator checks dialog payloads before they are sent to the API.
type FormValidator interface {
	Validate(form string, payload any) error
}

const (
	nonBlank      = `{"type": "string", "pattern": "\\S"}`
	localePattern = `{"type": "string", "pattern": "^[A-Za-z]{2,3}([-_][A-Za-z0-9]{2,8})*$"}`
)

var defaultFormSchemas = map[string]string{
	FormProjectCreate: `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": ` + nonBlank + `, "description": {"type": "string"}}
	}`,
	FormProjectUpdate: `{
		"type": "object",
		"minProperties": 1,
		"properties": {"name": ` + nonBlank + `, "description": {"type": "string"}}
	}`,
	FormFeatureCreate: `{
		"type": "object",
		"required": ["name", "projectId"],
		"properties": {"name": ` + nonBlank + `, "description": {"type": "string"}, "projectId": ` + nonBlank + `}
	}`,
	FormFeatureUpdate: `{
		"type": "object",
		"minProperties": 1,
		"properties": {"name": ` + nonBlank + `, "description": {"type": "string"}}
	}`,
	FormKeyCreate: `{
		"type": "object",
		"required": ["key", "featureId"],
		"properties": {"key": ` + nonBlank + `, "description": {"type": "string"}, "featureId": ` + nonBlank + `}
	}`,
	FormKeyUpdate: `{
		"type": "object",
		"minProperties": 1,
		"properties": {"key": ` + nonBlank + `, "description": {"type": "string"}}
	}`,
	FormLanguageCreate: `{
		"type": "object",
		"required": ["locale", "name"],
		"properties": {"locale": ` + localePattern + `, "name": ` + nonBlank + `, "isActive": {"type": "boolean"}}
	}`,
	FormLanguageUpdate: `{
		"type": "object",
		"minProperties": 1,
		"properties": {"locale": ` + localePattern + `, "name": ` + nonBlank + `, "isActive": {"type": "boolean"}}
	}`,
	FormTranslationCreate: `{
		"type": "object",
		"required": ["keyId", "locale", "value"],
		"properties": {"keyId": ` + nonBlank + `, "locale": ` + localePattern + `, "value": {"type": "string"}}
	}`,
	FormTranslationUpdate: `{
		"type": "object",
		"required": ["value"],
		"properties": {"value": {"type": "string"}}
	}`,
	FormBulkUpsert: `{
		"type": "object",
		"required": ["keyId", "translations"],
		"properties": {
			"keyId": ` + nonBlank + `,
			"translations": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["locale", "value"],
					"properties": {"locale": ` + localePattern + `, "value": {"type": "string"}}
				}
			}
		}
	}`,
	FormAITranslate: `{
		"type": "object",
		"required": ["keyId", "targetLocales"],
		"properties": {
			"keyId": ` + nonBlank + `,
			"targetLocales": {"type": "array", "minItems": 1, "items": ` + localePattern + `}
		}
	}`,
	FormAITranslateBatch: `{
		"type": "object",
		"anyOf": [{"required": ["featureId"]}, {"required": ["projectId"]}],
		"properties": {
			"featureId": ` + nonBlank + `,
			"projectId": ` + nonBlank + `,
			"targetLocales": {"type": "array", "items": ` + localePattern + `}
		}
	}`,
}

// JSONSchemaValidator validates payloads against per-form JSON schemas.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	sources  map[string]string
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator loaded with the dashboard forms.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	v := &JSONSchemaValidator{
		sources:  make(map[string]string, len(defaultFormSchemas)),
		compiled: make(map[string]*jsonschema.Schema),
	}
	for form, schema := range defaultFormSchemas {
		v.sources[form] = schema
	}
	return v
}

// Register adds or replaces the schema for form.
func (v *JSONSchemaValidator) Register(form, schema string) error {
	compiled, err := compileSchema(form, schema)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.sources[form] = schema
	v.compiled[form] = compiled
	v.mu.Unlock()
	return nil
}

// Validate checks payload against the schema registered for form. Forms
// without a schema pass.
func (v *JSONSchemaValidator) Validate(form string, payload any) error {
	schema, err := v.schemaFor(form)
	if err != nil || schema == nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("dashboard: marshal %s payload: %w", form, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("dashboard: normalize %s payload: %w", form, err)
	}
	if err := schema.Validate(doc); err != nil {
		return &ValidationError{Form: form, Reason: validationReason(err)}
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(form string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[form]
	source, known := v.sources[form]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	if !known {
		return nil, nil
	}
	compiled, err := compileSchema(form, source)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.compiled[form] = compiled
	v.mu.Unlock()
	return compiled, nil
}

func compileSchema(form, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	name := form + ".json"
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", form, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", form, err)
	}
	return compiled, nil
}

// validationReason reduces a schema error to its first leaf cause.
func validationReason(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	location := strings.TrimPrefix(verr.InstanceLocation, "/")
	if location == "" {
		return verr.Message
	}
	return location + ": " + verr.Message
}
