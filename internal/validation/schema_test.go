package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "tags": {"type": "array", "items": {"type": "string"}},
    "draft": {"type": "boolean"}
  },
  "additionalProperties": true
}`

func TestCompileRejectsInvalidSchema(t *testing.T) {
	if _, err := Compile("broken", []byte(`{"type": 42}`)); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidateAcceptsConformingPayload(t *testing.T) {
	schema, err := Compile("post", []byte(testSchema))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	payload := map[string]any{
		"title": "Getting Started",
		"tags":  []any{"go", "testing"},
		"draft": false,
	}
	if err := schema.Validate(payload); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateReportsIssuesWithLocations(t *testing.T) {
	schema := MustCompile("post", []byte(testSchema))

	err := schema.Validate(map[string]any{
		"tags": []any{"go", 7},
	})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}

	var sawTags bool
	for _, issue := range issues {
		if strings.Contains(issue.Location, "/tags/1") {
			sawTags = true
		}
	}
	if !sawTags {
		t.Fatalf("expected issue at /tags/1, got %+v", issues)
	}
}

func TestValidateNormalisesYAMLValues(t *testing.T) {
	schema := MustCompile("dated", []byte(`{
	  "type": "object",
	  "properties": {
	    "date": {"type": "string"},
	    "count": {"type": "number"}
	  }
	}`))

	payload := map[string]any{
		"date":  time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		"count": 3,
	}
	if err := schema.Validate(payload); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateNilSchemaIsNoOp(t *testing.T) {
	var schema *Schema
	if err := schema.Validate(map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil schema to accept payloads, got %v", err)
	}
}
