package content

import (
	"github.com/goliatone/go-portfolio/content"
	"github.com/goliatone/go-portfolio/internal/validation"
)

// Front-matter schemas, one per collection. Validation runs against the raw
// front-matter map after a JSON round trip, so dates appear as strings here
// even when YAML decoded them into timestamps.

const postSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "slug": {"type": "string"},
    "summary": {"type": "string"},
    "date": {"type": "string"},
    "draft": {"type": "boolean"},
    "template": {"type": "string"},
    "author": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["title"],
  "additionalProperties": true
}`

const workSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "company": {"type": "string", "minLength": 1},
    "role": {"type": "string", "minLength": 1},
    "location": {"type": "string"},
    "summary": {"type": "string"},
    "date_start": {"type": "string", "minLength": 4},
    "date_end": {"type": "string"},
    "tech": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["company", "role", "date_start"],
  "additionalProperties": true
}`

const educationSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "institution": {"type": "string", "minLength": 1},
    "summary": {"type": "string"},
    "date_start": {"type": "string", "minLength": 4},
    "date_end": {"type": "string"}
  },
  "required": ["institution", "date_start"],
  "additionalProperties": true
}`

var collectionSchemas = map[string]*validation.Schema{
	content.CollectionBlog:      validation.MustCompile("post", []byte(postSchemaJSON)),
	content.CollectionProjects:  validation.MustCompile("post", []byte(postSchemaJSON)),
	content.CollectionWork:      validation.MustCompile("work", []byte(workSchemaJSON)),
	content.CollectionEducation: validation.MustCompile("education", []byte(educationSchemaJSON)),
}

// SchemaFor returns the compiled front-matter schema for a collection.
func SchemaFor(collection string) (*validation.Schema, bool) {
	schema, ok := collectionSchemas[collection]
	return schema, ok
}

func validateFrontMatter(collection, path string, raw map[string]any) error {
	schema, ok := SchemaFor(collection)
	if !ok {
		return &content.InvalidFrontMatterError{Path: path, Issues: []string{"unknown collection " + collection}}
	}
	if err := schema.Validate(raw); err != nil {
		issues := validation.Issues(err)
		messages := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Location != "" {
				messages = append(messages, issue.Location+": "+issue.Message)
				continue
			}
			messages = append(messages, issue.Message)
		}
		return &content.InvalidFrontMatterError{Path: path, Issues: messages}
	}
	return nil
}
