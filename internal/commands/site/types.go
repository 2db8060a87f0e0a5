package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-portfolio/internal/generator"
	"github.com/goliatone/go-portfolio/internal/publish"
)

const (
	buildMessageType   = "portfolio.site.build"
	cleanMessageType   = "portfolio.site.clean"
	publishMessageType = "portfolio.site.publish"
)

// BuildResultCallback receives the generator result. Optional, invoked
// synchronously from the handler.
type BuildResultCallback func(*generator.BuildResult)

// PublishResultCallback receives the publish summary.
type PublishResultCallback func(*publish.Result)

// BuildMessage triggers a site build, optionally restricted to slugs.
type BuildMessage struct {
	Slugs          []string            `json:"slugs,omitempty"`
	Force          bool                `json:"force,omitempty"`
	DryRun         bool                `json:"dry_run,omitempty"`
	ResultCallback BuildResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildMessage) Type() string { return buildMessageType }

// Validate ensures slug filters are well-formed.
func (m BuildMessage) Validate() error {
	errs := validation.Errors{}
	for _, slug := range m.Slugs {
		if strings.TrimSpace(slug) == "" {
			errs["slugs"] = validation.NewError("portfolio.site.build.slug_invalid", "slugs must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanMessage clears the build output directory.
type CleanMessage struct{}

// Type implements command.Message.
func (CleanMessage) Type() string { return cleanMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanMessage) Validate() error { return nil }

// PublishMessage uploads a built site directory to the configured target.
type PublishMessage struct {
	Dir            string                `json:"dir"`
	ResultCallback PublishResultCallback `json:"-"`
}

// Type implements command.Message.
func (PublishMessage) Type() string { return publishMessageType }

// Validate ensures the source directory is present.
func (m PublishMessage) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Dir) == "" {
		errs["dir"] = validation.NewError("portfolio.site.publish.dir_required", "dir is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
