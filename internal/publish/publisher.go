// Package publish uploads the generated site to its hosting target.
package publish

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBucketRequired = errors.New("publish: bucket is required")
	ErrDirRequired    = errors.New("publish: output directory is required")
)

// Publisher pushes a built site directory to a remote target.
type Publisher interface {
	Publish(ctx context.Context, dir string) (*Result, error)
}

// Result summarizes an upload run.
type Result struct {
	Files    int
	Bytes    int64
	Duration time.Duration
	Target   string
}

// NoopPublisher is used when no publish target is configured. It reports a
// zero result so callers can log a consistent summary.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, dir string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, ErrDirRequired
	}
	return &Result{Target: "noop"}, nil
}
