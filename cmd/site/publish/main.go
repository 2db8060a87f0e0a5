package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-portfolio/cmd/site/internal/bootstrap"
	sitecmd "github.com/goliatone/go-portfolio/internal/commands/site"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/publish"
)

var moduleBuilder = bootstrap.BuildModule

// publishExecutor seam lets tests stub the command handler.
type publishExecutor interface {
	Execute(ctx context.Context, msg sitecmd.PublishMessage) error
}

var newPublishHandler = func(ctx context.Context, module *bootstrap.Module) (publishExecutor, error) {
	publisher, err := module.Module.Publisher(ctx)
	if err != nil {
		return nil, err
	}
	logger := logging.PublishLogger(module.Module.Logger())
	return sitecmd.NewPublishHandler(publisher, logger), nil
}

func main() {
	if err := runPublish(os.Args[1:]); err != nil {
		log.Fatalf("site publish: %v", err)
	}
}

func runPublish(args []string) error {
	fs := flag.NewFlagSet("site-publish", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the YAML config file")
	dir := fs.String("dir", "", "Directory to upload (defaults to the build output directory)")
	bucket := fs.String("bucket", "", "Override the S3 bucket")
	prefix := fs.String("prefix", "", "Override the S3 key prefix")
	region := fs.String("region", "", "Override the AWS region")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	cfg := &module.Module.Container().Config
	cfg.Features.Publish = true
	if trimmed := *bucket; trimmed != "" {
		cfg.Publish.Bucket = trimmed
	}
	if trimmed := *prefix; trimmed != "" {
		cfg.Publish.Prefix = trimmed
	}
	if trimmed := *region; trimmed != "" {
		cfg.Publish.Region = trimmed
	}
	if cfg.Publish.Bucket == "" {
		return fmt.Errorf("publish bucket is required; set -bucket or the config file")
	}

	target := *dir
	if target == "" {
		target = cfg.Generator.OutputDir
	}

	ctx := context.Background()
	handler, err := newPublishHandler(ctx, module)
	if err != nil {
		return fmt.Errorf("publish handler: %w", err)
	}

	var result *publish.Result
	msg := sitecmd.PublishMessage{
		Dir:            target,
		ResultCallback: func(r *publish.Result) { result = r },
	}
	if err := handler.Execute(ctx, msg); err != nil {
		return fmt.Errorf("execute publish command: %w", err)
	}

	if result != nil {
		fmt.Fprintf(os.Stdout, "published %d files (%d bytes) to %s in %s\n",
			result.Files, result.Bytes, result.Target, result.Duration)
	}
	return nil
}
