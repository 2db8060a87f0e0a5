package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-portfolio/cmd/site/internal/bootstrap"
	sitecmd "github.com/goliatone/go-portfolio/internal/commands/site"
	"github.com/goliatone/go-portfolio/internal/generator"
	"github.com/goliatone/go-portfolio/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

// buildExecutor seam lets tests stub the command handler.
type buildExecutor interface {
	Execute(ctx context.Context, msg sitecmd.BuildMessage) error
}

var newBuildHandler = func(module *bootstrap.Module) (buildExecutor, error) {
	gen, err := module.Module.Generator()
	if err != nil {
		return nil, err
	}
	logger := logging.GeneratorLogger(module.Module.Logger())
	return sitecmd.NewBuildHandler(gen, logger), nil
}

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("site build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("site-build", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the YAML config file")
	contentDir := fs.String("content-dir", "", "Override the markdown content root")
	outputDir := fs.String("output", "", "Override the build output directory")
	baseURL := fs.String("base-url", "", "Override the canonical site URL")
	slugs := fs.String("slugs", "", "Comma separated post/project slugs to rebuild")
	force := fs.Bool("force", false, "Bypass the incremental manifest and rebuild everything")
	dryRun := fs.Bool("dry-run", false, "Render without writing artifacts")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		ContentDir: *contentDir,
		OutputDir:  *outputDir,
		BaseURL:    *baseURL,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	handler, err := newBuildHandler(module)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	var result *generator.BuildResult
	msg := sitecmd.BuildMessage{
		Slugs:          bootstrap.SplitList(*slugs),
		Force:          *force,
		DryRun:         *dryRun,
		ResultCallback: func(r *generator.BuildResult) { result = r },
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}

	if result != nil {
		fmt.Fprintf(os.Stdout, "built %d pages (%d skipped), %d assets, %d feeds in %s\n",
			result.PagesBuilt, result.PagesSkipped, result.AssetsBuilt, result.FeedsBuilt, result.Duration)
		if result.DryRun {
			fmt.Fprintln(os.Stdout, "dry run; no artifacts written")
		}
	}
	return nil
}
