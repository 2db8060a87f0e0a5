package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-portfolio/cmd/site/internal/bootstrap"
	contentcmd "github.com/goliatone/go-portfolio/internal/commands/content"
	"github.com/goliatone/go-portfolio/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

// checkExecutor seam lets tests stub the command handler.
type checkExecutor interface {
	Execute(ctx context.Context, msg contentcmd.CheckMessage) error
}

var newCheckHandler = func(module *bootstrap.Module) checkExecutor {
	logger := logging.ContentLogger(module.Module.Logger())
	return contentcmd.NewCheckHandler(module.Module.Content(), logger)
}

func main() {
	if err := runCheck(os.Args[1:]); err != nil {
		log.Fatalf("site check: %v", err)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("site-check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the YAML config file")
	contentDir := fs.String("content-dir", "", "Override the markdown content root")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		ContentDir: *contentDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	handler := newCheckHandler(module)

	var result *contentcmd.CheckResult
	msg := contentcmd.CheckMessage{
		ResultCallback: func(r contentcmd.CheckResult) { result = &r },
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("content check failed: %w", err)
	}

	if result != nil {
		fmt.Fprintf(os.Stdout, "content ok: %d posts, %d projects, %d work entries, %d education entries\n",
			result.Posts, result.Projects, result.Work, result.Education)
	}
	return nil
}
