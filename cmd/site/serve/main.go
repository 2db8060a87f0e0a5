package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-portfolio/cmd/site/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

// Seams let tests drive the serve loop without binding a port or touching
// the filesystem watcher.
var runServer = func(ctx context.Context, module *bootstrap.Module) error {
	return module.Module.Server().Run(ctx)
}

var startWatcher = func(ctx context.Context, module *bootstrap.Module) error {
	watcher, err := module.Module.Watcher()
	if err != nil {
		return err
	}
	go func() {
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("site serve: watcher stopped: %v", err)
		}
	}()
	return nil
}

func main() {
	if err := runServe(os.Args[1:]); err != nil {
		log.Fatalf("site serve: %v", err)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("site-serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the YAML config file")
	addr := fs.String("addr", "", "Override the listen address")
	outputDir := fs.String("output", "", "Override the build output directory")
	contentDir := fs.String("content-dir", "", "Override the markdown content root")
	watch := fs.Bool("watch", false, "Rebuild the site when source files change")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		Addr:       *addr,
		OutputDir:  *outputDir,
		ContentDir: *contentDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.Module.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("prepare contact storage: %w", err)
	}

	if *watch || module.Config.Server.Watch {
		if err := startWatcher(ctx, module); err != nil {
			return fmt.Errorf("watcher: %w", err)
		}
	}

	fmt.Fprintf(os.Stdout, "serving %s on %s\n", module.Config.Generator.OutputDir, module.Config.Server.Addr)
	if err := runServer(ctx, module); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
