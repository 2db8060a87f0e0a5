package server

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	contentsvc "github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/generator"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// DefaultDebounce batches the event bursts editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

var (
	errGeneratorRequired = errors.New("server: generator is required for watch mode")
	errNoWatchDirs       = errors.New("server: no directories to watch")
)

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Dirs are the source directories to watch recursively, typically the
	// content and themes dirs. Missing dirs are skipped.
	Dirs []string
	// Debounce is the quiet period before a rebuild, default 500ms.
	Debounce time.Duration
}

// WatchDependencies carries the collaborators watch mode needs. Content is
// optional; when present it is reloaded before each rebuild so edited files
// re-enter the library.
type WatchDependencies struct {
	Generator generator.Service
	Content   contentsvc.Service
	Logger    interfaces.LoggerProvider
}

// Watcher rebuilds the site when source files change.
type Watcher struct {
	cfg       WatchConfig
	generator generator.Service
	content   contentsvc.Service
	logger    interfaces.Logger
}

// NewWatcher validates config and builds a Watcher.
func NewWatcher(cfg WatchConfig, deps WatchDependencies) (*Watcher, error) {
	if deps.Generator == nil {
		return nil, errGeneratorRequired
	}
	if len(cfg.Dirs) == 0 {
		return nil, errNoWatchDirs
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Watcher{
		cfg:       cfg,
		generator: deps.Generator,
		content:   deps.Content,
		logger:    logging.ServerLogger(deps.Logger),
	}, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range w.cfg.Dirs {
		added, err := addRecursive(watcher, dir)
		if err != nil {
			return err
		}
		if added == 0 {
			w.logger.Debug("watch directory missing, skipping", "dir", dir)
			continue
		}
		watched += added
	}
	if watched == 0 {
		return errNoWatchDirs
	}
	w.logger.Info("watching for changes",
		"dirs", strings.Join(w.cfg.Dirs, ","),
		"debounce", w.cfg.Debounce.String())

	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					w.logger.Warn("could not watch new directory", "dir", event.Name, "error", err)
				}
			}
			if pending != nil {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(w.cfg.Debounce)
			pending = timer.C

		case <-pending:
			pending = nil
			w.rebuild(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	started := time.Now()
	if w.content != nil {
		if _, err := w.content.Reload(ctx); err != nil {
			w.logger.Error("content reload failed", "error", err)
			return
		}
	}
	result, err := w.generator.Build(ctx, generator.BuildOptions{})
	if err != nil {
		w.logger.Error("rebuild failed", "error", err)
		return
	}
	w.logger.Info("site rebuilt",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"duration", time.Since(started).String())
}

func addRecursive(watcher *fsnotify.Watcher, root string) (int, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return 0, nil
	}
	added := 0
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return err
		}
		added++
		return nil
	})
	if err != nil {
		return added, err
	}
	return added, nil
}

func relevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
