package generator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ThemingConfig selects the active theme and how its output is exposed to
// templates.
type ThemingConfig struct {
	ThemesDir         string
	Theme             string
	Variant           string
	CSSVariablePrefix string
	PartialFallbacks  map[string]string
	// FS overrides ThemesDir for tests and embedded themes.
	FS fs.FS
}

// themeSelector loads theme manifests on demand and resolves the active
// selection through go-theme.
type themeSelector struct {
	cfg      ThemingConfig
	registry *gotheme.MemoryRegistry

	mu        sync.Mutex
	manifests map[string]*gotheme.Manifest
}

func newThemeSelector(cfg ThemingConfig) *themeSelector {
	return &themeSelector{
		cfg:       cfg,
		registry:  gotheme.NewRegistry(),
		manifests: map[string]*gotheme.Manifest{},
	}
}

func (s *themeSelector) enabled() bool {
	return strings.TrimSpace(s.cfg.Theme) != ""
}

// Selection resolves the configured theme and variant, loading and
// registering the manifest on first use.
func (s *themeSelector) Selection() (*gotheme.Selection, error) {
	if !s.enabled() {
		return nil, nil
	}
	name := strings.TrimSpace(s.cfg.Theme)
	if _, err := s.ensureManifest(name); err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   name,
		DefaultVariant: strings.TrimSpace(s.cfg.Variant),
	}
	selection, err := selector.Select(name, strings.TrimSpace(s.cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("generator: select theme %s: %w", name, err)
	}
	return selection, nil
}

// Context builds the template-facing theme data. Theming failures degrade to
// an empty context so a missing theme never blocks a build.
func (s *themeSelector) Context() ThemeContext {
	empty := ThemeContext{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
		AssetURL: func(string) string { return "" },
		Template: func(_ string, fallback string) string { return fallback },
	}
	selection, err := s.Selection()
	if err != nil || selection == nil {
		return empty
	}

	return ThemeContext{
		Name:      selection.Theme,
		Variant:   selection.Variant,
		Tokens:    selection.Tokens(),
		CSSVars:   selection.CSSVariables(s.cfg.CSSVariablePrefix),
		Partials:  selection.Partials(s.cfg.PartialFallbacks),
		AssetURL:  func(key string) string { url, _ := selection.Asset(key); return url },
		Template:  selection.Template,
		Selection: selection,
	}
}

func (s *themeSelector) ensureManifest(name string) (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if manifest, ok := s.manifests[name]; ok {
		return manifest, nil
	}

	fsys, err := s.themeFS(name)
	if err != nil {
		return nil, err
	}
	manifest, err := gotheme.LoadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("generator: load theme manifest %s: %w", name, err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		manifest.Name = name
	}
	if err := s.registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("generator: register theme %s: %w", name, err)
	}
	s.manifests[name] = manifest
	return manifest, nil
}

// themeFS resolves the filesystem holding the named theme.
func (s *themeSelector) themeFS(name string) (fs.FS, error) {
	if s.cfg.FS != nil {
		sub, err := fs.Sub(s.cfg.FS, name)
		if err != nil {
			return nil, fmt.Errorf("generator: theme %s not found: %w", name, err)
		}
		return sub, nil
	}
	dir := filepath.Join(filepath.Clean(strings.TrimSpace(s.cfg.ThemesDir)), name)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("generator: theme directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("generator: theme path %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
