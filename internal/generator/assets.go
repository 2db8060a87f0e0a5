package generator

import (
	"bytes"
	"context"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

type assetCopySummary struct {
	Built   int
	Skipped int
}

// copyAssets copies theme assets under assets/ and mirrors the site assets
// directory into the output. The manifest skips unchanged files unless force
// is set.
func (s *service) copyAssets(ctx context.Context, manifest *buildManifest, force bool) (assetCopySummary, error) {
	summary := assetCopySummary{}
	baseDir := s.outputBase()
	dirCache := map[string]struct{}{}
	if baseDir != "" {
		dirCache[baseDir] = struct{}{}
		if err := s.writer.EnsureDir(ctx, baseDir); err != nil {
			return summary, err
		}
	}

	if s.themes.enabled() {
		if err := s.copyThemeAssets(ctx, manifest, force, baseDir, dirCache, &summary); err != nil {
			return summary, err
		}
	}

	if err := s.copySiteAssets(ctx, manifest, force, baseDir, dirCache, &summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *service) copyThemeAssets(
	ctx context.Context,
	manifest *buildManifest,
	force bool,
	baseDir string,
	dirCache map[string]struct{},
	summary *assetCopySummary,
) error {
	selection, err := s.themes.Selection()
	if err != nil {
		return err
	}
	if selection == nil {
		return nil
	}
	fsys, err := s.themes.themeFS(selection.Theme)
	if err != nil {
		return err
	}

	for _, asset := range collectThemeAssets(selection) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		data, err := fs.ReadFile(fsys, asset)
		if err != nil {
			return err
		}
		dest := joinOutputPath(baseDir, path.Join("assets", asset))
		if err := s.writeAsset(ctx, manifest, force, dirCache, "theme:"+asset, dest, data, summary); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) copySiteAssets(
	ctx context.Context,
	manifest *buildManifest,
	force bool,
	baseDir string,
	dirCache map[string]struct{},
	summary *assetCopySummary,
) error {
	fsys := s.cfg.AssetsFS
	if fsys == nil {
		dir := strings.TrimSpace(s.cfg.AssetsDir)
		if dir == "" {
			return nil
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			// A missing assets directory is not an error.
			return nil
		}
		fsys = os.DirFS(dir)
	}

	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		dest := joinOutputPath(baseDir, path.Join("assets", filepath.ToSlash(name)))
		return s.writeAsset(ctx, manifest, force, dirCache, "site:"+name, dest, data, summary)
	})
}

func (s *service) writeAsset(
	ctx context.Context,
	manifest *buildManifest,
	force bool,
	dirCache map[string]struct{},
	source string,
	dest string,
	data []byte,
	summary *assetCopySummary,
) error {
	checksum := computeHash(data)
	if s.cfg.Incremental && !force && manifest.shouldSkipAsset(source, checksum, dest) {
		summary.Skipped++
		return nil
	}
	if err := ensureDir(ctx, s.writer, dirCache, path.Dir(dest)); err != nil {
		return err
	}
	req := writeFileRequest{
		Path:        dest,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		Category:    categoryAsset,
		ContentType: detectAssetContentType(dest),
		Checksum:    checksum,
		Metadata:    map[string]string{"source": source},
	}
	if err := s.writer.WriteFile(ctx, req); err != nil {
		return err
	}
	summary.Built++
	manifest.setAsset(manifestAsset{
		Source:   source,
		Output:   dest,
		Checksum: checksum,
		Size:     int64(len(data)),
		CopiedAt: s.now(),
	})
	return nil
}

// collectThemeAssets lists the manifest asset files for the selection, with
// variant overrides merged in.
func collectThemeAssets(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(assets)+len(v.Assets.Files))
			for key, file := range assets {
				merged[key] = file
			}
			for key, file := range v.Assets.Files {
				merged[key] = file
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	sort.Strings(out)
	return out
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(filepath.Ext(asset))
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	switch strings.TrimPrefix(ext, ".") {
	case "woff2":
		return "font/woff2"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
