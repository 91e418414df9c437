package packager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/handiism/webfont-packager/internal/catalog"
	"github.com/handiism/webfont-packager/internal/config"
	"github.com/handiism/webfont-packager/internal/http"
	ioutils "github.com/handiism/webfont-packager/internal/io"
	"github.com/handiism/webfont-packager/internal/model"
	"github.com/handiism/webfont-packager/internal/stylesheet"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a packaging progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Catalog fetches font descriptors. *catalog.Client implements it.
type Catalog interface {
	Font(ctx context.Context, fontID string, subsets ...string) (*model.Font, error)
}

// Fetcher downloads one URL to a file. *http.Client implements it.
type Fetcher interface {
	DownloadFile(ctx context.Context, url, destPath string) error
}

// Storage is the file system surface of the pipeline.
// *ioutils.FileStore implements it.
type Storage interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	Exists(path string) bool
	ReadJSON(path string, v any) error
	EnsureDir(path string) error
}

// Options configures a Packager.
type Options struct {
	// PackagesPath is the directory holding one package directory per font.
	PackagesPath string

	// MaxConcurrentDownloads bounds in-flight downloads; <= 0 means unbounded.
	MaxConcurrentDownloads int

	// Manifest supplies the package.json values not taken from the catalog.
	Manifest *stylesheet.ManifestConfig
}

// Result summarizes one packaging run.
type Result struct {
	FontID string

	// Changed is false when the package was up to date and nothing ran.
	Changed bool

	Subsets         int
	Downloads       int
	FailedDownloads []*DownloadError
	Stylesheets     int
}

// Packager runs the packaging pipeline for single fonts.
//
// A Packager may be used for several fonts concurrently; each run only
// writes below its own package directory.
type Packager struct {
	opts    Options
	catalog Catalog
	fetcher Fetcher
	store   Storage

	onProgress func(ProgressEvent)
}

// NewPackager creates a Packager wired to the catalog API and local disk.
func NewPackager(settings *config.Settings, onProgress func(ProgressEvent)) *Packager {
	httpClient := http.NewClient(settings.ToClientConfig())
	opts := Options{
		PackagesPath:           settings.PackagesPath,
		MaxConcurrentDownloads: settings.MaxConcurrentDownloads,
		Manifest:               settings.ToManifestConfig(),
	}

	return New(opts, catalog.NewClient(settings.APIBaseURL, httpClient), httpClient, ioutils.NewFileStore(), onProgress)
}

// New creates a Packager from explicit collaborators.
func New(opts Options, cat Catalog, fetcher Fetcher, store Storage, onProgress func(ProgressEvent)) *Packager {
	if opts.Manifest == nil {
		opts.Manifest = config.DefaultSettings().ToManifestConfig()
	}
	return &Packager{
		opts:       opts,
		catalog:    cat,
		fetcher:    fetcher,
		store:      store,
		onProgress: onProgress,
	}
}

// WithProgress returns a copy of p that reports to onProgress.
func (p *Packager) WithProgress(onProgress func(ProgressEvent)) *Packager {
	c := *p
	c.onProgress = onProgress
	return &c
}

// Package builds or refreshes the package of fontID.
//
// The returned error is a *catalog.FetchError when metadata could not be
// resolved and a *WriteError when a package file could not be written.
// Download failures are not errors; they are listed in the Result.
func (p *Packager) Package(ctx context.Context, fontID string) (*Result, error) {
	p.progress(ProgressEvent{Message: fmt.Sprintf("Fetching font info: %s", fontID), Level: LevelVerbose})

	bundles, err := catalog.ResolveSubsets(ctx, p.catalog, fontID)
	if err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s: %v", fontID, err), Level: LevelError})
		return nil, err
	}

	font := bundles[0].Font
	dir := model.PackageDir(p.opts.PackagesPath, font.ID)
	result := &Result{FontID: font.ID, Subsets: len(bundles)}

	changed, err := DetectChange(p.store, filepath.Join(dir, model.MarkerFile), font.LastModified)
	if err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v, rebuilding", font.ID, err), Level: LevelWarning})
	}
	if !changed {
		p.progress(ProgressEvent{Message: fmt.Sprintf("%s is up to date (%s)", font.ID, font.LastModified), Level: LevelInfo})
		p.progress(ProgressEvent{Message: fmt.Sprintf("Finished processing %s", font.ID), Level: LevelSuccess})
		return result, nil
	}
	result.Changed = true

	p.progress(ProgressEvent{Message: fmt.Sprintf("Found font: %s (%d subsets, %d variants)", font.Family, len(bundles), len(font.Variants)), Level: LevelInfo})

	filesDir := filepath.Join(dir, model.FilesDir)
	if err := p.store.EnsureDir(filesDir); err != nil {
		return nil, &WriteError{Path: filesDir, Err: err}
	}

	report := p.fetchAssets(ctx, font.ID, dir, bundles)
	result.Downloads = report.Total
	result.FailedDownloads = report.Failed

	files := stylesheet.Generate(font, bundles)
	for _, f := range files {
		if err := p.writeFile(ctx, filepath.Join(dir, f.Name), []byte(f.Content)); err != nil {
			return nil, err
		}
	}
	result.Stylesheets = len(files)
	p.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %d stylesheets for %s", len(files), font.ID), Level: LevelVerbose})

	if err := p.finalize(ctx, dir, font, bundles); err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error finalizing %s: %v", font.ID, err), Level: LevelError})
		return nil, err
	}

	if len(report.Failed) > 0 {
		p.progress(ProgressEvent{Message: fmt.Sprintf("%s: %d of %d downloads failed", font.ID, len(report.Failed), report.Total), Level: LevelWarning})
	}
	p.progress(ProgressEvent{Message: fmt.Sprintf("Finished processing %s", font.ID), Level: LevelSuccess})

	return result, nil
}

func (p *Packager) writeFile(ctx context.Context, path string, data []byte) error {
	if err := p.store.WriteFile(ctx, path, data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func (p *Packager) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
