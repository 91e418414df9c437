package batch

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/handiism/webfont-packager/internal/catalog"
	"github.com/handiism/webfont-packager/internal/packager"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of fonts packaged at once when no limit
// is configured.
const DefaultConcurrency = 12

// FontError is a font whose pipeline run failed.
type FontError struct {
	FontID string
	Err    error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("%s: %v", e.FontID, e.Err)
}

func (e *FontError) Unwrap() error {
	return e.Err
}

// Summary is the outcome of a batch run.
type Summary struct {
	Total int

	// Packaged counts fonts that were rebuilt, UpToDate those that were skipped.
	Packaged int
	UpToDate int

	FailedDownloads int
	Failed          []*FontError
}

// Scheduler runs the packaging pipeline over a list of font IDs.
type Scheduler struct {
	packager *packager.Packager
	limit    int

	onProgress func(packager.ProgressEvent)

	total  atomic.Int32
	done   atomic.Int32
	failed atomic.Int32
}

// NewScheduler creates a Scheduler running at most limit fonts at once.
// A limit <= 0 selects DefaultConcurrency.
func NewScheduler(p *packager.Packager, limit int, onProgress func(packager.ProgressEvent)) *Scheduler {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Scheduler{
		packager:   p,
		limit:      limit,
		onProgress: onProgress,
	}
}

// Run packages every font in fontIDs and waits for all of them.
//
// A failing font is reported and recorded in the Summary; it never stops
// the others. Fonts not yet started when ctx is cancelled fail with the
// context error.
func (s *Scheduler) Run(ctx context.Context, fontIDs []string) *Summary {
	s.total.Store(int32(len(fontIDs)))
	s.done.Store(0)
	s.failed.Store(0)

	results := make([]*packager.Result, len(fontIDs))
	errs := make([]error, len(fontIDs))

	var g errgroup.Group
	g.SetLimit(s.limit)

	for i, id := range fontIDs {
		g.Go(func() error {
			defer s.done.Add(1)

			if err := ctx.Err(); err != nil {
				errs[i] = err
				s.failed.Add(1)
				return nil
			}

			s.progress(packager.ProgressEvent{Message: fmt.Sprintf("Packaging %s", id), Level: packager.LevelInfo})

			p := s.packager.WithProgress(func(event packager.ProgressEvent) {
				event.Message = fmt.Sprintf("[%s] %s", id, event.Message)
				s.progress(event)
			})

			results[i], errs[i] = p.Package(ctx, id)
			if errs[i] != nil {
				s.failed.Add(1)
				s.progress(packager.ProgressEvent{Message: fmt.Sprintf("%s experienced an error", id), Level: packager.LevelError})
			}
			return nil
		})
	}
	g.Wait()

	summary := &Summary{Total: len(fontIDs)}
	for i, err := range errs {
		if err != nil {
			summary.Failed = append(summary.Failed, &FontError{FontID: fontIDs[i], Err: err})
			continue
		}
		if results[i].Changed {
			summary.Packaged++
		} else {
			summary.UpToDate++
		}
		summary.FailedDownloads += len(results[i].FailedDownloads)
	}

	s.progress(packager.ProgressEvent{Message: fmt.Sprintf("All %d fonts have been processed.", len(fontIDs)), Level: packager.LevelSuccess})

	return summary
}

// Progress returns the number of finished and failed fonts and the total
// of the current run. It is safe to call while Run is in progress.
func (s *Scheduler) Progress() (done, failed, total int) {
	return int(s.done.Load()), int(s.failed.Load()), int(s.total.Load())
}

func (s *Scheduler) progress(event packager.ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}

// Lister lists the catalog. *catalog.Client implements it.
type Lister interface {
	Fonts(ctx context.Context) ([]catalog.FontSummary, error)
}

// AllFontIDs returns the ID of every font in the catalog, in catalog order.
func AllFontIDs(ctx context.Context, lister Lister) ([]string, error) {
	fonts, err := lister.Fonts(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(fonts))
	for _, f := range fonts {
		ids = append(ids, f.ID)
	}
	return ids, nil
}

// ParseIDs splits input on commas and whitespace, dropping empty and
// duplicate entries. IDs are lower-cased.
func ParseIDs(input ...string) []string {
	var ids []string
	seen := make(map[string]bool)

	for _, in := range input {
		fields := strings.FieldsFunc(in, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		for _, f := range fields {
			id := strings.ToLower(f)
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids
}
