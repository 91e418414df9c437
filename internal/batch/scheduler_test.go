package batch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/handiism/webfont-packager/internal/catalog"
	ioutils "github.com/handiism/webfont-packager/internal/io"
	"github.com/handiism/webfont-packager/internal/model"
	"github.com/handiism/webfont-packager/internal/packager"
)

type fakeCatalog struct {
	broken map[string]bool
	delay  time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (c *fakeCatalog) Font(ctx context.Context, fontID string, subsets ...string) (*model.Font, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		peak := c.maxInFlight.Load()
		if n <= peak || c.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(c.delay)

	if c.broken[fontID] {
		return nil, &catalog.FetchError{FontID: fontID, Err: errors.New("HTTP 404: Not Found")}
	}
	return &model.Font{
		ID:            fontID,
		Family:        fontID,
		DefaultSubset: "latin",
		Subsets:       []string{"latin"},
		LastModified:  "2020-01-01",
		Version:       "v1",
		Variants: []*model.Variant{{
			Weight:   "400",
			Style:    model.StyleNormal,
			WoffURL:  "https://cdn.example/" + fontID + ".woff",
			Woff2URL: "https://cdn.example/" + fontID + ".woff2",
		}},
	}, nil
}

type nopFetcher struct{}

func (nopFetcher) DownloadFile(ctx context.Context, url, destPath string) error {
	return nil
}

type eventLog struct {
	mu     sync.Mutex
	events []packager.ProgressEvent
}

func (l *eventLog) add(event packager.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) has(level packager.ProgressLevel, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}

func newScheduler(t *testing.T, cat *fakeCatalog, limit int, log *eventLog) *Scheduler {
	t.Helper()
	p := packager.New(packager.Options{PackagesPath: t.TempDir()}, cat, nopFetcher{}, ioutils.NewFileStore(), nil)
	return NewScheduler(p, limit, log.add)
}

func TestScheduler_Run(t *testing.T) {
	log := &eventLog{}
	s := newScheduler(t, &fakeCatalog{broken: map[string]bool{"missing-font": true}}, 2, log)

	summary := s.Run(context.Background(), []string{"roboto", "missing-font", "lato"})

	if summary.Total != 3 || summary.Packaged != 2 || summary.UpToDate != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if len(summary.Failed) != 1 || summary.Failed[0].FontID != "missing-font" {
		t.Fatalf("Failed = %v, want [missing-font]", summary.Failed)
	}
	var fetchErr *catalog.FetchError
	if !errors.As(summary.Failed[0], &fetchErr) {
		t.Errorf("failure should wrap *catalog.FetchError, got %v", summary.Failed[0].Err)
	}

	done, failed, total := s.Progress()
	if done != 3 || failed != 1 || total != 3 {
		t.Errorf("Progress() = %d, %d, %d; want 3, 1, 3", done, failed, total)
	}

	if !log.has(packager.LevelError, "missing-font experienced an error") {
		t.Error("missing per-font error event")
	}
	if !log.has(packager.LevelSuccess, "[roboto] Finished processing roboto") {
		t.Error("per-font events should be prefixed with the font ID")
	}
	if !log.has(packager.LevelSuccess, "All 3 fonts have been processed.") {
		t.Error("missing completion event")
	}
}

func TestScheduler_RerunIsUpToDate(t *testing.T) {
	s := newScheduler(t, &fakeCatalog{}, 0, &eventLog{})
	ids := []string{"roboto", "lato"}

	if first := s.Run(context.Background(), ids); first.Packaged != 2 {
		t.Fatalf("first run packaged %d fonts, want 2", first.Packaged)
	}
	second := s.Run(context.Background(), ids)
	if second.Packaged != 0 || second.UpToDate != 2 {
		t.Errorf("second run: %+v", second)
	}
}

func TestScheduler_RespectsLimit(t *testing.T) {
	cat := &fakeCatalog{delay: 20 * time.Millisecond}
	s := newScheduler(t, cat, 2, &eventLog{})

	s.Run(context.Background(), []string{"a", "b", "c", "d", "e", "f"})

	if peak := cat.maxInFlight.Load(); peak > 2 {
		t.Errorf("%d fonts ran at once, limit is 2", peak)
	}
}

func TestScheduler_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newScheduler(t, &fakeCatalog{}, 1, &eventLog{})
	summary := s.Run(ctx, []string{"roboto", "lato"})

	if len(summary.Failed) != 2 {
		t.Fatalf("got %d failures, want 2", len(summary.Failed))
	}
	for _, f := range summary.Failed {
		if !errors.Is(f, context.Canceled) {
			t.Errorf("%s: err = %v, want context.Canceled", f.FontID, f.Err)
		}
	}
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"single", []string{"roboto"}, []string{"roboto"}},
		{"comma separated", []string{"roboto,lato, open-sans"}, []string{"roboto", "lato", "open-sans"}},
		{"several args", []string{"Roboto", "lato\nmate-sc"}, []string{"roboto", "lato", "mate-sc"}},
		{"duplicates", []string{"lato,lato", "LATO"}, []string{"lato"}},
		{"empty", []string{" , "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseIDs(tt.input...)); diff != "" {
				t.Errorf("ParseIDs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type fakeLister struct {
	fonts []catalog.FontSummary
	err   error
}

func (l fakeLister) Fonts(ctx context.Context) ([]catalog.FontSummary, error) {
	return l.fonts, l.err
}

func TestAllFontIDs(t *testing.T) {
	ids, err := AllFontIDs(context.Background(), fakeLister{fonts: []catalog.FontSummary{
		{ID: "abel", Family: "Abel"},
		{ID: "roboto", Family: "Roboto"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"abel", "roboto"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	if _, err := AllFontIDs(context.Background(), fakeLister{err: errors.New("boom")}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected lister error, got %v", err)
	}
}
