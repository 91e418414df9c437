package packager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/handiism/webfont-packager/internal/model"
	"golang.org/x/sync/errgroup"
)

// DownloadReport is the outcome of fetching every asset of a font.
type DownloadReport struct {
	Total  int
	Failed []*DownloadError
}

type assetTask struct {
	variant *model.Variant
	url     string
	dest    string
}

// assetTasks lists one task per format, variant and subset, in bundle order.
func assetTasks(fontID, dir string, bundles []model.SubsetBundle) []assetTask {
	var tasks []assetTask
	for _, bundle := range bundles {
		for _, v := range bundle.Font.Variants {
			for _, format := range model.Formats {
				name := model.FontFileName(fontID, bundle.Subset, v.Weight, v.FileStyle(), format)
				tasks = append(tasks, assetTask{
					variant: v,
					url:     v.URL(format),
					dest:    filepath.Join(dir, model.FilesDir, name),
				})
			}
		}
	}
	return tasks
}

// fetchAssets downloads every asset of bundles and waits for all of them.
//
// Each task stores its outcome in its own slot, so no state is shared
// between goroutines. Failures never stop the other downloads; after the
// barrier they mark their variant and are reported in task order.
func (p *Packager) fetchAssets(ctx context.Context, fontID, dir string, bundles []model.SubsetBundle) *DownloadReport {
	tasks := assetTasks(fontID, dir, bundles)
	errs := make([]error, len(tasks))

	var g errgroup.Group
	if p.opts.MaxConcurrentDownloads > 0 {
		g.SetLimit(p.opts.MaxConcurrentDownloads)
	}

	for i, task := range tasks {
		task.variant.DownloadFailed = false
		g.Go(func() error {
			errs[i] = p.fetcher.DownloadFile(ctx, task.url, task.dest)
			return nil
		})
	}
	g.Wait()

	report := &DownloadReport{Total: len(tasks)}
	for i, err := range errs {
		if err == nil {
			p.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(tasks[i].dest)), Level: LevelVerbose})
			continue
		}
		tasks[i].variant.DownloadFailed = true
		report.Failed = append(report.Failed, &DownloadError{
			FontID: fontID,
			URL:    tasks[i].url,
			Dest:   tasks[i].dest,
			Err:    err,
		})
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s %s: %v", fontID, tasks[i].url, err), Level: LevelError})
	}

	return report
}
