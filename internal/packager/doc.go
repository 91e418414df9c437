// Package packager turns one catalog font into a self-contained font
// package on disk.
//
// # Packager
//
// The Packager runs the pipeline for a single font ID:
//
//  1. Resolve the font and one descriptor per subset from the catalog
//  2. Compare lastModified with the package's last-modified.json
//  3. Download woff and woff2 for every variant of every subset concurrently
//  4. Generate the stylesheet matrix
//  5. Write README.md, package.json (unless present) and last-modified.json
//
// An unchanged font ends the run after step 2 without touching the disk.
//
// # Basic Usage
//
//	p := packager.NewPackager(settings, func(event packager.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := p.Package(ctx, "roboto")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d downloads failed\n", len(result.FailedDownloads))
//
// # Failures
//
// A failed download marks its variant, is reported as a LevelError event
// and collected in Result.FailedDownloads; stylesheets are still generated
// for it. Catalog errors (*catalog.FetchError) and write errors
// (*WriteError) abort the run before the change marker is updated, so the
// next run retries the font.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package packager
