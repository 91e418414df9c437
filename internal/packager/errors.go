package packager

import "fmt"

// DownloadError records one failed asset download.
type DownloadError struct {
	FontID string
	URL    string
	Dest   string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s for %s: %v", e.URL, e.FontID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// WriteError reports a failure to persist a package file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
