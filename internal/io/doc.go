// Package ioutils provides the file system capability used by the packager.
//
// FileStore implements the small storage surface the pipeline needs:
//
//	store := ioutils.NewFileStore()
//
//	// Write generated content, creating parent directories
//	err := store.WriteFile(ctx, "/packages/roboto/latin.css", css)
//
//	// Check for a user-edited manifest
//	if store.Exists("/packages/roboto/package.json") { ... }
//
//	// Decode a persisted marker
//	var marker model.ChangeMarker
//	err = store.ReadJSON("/packages/roboto/last-modified.json", &marker)
//
// Directories are created with mode 0755, files with mode 0644.
package ioutils
