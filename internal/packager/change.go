package packager

import (
	"errors"
	"fmt"
	"os"

	"github.com/handiism/webfont-packager/internal/model"
)

// DetectChange reports whether the package whose marker lives at
// markerPath must be rebuilt for lastModified.
//
// A missing marker or a different lastModified means changed. A marker that
// exists but cannot be read also counts as changed; the read error is
// returned alongside so the caller can report it.
func DetectChange(store Storage, markerPath, lastModified string) (bool, error) {
	var marker model.ChangeMarker
	if err := store.ReadJSON(markerPath, &marker); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return true, fmt.Errorf("unreadable change marker: %w", err)
	}
	return marker.LastModified != lastModified, nil
}
