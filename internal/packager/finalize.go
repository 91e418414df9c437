package packager

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/handiism/webfont-packager/internal/model"
	"github.com/handiism/webfont-packager/internal/stylesheet"
)

// finalize writes README.md, package.json and the change marker.
//
// An existing package.json is left untouched. The marker is written last
// so that a failure anywhere before it makes the next run rebuild.
func (p *Packager) finalize(ctx context.Context, dir string, font *model.Font, bundles []model.SubsetBundle) error {
	variants := model.SortVariants(font.Variants)
	subsets := make([]string, len(bundles))
	for i, b := range bundles {
		subsets[i] = b.Subset
	}

	readme, err := stylesheet.RenderReadme(stylesheet.ReadmeData{
		FontID:      font.ID,
		FontName:    font.Family,
		PackageName: p.opts.Manifest.PackageName(font.ID),
		Subsets:     subsets,
		Weights:     model.Weights(variants),
		Styles:      model.Styles(variants),
	})
	if err != nil {
		return fmt.Errorf("render readme: %w", err)
	}
	if err := p.writeFile(ctx, filepath.Join(dir, model.ReadmeFile), []byte(readme)); err != nil {
		return err
	}

	manifestPath := filepath.Join(dir, model.ManifestFile)
	if p.store.Exists(manifestPath) {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Keeping existing %s", manifestPath), Level: LevelVerbose})
	} else {
		manifest, err := stylesheet.RenderManifest(font, p.opts.Manifest)
		if err != nil {
			return fmt.Errorf("render manifest: %w", err)
		}
		if err := p.writeFile(ctx, manifestPath, []byte(manifest)); err != nil {
			return err
		}
	}

	marker, err := json.MarshalIndent(model.ChangeMarker{
		LastModified: font.LastModified,
		Version:      font.Version,
	}, "", "  ")
	if err != nil {
		return err
	}
	return p.writeFile(ctx, filepath.Join(dir, model.MarkerFile), append(marker, '\n'))
}
