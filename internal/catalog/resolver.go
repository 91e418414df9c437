package catalog

import (
	"context"

	"github.com/handiism/webfont-packager/internal/model"
)

// FontFetcher fetches one font descriptor, optionally constrained to subsets.
//
// *Client implements FontFetcher.
type FontFetcher interface {
	Font(ctx context.Context, fontID string, subsets ...string) (*model.Font, error)
}

// ResolveSubsets fetches the descriptor of fontID and one descriptor per
// non-default subset, each constrained to {default, subset}.
//
// The result starts with (DefaultSubset, base descriptor) followed by the
// remaining subsets in catalog order. If any request fails, no bundles are
// returned: a font is never packaged with incomplete subset data.
func ResolveSubsets(ctx context.Context, fetcher FontFetcher, fontID string) ([]model.SubsetBundle, error) {
	base, err := fetcher.Font(ctx, fontID)
	if err != nil {
		return nil, err
	}

	others := base.SubsetsWithoutDefault()
	bundles := make([]model.SubsetBundle, 0, len(others)+1)
	bundles = append(bundles, model.SubsetBundle{Subset: base.DefaultSubset, Font: base})

	for _, subset := range others {
		font, err := fetcher.Font(ctx, fontID, base.DefaultSubset, subset)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, model.SubsetBundle{Subset: subset, Font: font})
	}

	return bundles, nil
}
