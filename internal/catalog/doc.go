// Package catalog talks to the font catalog API and turns its JSON into
// validated model values.
//
// The package handles two main use cases:
//
//  1. Fetching one font descriptor, optionally constrained to a subset pair
//  2. Resolving every subset of a font into model.SubsetBundle values
//
// # Fetching a Font
//
//	client := catalog.NewClient(baseURL, http.NewClient(nil))
//	font, err := client.Font(ctx, "roboto")
//	cyrillic, err := client.Font(ctx, "roboto", "latin", "cyrillic")
//
// # Resolving Subsets
//
// The API returns different asset URLs depending on which subsets are
// requested together, so every non-default subset is fetched paired with
// the default one:
//
//	bundles, err := catalog.ResolveSubsets(ctx, client, "roboto")
//	// bundles[0] = {latin, base descriptor}
//	// bundles[1] = {cyrillic, descriptor for ?subsets=latin,cyrillic}
//
// # Listing the Catalog
//
//	fonts, err := client.Fonts(ctx)
//
// Any network or decoding failure is returned as *FetchError.
package catalog
