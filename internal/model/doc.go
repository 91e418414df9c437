// Package model defines the core data structures used throughout
// the webfont packager.
//
// # Font
//
// Font is the validated descriptor of one catalog font family:
//
//	font := &model.Font{ID: "roboto", Family: "Roboto", DefaultSubset: "latin", ...}
//	variants := model.SortVariants(font.Variants)
//
// # Variant
//
// Variant is one weight+style combination with its woff/woff2 URLs.
// Its DownloadFailed flag is set by the packager when an asset fetch fails.
//
// # Subset Bundles
//
// SubsetBundle pairs a subset name with the descriptor fetched for it:
//
//	bundles := []model.SubsetBundle{
//	    {Subset: "latin", Font: base},
//	    {Subset: "cyrillic", Font: cyrillic},
//	}
//
// # Package Layout
//
// File names inside a package follow one convention:
//
//	model.FontFileName("roboto", "latin", "400", "italic", "woff2")
//	// "roboto-latin-400-italic.woff2"
//
// The FilePath helpers return the "./files/..." form referenced from CSS.
package model
