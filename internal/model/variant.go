package model

import "fmt"

// Font styles used by the catalog.
const (
	StyleNormal = "normal"
	StyleItalic = "italic"
)

// Font formats downloaded for every variant, in download order.
const (
	FormatWoff  = "woff"
	FormatWoff2 = "woff2"
)

// Formats lists the binary formats fetched for each variant.
var Formats = []string{FormatWoff, FormatWoff2}

// Package layout, relative to the package directory.
const (
	FilesDir        = "files"
	IndexStylesheet = "index.css"
	ReadmeFile      = "README.md"
	ManifestFile    = "package.json"
	MarkerFile      = "last-modified.json"
)

// Variant represents one weight+style combination of a font family.
//
// Variant contains:
//   - Weight and Style used for sorting, naming and CSS descriptors
//   - Locals, the names tried with local() before downloading
//   - One URL per binary format
//
// DownloadFailed is set by the packager after the asset fetch barrier
// when either format could not be downloaded.
type Variant struct {
	// Weight is the weight token as reported by the catalog, e.g. "400".
	Weight string

	// Style is StyleNormal or StyleItalic.
	Style string

	// Locals lists local font names, in catalog order.
	Locals []string

	// WoffURL is the download URL of the woff file.
	WoffURL string

	// Woff2URL is the download URL of the woff2 file.
	Woff2URL string

	// DownloadFailed records whether any format failed to download.
	DownloadFailed bool
}

// URL returns the download URL for the given format, or "" if unknown.
func (v *Variant) URL(format string) string {
	switch format {
	case FormatWoff:
		return v.WoffURL
	case FormatWoff2:
		return v.Woff2URL
	default:
		return ""
	}
}

// SortKey returns the key used by SortVariants.
func (v *Variant) SortKey() string {
	if v.Style == StyleItalic {
		return v.Weight + v.Style
	}
	return v.Weight
}

// FileStyle returns the style token used in file names.
// An empty style is named as normal.
func (v *Variant) FileStyle() string {
	if v.Style == "" {
		return StyleNormal
	}
	return v.Style
}

// FontFileName returns the binary asset name
// {fontID}-{subset}-{weight}-{style}.{ext}.
func FontFileName(fontID, subset, weight, style, ext string) string {
	return fmt.Sprintf("%s-%s-%s-%s.%s", fontID, subset, weight, style, ext)
}

// FilePath returns the CSS reference to the asset of v in subset.
//
// Example:
//
//	FilePath("roboto", "latin", v, "woff2") // "./files/roboto-latin-400-normal.woff2"
func FilePath(fontID, subset string, v *Variant, ext string) string {
	return FilePathWeightStyle(fontID, subset, v.Weight, v.FileStyle(), ext)
}

// FilePathWeight is FilePath with the weight substituted.
func FilePathWeight(fontID, subset string, v *Variant, weight, ext string) string {
	return FilePathWeightStyle(fontID, subset, weight, v.FileStyle(), ext)
}

// FilePathWeightStyle is FilePath with both weight and style substituted.
func FilePathWeightStyle(fontID, subset, weight, style, ext string) string {
	return "./" + FilesDir + "/" + FontFileName(fontID, subset, weight, style, ext)
}
