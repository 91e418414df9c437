package model

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Font represents one font family as described by the catalog API.
//
// Font is created fresh for every packaging run and never cached. The
// Variants slice keeps the order the catalog returned; use SortVariants
// to obtain the canonical stylesheet order.
//
// Example:
//
//	font := &Font{
//	    ID:            "noticia-text",
//	    Family:        "Noticia Text",
//	    DefaultSubset: "latin",
//	    Subsets:       []string{"latin", "latin-ext", "vietnamese"},
//	    LastModified:  "2019-07-17",
//	    Version:       "v8",
//	}
type Font struct {
	// ID is the catalog identifier, also used as the package directory name.
	ID string

	// Family is the human readable family name used in font-family rules.
	Family string

	// Category is the catalog classification (serif, sans-serif, ...).
	Category string

	// DefaultSubset is the subset the unconstrained catalog call returns.
	DefaultSubset string

	// Subsets lists every subset in catalog order.
	Subsets []string

	// LastModified is an opaque version token compared verbatim
	// against the persisted change marker.
	LastModified string

	// Version is the upstream font version, recorded in the marker.
	Version string

	// Variants contains one entry per weight+style combination.
	Variants []*Variant
}

// SubsetsWithoutDefault returns Subsets minus DefaultSubset, in catalog order.
func (f *Font) SubsetsWithoutDefault() []string {
	var subsets []string
	for _, subset := range f.Subsets {
		if subset != f.DefaultSubset {
			subsets = append(subsets, subset)
		}
	}
	return subsets
}

// SubsetBundle pairs a subset name with the descriptor fetched for it.
//
// The first bundle of a resolution is always (DefaultSubset, base
// descriptor); the others come from catalog calls constrained to the
// subset pair {DefaultSubset, Subset}, so their variant URLs are
// specific to that subset.
type SubsetBundle struct {
	Subset string
	Font   *Font
}

// ChangeMarker is the persisted record of the last packaged upstream version.
//
// It is the only state carried from one run to the next.
type ChangeMarker struct {
	LastModified string `json:"lastModified"`
	Version      string `json:"version"`
}

// SortVariants returns a stably sorted copy of variants.
//
// The sort key is the weight token, with "italic" appended for italic
// variants only. Keys are compared as plain strings, so normal variants
// of the same weight compare equal and keep their catalog order, and an
// italic variant always follows the normal variants of its weight.
func SortVariants(variants []*Variant) []*Variant {
	sorted := make([]*Variant, len(variants))
	copy(sorted, variants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortKey() < sorted[j].SortKey()
	})
	return sorted
}

// Weights returns the distinct weights of variants in first-seen order.
func Weights(variants []*Variant) []string {
	return distinct(variants, func(v *Variant) string { return v.Weight })
}

// Styles returns the distinct styles of variants in first-seen order.
func Styles(variants []*Variant) []string {
	return distinct(variants, func(v *Variant) string { return v.Style })
}

func distinct(variants []*Variant, key func(*Variant) string) []string {
	seen := make(map[string]struct{}, len(variants))
	var values []string
	for _, v := range variants {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	return values
}

// PackageDir returns the directory of a font package below root.
//
// The font ID is sanitized so user input cannot escape root.
func PackageDir(root, fontID string) string {
	return filepath.Join(root, sanitizeFileName(fontID))
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Leading and trailing dots are removed
//   - Whitespace runs are collapsed to a single space, trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("../open sans") // Returns "_open sans"
func sanitizeFileName(name string) string {
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	name = regexp.MustCompile(`^\.+|\.+$`).ReplaceAllString(name, "")

	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	name = strings.TrimRight(name, " ")

	return name
}
