package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"roboto", "roboto"},
		{"open-sans", "open-sans"},
		{"font:with:colons", "font_with_colons"},
		{"font/with\\slashes", "font_with_slashes"},
		{"../escape", "_escape"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortVariants(t *testing.T) {
	variants := []*Variant{
		{Weight: "700", Style: StyleNormal},
		{Weight: "400", Style: StyleItalic},
		{Weight: "400", Style: StyleNormal, Locals: []string{"first"}},
		{Weight: "300", Style: StyleItalic},
		{Weight: "400", Style: StyleNormal, Locals: []string{"second"}},
	}

	sorted := SortVariants(variants)

	var got []string
	for _, v := range sorted {
		got = append(got, v.SortKey())
	}
	want := []string{"300italic", "400", "400", "400italic", "700"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}

	// Equal keys keep catalog order.
	if sorted[1].Locals[0] != "first" || sorted[2].Locals[0] != "second" {
		t.Errorf("stable order lost: %v, %v", sorted[1].Locals, sorted[2].Locals)
	}

	// Input is not reordered.
	if variants[0].Weight != "700" {
		t.Error("SortVariants modified its input")
	}
}

func TestSortKey_ItalicAfterNormal(t *testing.T) {
	normal := &Variant{Weight: "400", Style: StyleNormal, WoffURL: "a"}
	other := &Variant{Weight: "400", Style: StyleNormal, WoffURL: "b"}
	italic := &Variant{Weight: "400", Style: StyleItalic}

	if normal.SortKey() != other.SortKey() {
		t.Errorf("normal variants of equal weight should share a key: %q vs %q", normal.SortKey(), other.SortKey())
	}
	if !(normal.SortKey() < italic.SortKey()) {
		t.Errorf("italic key %q should sort after %q", italic.SortKey(), normal.SortKey())
	}
}

func TestWeightsAndStyles(t *testing.T) {
	sorted := SortVariants([]*Variant{
		{Weight: "400", Style: StyleNormal},
		{Weight: "400", Style: StyleItalic},
		{Weight: "700", Style: StyleNormal},
	})

	if diff := cmp.Diff([]string{"400", "700"}, Weights(sorted)); diff != "" {
		t.Errorf("Weights() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{StyleNormal, StyleItalic}, Styles(sorted)); diff != "" {
		t.Errorf("Styles() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilePaths(t *testing.T) {
	v := &Variant{Weight: "400", Style: StyleItalic}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"subset", FilePath("roboto", "latin", v, FormatWoff2), "./files/roboto-latin-400-italic.woff2"},
		{"weight", FilePathWeight("roboto", "cyrillic", v, "700", FormatWoff), "./files/roboto-cyrillic-700-italic.woff"},
		{"weight style", FilePathWeightStyle("roboto", "greek", "300", StyleNormal, FormatWoff), "./files/roboto-greek-300-normal.woff"},
		{"asset name", FontFileName("mate-sc", "latin", "400", StyleNormal, FormatWoff), "mate-sc-latin-400-normal.woff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFont_SubsetsWithoutDefault(t *testing.T) {
	font := &Font{DefaultSubset: "latin", Subsets: []string{"cyrillic", "latin", "greek"}}

	if diff := cmp.Diff([]string{"cyrillic", "greek"}, font.SubsetsWithoutDefault()); diff != "" {
		t.Errorf("SubsetsWithoutDefault() mismatch (-want +got):\n%s", diff)
	}
}

func TestPackageDir(t *testing.T) {
	if got, want := PackageDir("/packages", "open-sans"), "/packages/open-sans"; got != want {
		t.Errorf("PackageDir() = %q, want %q", got, want)
	}
}
