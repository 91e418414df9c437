package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/handiism/webfont-packager/internal/model"
)

// WeightToken is a font weight that the catalog may encode either as a
// JSON string ("400") or as a number (400).
type WeightToken string

// UnmarshalJSON accepts both "400" and 400.
func (w *WeightToken) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WeightToken(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unable to parse font weight: %s", data)
	}
	*w = WeightToken(n.String())
	return nil
}

// JSONFont represents one font as returned by GET /api/fonts/{id}.
type JSONFont struct {
	ID           string        `json:"id"`
	Family       string        `json:"family"`
	Subsets      []string      `json:"subsets"`
	Category     string        `json:"category"`
	Version      string        `json:"version"`
	LastModified string        `json:"lastModified"`
	DefSubset    string        `json:"defSubset"`
	DefVariant   string        `json:"defVariant"`
	Variants     []JSONVariant `json:"variants"`
}

// JSONVariant represents one entry of the variants array.
type JSONVariant struct {
	ID         string      `json:"id"`
	FontFamily string      `json:"fontFamily"`
	FontStyle  string      `json:"fontStyle"`
	FontWeight WeightToken `json:"fontWeight"`
	Local      []string    `json:"local"`
	Woff       string      `json:"woff"`
	Woff2      string      `json:"woff2"`
}

// JSONFontSummary represents one entry of GET /api/fonts.
type JSONFontSummary struct {
	ID           string   `json:"id"`
	Family       string   `json:"family"`
	Subsets      []string `json:"subsets"`
	Category     string   `json:"category"`
	LastModified string   `json:"lastModified"`
}

// ToFont validates jf and converts it to a model.Font.
//
// Every field the packager later formats into file names or stylesheets
// is checked here, so a shape mismatch fails the run up front.
func (jf *JSONFont) ToFont() (*model.Font, error) {
	if jf.ID == "" {
		return nil, fmt.Errorf("font has no id")
	}
	if jf.Family == "" {
		return nil, fmt.Errorf("font %s has no family", jf.ID)
	}
	if len(jf.Subsets) == 0 {
		return nil, fmt.Errorf("font %s has no subsets", jf.ID)
	}
	if !slices.Contains(jf.Subsets, jf.DefSubset) {
		return nil, fmt.Errorf("font %s: default subset %q is not one of %v", jf.ID, jf.DefSubset, jf.Subsets)
	}
	if jf.LastModified == "" {
		return nil, fmt.Errorf("font %s has no lastModified", jf.ID)
	}
	if len(jf.Variants) == 0 {
		return nil, fmt.Errorf("font %s has no variants", jf.ID)
	}

	font := &model.Font{
		ID:            jf.ID,
		Family:        jf.Family,
		Category:      jf.Category,
		DefaultSubset: jf.DefSubset,
		Subsets:       append([]string(nil), jf.Subsets...),
		LastModified:  jf.LastModified,
		Version:       jf.Version,
	}

	for i := range jf.Variants {
		variant, err := jf.Variants[i].ToVariant()
		if err != nil {
			return nil, fmt.Errorf("font %s: variant %d: %w", jf.ID, i, err)
		}
		font.Variants = append(font.Variants, variant)
	}

	return font, nil
}

// ToVariant validates jv and converts it to a model.Variant.
func (jv *JSONVariant) ToVariant() (*model.Variant, error) {
	if jv.FontWeight == "" {
		return nil, fmt.Errorf("missing fontWeight")
	}
	switch jv.FontStyle {
	case model.StyleNormal, model.StyleItalic:
	default:
		return nil, fmt.Errorf("unsupported fontStyle %q", jv.FontStyle)
	}
	if jv.Woff == "" || jv.Woff2 == "" {
		return nil, fmt.Errorf("%s %s: missing woff or woff2 url", jv.FontWeight, jv.FontStyle)
	}

	return &model.Variant{
		Weight:   string(jv.FontWeight),
		Style:    jv.FontStyle,
		Locals:   append([]string(nil), jv.Local...),
		WoffURL:  jv.Woff,
		Woff2URL: jv.Woff2,
	}, nil
}
