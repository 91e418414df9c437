package stylesheet

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/handiism/webfont-packager/internal/model"
)

// FontFace holds the values of one @font-face rule.
type FontFace struct {
	FontID    string
	FontName  string
	Locals    []string
	Style     string
	Subset    string
	Weight    string
	WoffPath  string
	Woff2Path string
}

// RenderFontFace renders one @font-face rule.
//
// Example output:
//
//	/* roboto-latin-400-normal */
//	@font-face {
//	  font-family: 'Roboto';
//	  font-style: normal;
//	  font-display: swap;
//	  font-weight: 400;
//	  src:
//	    local('Roboto'),
//	    local('Roboto-Regular'),
//	    url('./files/roboto-latin-400-normal.woff2') format('woff2'),
//	    url('./files/roboto-latin-400-normal.woff') format('woff');
//	}
func RenderFontFace(face FontFace) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("/* %s-%s-%s-%s */\n", face.FontID, face.Subset, face.Weight, face.Style))
	sb.WriteString("@font-face {\n")
	sb.WriteString(fmt.Sprintf("  font-family: '%s';\n", escapeCSS(face.FontName)))
	sb.WriteString(fmt.Sprintf("  font-style: %s;\n", face.Style))
	sb.WriteString("  font-display: swap;\n")
	sb.WriteString(fmt.Sprintf("  font-weight: %s;\n", face.Weight))
	sb.WriteString("  src:\n")
	for _, local := range face.Locals {
		sb.WriteString(fmt.Sprintf("    local('%s'),\n", escapeCSS(local)))
	}
	sb.WriteString(fmt.Sprintf("    url('%s') format('woff2'),\n", face.Woff2Path))
	sb.WriteString(fmt.Sprintf("    url('%s') format('woff');\n", face.WoffPath))
	sb.WriteString("}\n\n")

	return sb.String()
}

// escapeCSS escapes a value placed inside a single-quoted CSS string.
func escapeCSS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

// ManifestConfig holds the package.json values that do not come from the catalog.
type ManifestConfig struct {
	// NameFormat is the npm package name, "{id}" is replaced with the font ID.
	NameFormat string

	Version       string
	License       string
	Author        string
	RepositoryURL string
}

// PackageName returns the npm package name of fontID.
func (c *ManifestConfig) PackageName(fontID string) string {
	return strings.ReplaceAll(c.NameFormat, "{id}", fontID)
}

type manifest struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Main        string              `json:"main"`
	Keywords    []string            `json:"keywords"`
	Author      string              `json:"author,omitempty"`
	License     string              `json:"license"`
	Repository  *manifestRepository `json:"repository,omitempty"`
}

type manifestRepository struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RenderManifest renders the package.json document of font.
func RenderManifest(font *model.Font, cfg *ManifestConfig) (string, error) {
	m := manifest{
		Name:        cfg.PackageName(font.ID),
		Version:     cfg.Version,
		Description: fmt.Sprintf("Self-host the %s font in a neatly bundled package.", font.Family),
		Main:        model.IndexStylesheet,
		Keywords:    []string{"typeface", "font", "font family", "self-host", font.ID, font.Family},
		Author:      cfg.Author,
		License:     cfg.License,
	}
	if font.Category != "" {
		m.Keywords = append(m.Keywords, font.Category)
	}
	if cfg.RepositoryURL != "" {
		m.Repository = &manifestRepository{Type: "git", URL: cfg.RepositoryURL}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// ReadmeData holds the values rendered into README.md.
type ReadmeData struct {
	FontID      string
	FontName    string
	PackageName string
	Subsets     []string
	Weights     []string
	Styles      []string
}

var readmeTemplate = template.Must(template.New("readme").Parse(`# {{.FontName}}

The CSS and web font files to easily self-host "{{.FontName}}".

## Install

` + "`npm install --save {{.PackageName}}`" + `

## Use

Each package includes all font files (woff2, woff) and CSS files with
@font-face declarations pointing at them. Load the default stylesheet in
your application's entry file:

` + "```javascript" + `
// Load {{.FontName}} typeface
import "{{.PackageName}}"
` + "```" + `

Individual subsets, weights and styles can be imported on their own:

` + "```javascript" + `
{{- $pkg := .PackageName}}{{range .Subsets}}
import "{{$pkg}}/{{.}}.css"
{{- end}}
` + "```" + `

Available weights: {{range $i, $w := .Weights}}{{if $i}}, {{end}}{{$w}}{{end}}.
Available styles: {{range $i, $s := .Styles}}{{if $i}}, {{end}}{{$s}}{{end}}.

Stylesheets are named ` + "`{subset}-{weight}.css`" + ` and ` + "`{subset}-{weight}-{style}.css`" + `.

## About

Fonts are taken from Google Fonts. Check them out at
https://fonts.google.com/specimen/{{urlquery .FontName}}
`))

// RenderReadme renders README.md.
func RenderReadme(data ReadmeData) (string, error) {
	var sb strings.Builder
	if err := readmeTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
