package stylesheet

import (
	"strings"

	"github.com/handiism/webfont-packager/internal/model"
)

// File is one generated stylesheet.
type File struct {
	// Name is the path relative to the package directory.
	Name string

	// Content is the rendered CSS.
	Content string
}

// Generate returns every stylesheet of a font package, in write order.
//
// font supplies the canonical variant list; bundles supply the subsets,
// default subset first. For each subset the result contains:
//
//  1. {subset}.css with one rule per variant
//  2. index.css, a copy of (1) for "latin" or for the only subset of a font
//  3. {subset}-{weight}.css per distinct weight, with the rules of that weight
//  4. {subset}-{weight}-{style}.css per distinct style, with the first
//     variant of that weight and style; the file is empty when there is none
//
// Weights and styles are taken in first-seen order of the sorted variants.
func Generate(font *model.Font, bundles []model.SubsetBundle) []File {
	variants := model.SortVariants(font.Variants)
	weights := model.Weights(variants)
	styles := model.Styles(variants)
	single := len(bundles) == 1

	var files []File
	for _, bundle := range bundles {
		files = append(files, subsetFiles(font, bundle.Subset, single, variants, weights, styles)...)
	}
	return files
}

func subsetFiles(font *model.Font, subset string, single bool, variants []*model.Variant, weights, styles []string) []File {
	content := subsetCSS(font, subset, variants)
	files := []File{{Name: subset + ".css", Content: content}}

	if subset == "latin" || single {
		files = append(files, File{Name: model.IndexStylesheet, Content: content})
	}

	for _, weight := range weights {
		files = append(files, File{
			Name:    subset + "-" + weight + ".css",
			Content: weightCSS(font, subset, weight, variants),
		})

		for _, style := range styles {
			files = append(files, File{
				Name:    subset + "-" + weight + "-" + style + ".css",
				Content: weightStyleCSS(font, subset, weight, style, variants),
			})
		}
	}

	return files
}

func subsetCSS(font *model.Font, subset string, variants []*model.Variant) string {
	var sb strings.Builder
	for _, v := range variants {
		sb.WriteString(RenderFontFace(FontFace{
			FontID:    font.ID,
			FontName:  font.Family,
			Locals:    v.Locals,
			Style:     v.Style,
			Subset:    subset,
			Weight:    v.Weight,
			WoffPath:  model.FilePath(font.ID, subset, v, model.FormatWoff),
			Woff2Path: model.FilePath(font.ID, subset, v, model.FormatWoff2),
		}))
	}
	return sb.String()
}

func weightCSS(font *model.Font, subset, weight string, variants []*model.Variant) string {
	var sb strings.Builder
	for _, v := range variants {
		if v.Weight != weight {
			continue
		}
		sb.WriteString(RenderFontFace(FontFace{
			FontID:    font.ID,
			FontName:  font.Family,
			Locals:    v.Locals,
			Style:     v.Style,
			Subset:    subset,
			Weight:    weight,
			WoffPath:  model.FilePathWeight(font.ID, subset, v, weight, model.FormatWoff),
			Woff2Path: model.FilePathWeight(font.ID, subset, v, weight, model.FormatWoff2),
		}))
	}
	return sb.String()
}

// weightStyleCSS renders the first variant matching weight and style, or
// nothing when the pair does not exist. Later matches, e.g. duplicate
// locale entries upstream, are dropped.
func weightStyleCSS(font *model.Font, subset, weight, style string, variants []*model.Variant) string {
	for _, v := range variants {
		if v.Weight != weight || v.Style != style {
			continue
		}
		return RenderFontFace(FontFace{
			FontID:    font.ID,
			FontName:  font.Family,
			Locals:    v.Locals,
			Style:     style,
			Subset:    subset,
			Weight:    weight,
			WoffPath:  model.FilePathWeightStyle(font.ID, subset, weight, style, model.FormatWoff),
			Woff2Path: model.FilePathWeightStyle(font.ID, subset, weight, style, model.FormatWoff2),
		})
	}
	return ""
}
