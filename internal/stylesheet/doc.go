// Package stylesheet renders @font-face rules, package READMEs and
// manifests, and generates the full stylesheet matrix of a font package.
//
// # Matrix
//
// Generate is a pure function from resolved catalog data to files:
//
//	files := stylesheet.Generate(font, bundles)
//	for _, f := range files {
//	    store.WriteFile(ctx, filepath.Join(dir, f.Name), []byte(f.Content))
//	}
//
// For every subset it produces {subset}.css, {subset}-{weight}.css and
// {subset}-{weight}-{style}.css, plus index.css for the latin subset or
// the only subset of a font. Output only depends on the sorted variant
// list, so identical catalog data always yields identical bytes.
//
// # Templates
//
//	css := stylesheet.RenderFontFace(stylesheet.FontFace{...})
//	readme, err := stylesheet.RenderReadme(stylesheet.ReadmeData{...})
//	manifest, err := stylesheet.RenderManifest(font, cfg)
package stylesheet
