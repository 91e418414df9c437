package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	fonthttp "github.com/handiism/webfont-packager/internal/http"
)

// fakeGetter serves canned bodies keyed by URL and records requests.
type fakeGetter struct {
	bodies   map[string]string
	requests []string
}

func (g *fakeGetter) Get(ctx context.Context, url string) ([]byte, error) {
	g.requests = append(g.requests, url)
	body, ok := g.bodies[url]
	if !ok {
		return nil, fmt.Errorf("HTTP 404: not found")
	}
	return []byte(body), nil
}

const base = "https://fonts.example/api/fonts/"

func fontJSON(subsets, woffSuffix string) string {
	return fmt.Sprintf(`{
		"id": "arbutus",
		"family": "Arbutus",
		"subsets": %s,
		"category": "display",
		"version": "v9",
		"lastModified": "2019-07-16",
		"defSubset": "latin",
		"variants": [
			{"id": "regular", "fontStyle": "normal", "fontWeight": "400",
			 "local": ["Arbutus Regular", "Arbutus-Regular"],
			 "woff": "https://cdn.example/arbutus%s.woff",
			 "woff2": "https://cdn.example/arbutus%s.woff2"}
		]
	}`, subsets, woffSuffix, woffSuffix)
}

func TestClient_FontURL(t *testing.T) {
	client := NewClient("https://fonts.example/api/fonts", nil)

	tests := []struct {
		name    string
		subsets []string
		want    string
	}{
		{"unconstrained", nil, "https://fonts.example/api/fonts/roboto"},
		{"pair", []string{"latin", "cyrillic-ext"}, "https://fonts.example/api/fonts/roboto?subsets=latin,cyrillic-ext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.FontURL("roboto", tt.subsets...); got != tt.want {
				t.Errorf("FontURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Font(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		base + "arbutus": fontJSON(`["latin", "latin-ext"]`, ""),
	}}

	font, err := NewClient(base, getter).Font(context.Background(), "arbutus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if font.Family != "Arbutus" || font.DefaultSubset != "latin" || font.LastModified != "2019-07-16" {
		t.Errorf("unexpected font: %+v", font)
	}
	if len(font.Variants) != 1 {
		t.Fatalf("got %d variants, want 1", len(font.Variants))
	}
	v := font.Variants[0]
	if v.Weight != "400" || v.Style != "normal" || v.Woff2URL != "https://cdn.example/arbutus.woff2" {
		t.Errorf("unexpected variant: %+v", v)
	}
	if diff := cmp.Diff([]string{"Arbutus Regular", "Arbutus-Regular"}, v.Locals); diff != "" {
		t.Errorf("Locals mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FontErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id": "arbutus",`},
		{"missing family", `{"id": "arbutus", "subsets": ["latin"], "defSubset": "latin", "lastModified": "x", "variants": [{}]}`},
		{"default subset not listed", `{"id": "arbutus", "family": "A", "subsets": ["greek"], "defSubset": "latin", "lastModified": "x", "variants": [{}]}`},
		{"bad style", `{"id": "arbutus", "family": "A", "subsets": ["latin"], "defSubset": "latin", "lastModified": "x",
			"variants": [{"fontStyle": "oblique", "fontWeight": "400", "woff": "a", "woff2": "b"}]}`},
		{"missing woff2", `{"id": "arbutus", "family": "A", "subsets": ["latin"], "defSubset": "latin", "lastModified": "x",
			"variants": [{"fontStyle": "normal", "fontWeight": "400", "woff": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := &fakeGetter{bodies: map[string]string{base + "arbutus": tt.body}}

			_, err := NewClient(base, getter).Font(context.Background(), "arbutus")

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %v", err)
			}
			if fetchErr.FontID != "arbutus" {
				t.Errorf("FontID = %q", fetchErr.FontID)
			}
		})
	}
}

func TestResolveSubsets(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		base + "arbutus":                         fontJSON(`["cyrillic", "latin", "latin-ext"]`, ""),
		base + "arbutus?subsets=latin,cyrillic":  fontJSON(`["cyrillic", "latin", "latin-ext"]`, "-cyr"),
		base + "arbutus?subsets=latin,latin-ext": fontJSON(`["cyrillic", "latin", "latin-ext"]`, "-ext"),
	}}

	bundles, err := ResolveSubsets(context.Background(), NewClient(base, getter), "arbutus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, b := range bundles {
		names = append(names, b.Subset)
	}
	if diff := cmp.Diff([]string{"latin", "cyrillic", "latin-ext"}, names); diff != "" {
		t.Errorf("bundle order mismatch (-want +got):\n%s", diff)
	}

	if got := bundles[1].Font.Variants[0].WoffURL; got != "https://cdn.example/arbutus-cyr.woff" {
		t.Errorf("cyrillic bundle should carry subset specific URLs, got %q", got)
	}
	if got := bundles[2].Font.Variants[0].WoffURL; got != "https://cdn.example/arbutus-ext.woff" {
		t.Errorf("latin-ext bundle should carry subset specific URLs, got %q", got)
	}
	if len(getter.requests) != 3 {
		t.Errorf("made %d requests, want 3", len(getter.requests))
	}
}

func TestResolveSubsets_FailureAborts(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		base + "arbutus":                         fontJSON(`["latin", "latin-ext", "vietnamese"]`, ""),
		base + "arbutus?subsets=latin,latin-ext": fontJSON(`["latin", "latin-ext", "vietnamese"]`, "-ext"),
	}}

	bundles, err := ResolveSubsets(context.Background(), NewClient(base, getter), "arbutus")
	if err == nil {
		t.Fatal("expected error when a subset request fails")
	}
	if bundles != nil {
		t.Errorf("expected no bundles, got %d", len(bundles))
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("expected *FetchError, got %T", err)
	}
}

func TestClient_FontsOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fonts/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[
			{"id": "roboto", "family": "Roboto", "subsets": ["latin"], "category": "sans-serif", "lastModified": "2020-01-01"},
			{"family": "No ID"},
			{"id": "lato", "family": "Lato", "subsets": ["latin", "latin-ext"]}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/fonts/", fonthttp.NewClient(nil))
	fonts, err := client.Fonts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []string
	for _, f := range fonts {
		ids = append(ids, f.ID)
	}
	if diff := cmp.Diff([]string{"roboto", "lato"}, ids); diff != "" {
		t.Errorf("font ids mismatch (-want +got):\n%s", diff)
	}
}
