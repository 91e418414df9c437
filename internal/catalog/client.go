package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/webfont-packager/internal/catalog/dto"
	"github.com/handiism/webfont-packager/internal/model"
)

// Getter performs GET requests and returns the response body.
//
// *http.Client from internal/http implements Getter.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// FetchError reports a failed catalog request or an unusable response.
type FetchError struct {
	FontID string
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	if e.FontID == "" {
		return fmt.Sprintf("catalog %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("catalog font %s (%s): %v", e.FontID, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FontSummary is one entry of the catalog listing.
type FontSummary struct {
	ID           string
	Family       string
	Category     string
	Subsets      []string
	LastModified string
}

// Client fetches font metadata from a google-webfonts-helper style API.
//
// Example usage:
//
//	client := NewClient("https://google-webfonts-helper.herokuapp.com/api/fonts/", httpClient)
//
//	font, err := client.Font(ctx, "noticia-text")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s has %d variants\n", font.Family, len(font.Variants))
type Client struct {
	baseURL string
	getter  Getter
}

// NewClient creates a new Client for the API rooted at baseURL.
func NewClient(baseURL string, getter Getter) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		getter:  getter,
	}
}

// Font fetches the descriptor of fontID.
//
// When subsets are given, the request is constrained to them and the
// returned variant URLs are valid for exactly that set of subsets.
func (c *Client) Font(ctx context.Context, fontID string, subsets ...string) (*model.Font, error) {
	fontURL := c.FontURL(fontID, subsets...)

	body, err := c.getter.Get(ctx, fontURL)
	if err != nil {
		return nil, &FetchError{FontID: fontID, URL: fontURL, Err: err}
	}

	var jsonFont dto.JSONFont
	if err := json.Unmarshal(body, &jsonFont); err != nil {
		return nil, &FetchError{FontID: fontID, URL: fontURL, Err: fmt.Errorf("failed to parse font JSON: %w", err)}
	}

	font, err := jsonFont.ToFont()
	if err != nil {
		return nil, &FetchError{FontID: fontID, URL: fontURL, Err: err}
	}

	return font, nil
}

// Fonts lists every font in the catalog, in API order.
func (c *Client) Fonts(ctx context.Context) ([]FontSummary, error) {
	body, err := c.getter.Get(ctx, c.baseURL)
	if err != nil {
		return nil, &FetchError{URL: c.baseURL, Err: err}
	}

	var entries []dto.JSONFontSummary
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &FetchError{URL: c.baseURL, Err: fmt.Errorf("failed to parse font list: %w", err)}
	}

	fonts := make([]FontSummary, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		fonts = append(fonts, FontSummary{
			ID:           e.ID,
			Family:       e.Family,
			Category:     e.Category,
			Subsets:      e.Subsets,
			LastModified: e.LastModified,
		})
	}
	return fonts, nil
}

// FontURL returns the request URL for fontID and optional subsets.
//
// Subset names are joined with a literal comma:
//
//	client.FontURL("roboto", "latin", "cyrillic")
//	// ".../api/fonts/roboto?subsets=latin,cyrillic"
func (c *Client) FontURL(fontID string, subsets ...string) string {
	u := c.baseURL + url.PathEscape(fontID)
	if len(subsets) == 0 {
		return u
	}

	escaped := make([]string, len(subsets))
	for i, subset := range subsets {
		escaped[i] = url.QueryEscape(subset)
	}
	return u + "?subsets=" + strings.Join(escaped, ",")
}
