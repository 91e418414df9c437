// Package http provides the HTTP client used to talk to the font catalog
// and to download font binaries.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - JSON and raw body requests
//   - File downloads with retry and exponential backoff
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultClientConfig())
//
//	// Fetch catalog metadata
//	body, err := client.Get(ctx, "https://google-webfonts-helper.herokuapp.com/api/fonts/roboto")
//
//	// Download a font file, creating parent directories as needed
//	err = client.DownloadFile(ctx, woff2URL, "/packages/roboto/files/roboto-latin-400-normal.woff2")
//
// # Retries
//
// DownloadFile retries failed attempts up to ClientConfig.MaxRetries times,
// waiting RetryCooldown * RetryExponent^attempt between attempts. Client
// errors (HTTP 4xx) are not retried.
package http
