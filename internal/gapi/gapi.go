// Package gapi holds the stateless per-service call builders. Each service
// type wraps a Doer capability that attaches bearer auth and interprets
// responses; nothing here touches tokens or accounts.
package gapi

import (
	"context"
	"net/url"
)

// Doer is the request capability provided by the session manager.
type Doer interface {
	Get(ctx context.Context, url string) (map[string]any, error)
	Post(ctx context.Context, url string, body any) (map[string]any, error)
	PostEmpty(ctx context.Context, url string) (map[string]any, error)
	Put(ctx context.Context, url string, body any) (map[string]any, error)
	Patch(ctx context.Context, url string, body any) (map[string]any, error)
	Delete(ctx context.Context, url string) (map[string]any, error)
	Upload(ctx context.Context, url string, metadata any, data []byte, mimeType string) (map[string]any, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// query renders url.Values as a query suffix, empty when there are no
// parameters.
func query(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
