package gapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const gmailBase = "https://gmail.googleapis.com/gmail/v1/users/me"

type Gmail struct {
	c Doer
}

func NewGmail(c Doer) Gmail { return Gmail{c: c} }

func (g Gmail) ListMessages(ctx context.Context, q string, maxResults int, pageToken string) (map[string]any, error) {
	v := url.Values{"maxResults": {strconv.Itoa(maxResults)}}
	if q != "" {
		v.Set("q", q)
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return g.c.Get(ctx, gmailBase+"/messages"+query(v))
}

func (g Gmail) GetMessage(ctx context.Context, id, format string) (map[string]any, error) {
	return g.c.Get(ctx, fmt.Sprintf("%s/messages/%s?format=%s", gmailBase, id, format))
}

func (g Gmail) SendMessage(ctx context.Context, raw string) (map[string]any, error) {
	return g.c.Post(ctx, gmailBase+"/messages/send", map[string]any{"raw": raw})
}

func (g Gmail) TrashMessage(ctx context.Context, id string) (map[string]any, error) {
	return g.c.PostEmpty(ctx, fmt.Sprintf("%s/messages/%s/trash", gmailBase, id))
}

func (g Gmail) ListLabels(ctx context.Context) (map[string]any, error) {
	return g.c.Get(ctx, gmailBase+"/labels")
}

func (g Gmail) ListDrafts(ctx context.Context, maxResults int, pageToken string) (map[string]any, error) {
	v := url.Values{"maxResults": {strconv.Itoa(maxResults)}}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return g.c.Get(ctx, gmailBase+"/drafts"+query(v))
}

func (g Gmail) ListThreads(ctx context.Context, q string, maxResults int, pageToken string) (map[string]any, error) {
	v := url.Values{"maxResults": {strconv.Itoa(maxResults)}}
	if q != "" {
		v.Set("q", q)
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return g.c.Get(ctx, gmailBase+"/threads"+query(v))
}

func (g Gmail) ListFilters(ctx context.Context) (map[string]any, error) {
	return g.c.Get(ctx, gmailBase+"/settings/filters")
}

func (g Gmail) GetVacationSettings(ctx context.Context) (map[string]any, error) {
	return g.c.Get(ctx, gmailBase+"/settings/vacation")
}

func (g Gmail) ListForwardingAddresses(ctx context.Context) (map[string]any, error) {
	return g.c.Get(ctx, gmailBase+"/settings/forwardingAddresses")
}

func (g Gmail) ListSendAs(ctx context.Context) (map[string]any, error) {
	return g.c.Get(ctx, gmailBase+"/settings/sendAs")
}

func (g Gmail) ListDelegates(ctx context.Context) (map[string]any, error) {
	return g.c.Get(ctx, gmailBase+"/settings/delegates")
}

// BuildRawEmail assembles an RFC 822 message and encodes it the way the
// send endpoint expects (base64url, no padding).
func BuildRawEmail(to, subject, body, cc, bcc string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	if cc != "" {
		fmt.Fprintf(&sb, "Cc: %s\r\n", cc)
	}
	if bcc != "" {
		fmt.Fprintf(&sb, "Bcc: %s\r\n", bcc)
	}
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body)
	return base64.RawURLEncoding.EncodeToString([]byte(sb.String()))
}
