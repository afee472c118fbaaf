package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/gwork/gwork-cli/internal/accountstore"
	"github.com/gwork/gwork-cli/internal/apierr"
)

// GoogleTokenURL is the identity provider's token endpoint.
const GoogleTokenURL = "https://oauth2.googleapis.com/token"

// refreshSkew is the early-refresh buffer: a token within this window of
// expiry is treated as expired, covering clock skew and in-flight latency.
const refreshSkew = 2 * time.Minute

// refreshIfNeeded exchanges the refresh token for a new access token when
// the current one is expired or about to expire. Returns false with no I/O
// otherwise; every call path relies on that short-circuit.
func refreshIfNeeded(ctx context.Context, creds *accountstore.Credentials, tokenURL string) (bool, error) {
	if time.Now().Before(creds.TokenExpiry.Add(-refreshSkew)) {
		return false, nil
	}

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}
	src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return false, refreshError(err)
	}

	creds.AccessToken = tok.AccessToken
	if !tok.Expiry.IsZero() {
		creds.TokenExpiry = tok.Expiry
	} else {
		creds.TokenExpiry = time.Now().Add(time.Hour)
	}
	// Some providers rotate the refresh token; keep the old one otherwise.
	if rt := strings.TrimSpace(tok.RefreshToken); rt != "" {
		creds.RefreshToken = rt
	}
	return true, nil
}

// refreshError maps a failed token exchange onto the error taxonomy: a
// structured provider error becomes Auth, any other non-2xx becomes Api,
// and transport failures become Http.
func refreshError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		if strings.TrimSpace(re.ErrorCode) != "" {
			return &apierr.AuthError{Message: re.ErrorCode + ": " + re.ErrorDescription}
		}
		status := 0
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		return &apierr.APIError{Status: status, Body: string(re.Body)}
	}
	return &apierr.HTTPError{Err: err}
}
