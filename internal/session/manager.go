// Package session owns the currently active account's live credentials for
// the running process. All outbound calls flow through a Manager, which
// presents a valid bearer token and hides refresh and account-switch races
// from callers.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/gwork/gwork-cli/internal/accountstore"
	"github.com/gwork/gwork-cli/internal/apierr"
)

// accountView is the per-call cell: the active account's name and a copy
// of its credentials, plus a store snapshot used to persist refreshed
// tokens back into the right entry. It is replaced in place on switch, so
// in-flight holders resolve against up-to-date shared state.
type accountView struct {
	name     string
	creds    accountstore.Credentials
	snapshot *accountstore.Store
}

type Manager struct {
	HTTP      *http.Client
	TokenURL  string
	storePath string

	// Lock ordering is fixed: storeMu before viewMu, everywhere.
	storeMu sync.Mutex
	store   *accountstore.Store

	viewMu sync.Mutex
	view   accountView
}

// New builds a Manager over a loaded store. Fails with a Config error when
// the active account does not exist.
func New(store *accountstore.Store, storePath string) (*Manager, error) {
	view, err := deriveView(store)
	if err != nil {
		return nil, err
	}
	return &Manager{
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		TokenURL:  GoogleTokenURL,
		storePath: storePath,
		store:     store,
		view:      view,
	}, nil
}

func deriveView(store *accountstore.Store) (accountView, error) {
	acct, err := store.Active()
	if err != nil {
		return accountView{}, err
	}
	return accountView{name: store.ActiveAccount, creds: acct.Auth, snapshot: store.Clone()}, nil
}

// EnsureToken returns the active account's access token, refreshing it
// first when it is within the expiry buffer. The view lock is held for the
// duration of the refresh exchange so that concurrent callers trigger at
// most one refresh; it is released before any resource request is issued.
func (m *Manager) EnsureToken(ctx context.Context) (string, error) {
	m.viewMu.Lock()
	defer m.viewMu.Unlock()

	if !m.view.creds.Complete() {
		return "", apierr.Configf("account %q has incomplete credentials", m.view.name)
	}
	if m.HTTP != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.HTTP)
	}
	refreshed, err := refreshIfNeeded(ctx, &m.view.creds, m.TokenURL)
	if err != nil {
		return "", err
	}
	if refreshed {
		if err := m.persistViewCreds(); err != nil {
			return "", err
		}
	}
	return m.view.creds.AccessToken, nil
}

// persistViewCreds writes refreshed credentials back through the view's
// store snapshot. Called with viewMu held; deliberately does not take
// storeMu (a switch committed concurrently wins the file, and the next
// derive re-reads its tokens — the accepted switch race).
func (m *Manager) persistViewCreds() error {
	acct, ok := m.view.snapshot.Accounts[m.view.name]
	if !ok {
		return apierr.Configf("account %q not found", m.view.name)
	}
	acct.Auth = m.view.creds
	m.view.snapshot.Accounts[m.view.name] = acct
	return accountstore.SaveAtomic(m.storePath, m.view.snapshot)
}

// SwitchAccount makes name the active account, persists the store, and
// replaces the per-call view. A call already past EnsureToken completes
// against the token it obtained.
func (m *Manager) SwitchAccount(name string) error {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()

	if !m.store.Switch(name) {
		return apierr.Configf("account %q not found", name)
	}
	if err := accountstore.SaveAtomic(m.storePath, m.store); err != nil {
		return err
	}
	view, err := deriveView(m.store)
	if err != nil {
		return err
	}
	m.viewMu.Lock()
	m.view = view
	m.viewMu.Unlock()
	return nil
}

// UpdateStore installs an externally mutated store (after add/remove),
// persists it, and re-derives the per-call view.
func (m *Manager) UpdateStore(store *accountstore.Store) error {
	if err := accountstore.SaveAtomic(m.storePath, store); err != nil {
		return err
	}
	view, err := deriveView(store)
	if err != nil {
		return err
	}
	m.storeMu.Lock()
	m.store = store
	m.viewMu.Lock()
	m.view = view
	m.viewMu.Unlock()
	m.storeMu.Unlock()
	return nil
}

func (m *Manager) ActiveAccountName() string {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	return m.store.ActiveAccount
}

func (m *Manager) ActiveAccountLabel() string {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	acct, err := m.store.Active()
	if err != nil {
		return "Unknown"
	}
	return acct.Label
}

func (m *Manager) AccountNames() []string {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	return m.store.AccountNames()
}

// StoreSnapshot returns a deep copy of the full store for account
// management flows.
func (m *Manager) StoreSnapshot() *accountstore.Store {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	return m.store.Clone()
}

// request issues one bearer-authenticated call and interprets the response.
func (m *Manager) request(ctx context.Context, method, url string, body any) (map[string]any, error) {
	token, err := m.EnsureToken(ctx)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, &apierr.JSONError{Err: err}
		}
		r = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, &apierr.HTTPError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return nil, &apierr.HTTPError{Err: err}
	}
	defer resp.Body.Close()
	return handleResponse(resp)
}

func handleResponse(resp *http.Response) (map[string]any, error) {
	b, readErr := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		if readErr != nil {
			return nil, &apierr.HTTPError{Err: readErr}
		}
		if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(b)) == 0 {
			return nil, nil
		}
		var out map[string]any
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, &apierr.JSONError{Err: err}
		}
		return out, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &apierr.RateLimitedError{RetryAfterSeconds: retryAfterSeconds(resp.Header.Get("Retry-After"))}

	case resp.StatusCode == http.StatusNotFound:
		return nil, &apierr.NotFoundError{Message: "resource not found"}

	default:
		return nil, &apierr.APIError{Status: resp.StatusCode, Body: string(b)}
	}
}

// retryAfterSeconds reads an integer Retry-After header, defaulting to 60
// when absent or unparseable.
func retryAfterSeconds(h string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && n > 0 {
		return n
	}
	return 60
}

func (m *Manager) Get(ctx context.Context, url string) (map[string]any, error) {
	return m.request(ctx, http.MethodGet, url, nil)
}

func (m *Manager) Post(ctx context.Context, url string, body any) (map[string]any, error) {
	return m.request(ctx, http.MethodPost, url, body)
}

// PostEmpty posts with no body, for endpoints that take all input in the URL.
func (m *Manager) PostEmpty(ctx context.Context, url string) (map[string]any, error) {
	return m.request(ctx, http.MethodPost, url, nil)
}

func (m *Manager) Put(ctx context.Context, url string, body any) (map[string]any, error) {
	return m.request(ctx, http.MethodPut, url, body)
}

func (m *Manager) Patch(ctx context.Context, url string, body any) (map[string]any, error) {
	return m.request(ctx, http.MethodPatch, url, body)
}

func (m *Manager) Delete(ctx context.Context, url string) (map[string]any, error) {
	return m.request(ctx, http.MethodDelete, url, nil)
}

// Upload sends a multipart/related upload: a JSON metadata part followed by
// the file bytes, the shape Google's upload endpoints expect.
func (m *Manager) Upload(ctx context.Context, url string, metadata any, data []byte, mimeType string) (map[string]any, error) {
	token, err := m.EnsureToken(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := w.CreatePart(metaHeader)
	if err != nil {
		return nil, &apierr.IOError{Err: err}
	}
	if err := json.NewEncoder(metaPart).Encode(metadata); err != nil {
		return nil, &apierr.JSONError{Err: err}
	}

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", mimeType)
	filePart, err := w.CreatePart(fileHeader)
	if err != nil {
		return nil, &apierr.IOError{Err: err}
	}
	if _, err := filePart.Write(data); err != nil {
		return nil, &apierr.IOError{Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &apierr.IOError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, &apierr.HTTPError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/related; boundary=%s", w.Boundary()))

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return nil, &apierr.HTTPError{Err: err}
	}
	defer resp.Body.Close()
	return handleResponse(resp)
}

// Download fetches raw bytes (file exports, attachments).
func (m *Manager) Download(ctx context.Context, url string) ([]byte, error) {
	token, err := m.EnsureToken(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &apierr.HTTPError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return nil, &apierr.HTTPError{Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierr.HTTPError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apierr.APIError{Status: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}
