// Package accountstore owns the durable multi-account document: named
// OAuth credentials, the active-account pointer, and migration from the
// legacy single-account formats.
package accountstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gwork/gwork-cli/internal/apierr"
)

// Credentials is one account's OAuth material against the Google identity
// provider. All four string fields must be non-empty for the account to be
// usable.
type Credentials struct {
	ClientID     string    `json:"clientId" toml:"client_id"`
	ClientSecret string    `json:"clientSecret" toml:"client_secret"`
	AccessToken  string    `json:"accessToken" toml:"access_token"`
	RefreshToken string    `json:"refreshToken" toml:"refresh_token"`
	TokenExpiry  time.Time `json:"tokenExpiry" toml:"token_expiry"`
}

// Complete reports whether every required credential field is present.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.ClientID) != "" &&
		strings.TrimSpace(c.ClientSecret) != "" &&
		strings.TrimSpace(c.AccessToken) != "" &&
		strings.TrimSpace(c.RefreshToken) != ""
}

type Account struct {
	Label string      `json:"label" toml:"label"`
	Auth  Credentials `json:"auth" toml:"auth"`
}

// Store is the persisted account document. Invariant: when Accounts is
// non-empty, ActiveAccount names an existing entry.
type Store struct {
	ActiveAccount string             `json:"activeAccount"`
	Accounts      map[string]Account `json:"accounts"`

	// Legacy single-account block, consumed by migration and never
	// written back.
	LegacyAuth *Credentials `json:"auth,omitempty"`
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		h, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config dir")
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "gwork", "config.json"), nil
}

// legacyTOMLPath is the config location of the predecessor tool; a file
// there is migrated into the JSON document on first load.
func legacyTOMLPath(jsonPath string) string {
	return filepath.Join(filepath.Dir(jsonPath), "config.toml")
}

// Load reads the store at path, migrating legacy formats when found. The
// migrated form is persisted immediately so migration runs at most once.
func Load(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &apierr.ConfigError{Message: "missing store path"}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if st, ok := loadLegacyTOML(legacyTOMLPath(path)); ok {
				if err := SaveAtomic(path, st); err != nil {
					return nil, err
				}
				return st, nil
			}
		}
		return nil, &apierr.ConfigError{Message: "cannot read account store: " + err.Error()}
	}

	var st Store
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, &apierr.ConfigError{Message: "cannot parse account store: " + err.Error()}
	}
	if st.Accounts == nil {
		st.Accounts = map[string]Account{}
	}

	changed := false
	if st.LegacyAuth != nil {
		if _, exists := st.Accounts["default"]; !exists {
			st.Accounts["default"] = Account{Label: "Default Account", Auth: *st.LegacyAuth}
			st.ActiveAccount = "default"
			changed = true
		}
		st.LegacyAuth = nil
	}
	if st.normalizeActive() {
		changed = true
	}
	if changed {
		if err := SaveAtomic(path, &st); err != nil {
			return nil, err
		}
	}
	return &st, nil
}

// loadLegacyTOML reads the predecessor tool's TOML config. Both its
// multi-account and flat single-account shapes are handled.
func loadLegacyTOML(path string) (*Store, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var doc struct {
		ActiveAccount string             `toml:"active_account"`
		Accounts      map[string]Account `toml:"accounts"`
		Auth          *Credentials       `toml:"auth"`
	}
	if err := toml.Unmarshal(b, &doc); err != nil {
		return nil, false
	}
	st := &Store{ActiveAccount: doc.ActiveAccount, Accounts: doc.Accounts}
	if st.Accounts == nil {
		st.Accounts = map[string]Account{}
	}
	if doc.Auth != nil {
		if _, exists := st.Accounts["default"]; !exists {
			st.Accounts["default"] = Account{Label: "Default Account", Auth: *doc.Auth}
			st.ActiveAccount = "default"
		}
	}
	if len(st.Accounts) == 0 {
		return nil, false
	}
	st.normalizeActive()
	return st, true
}

// normalizeActive re-points ActiveAccount at an existing entry when it is
// empty or dangling. Returns true when the pointer changed.
func (s *Store) normalizeActive() bool {
	if len(s.Accounts) == 0 {
		if s.ActiveAccount != "" {
			s.ActiveAccount = ""
			return true
		}
		return false
	}
	if _, ok := s.Accounts[s.ActiveAccount]; ok {
		return false
	}
	for name := range s.Accounts {
		s.ActiveAccount = name
		return true
	}
	return false
}

func SaveAtomic(path string, s *Store) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return &apierr.ConfigError{Message: "missing store path"}
	}
	if s == nil {
		return &apierr.ConfigError{Message: "missing store"}
	}
	if s.Accounts == nil {
		s.Accounts = map[string]Account{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &apierr.IOError{Err: err}
	}
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return &apierr.IOError{Err: err}
	}
	payload = append(payload, '\n')
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return &apierr.IOError{Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &apierr.IOError{Err: err}
	}
	return nil
}

// Active returns the active account.
func (s *Store) Active() (Account, error) {
	acct, ok := s.Accounts[s.ActiveAccount]
	if !ok {
		return Account{}, apierr.Configf("account %q not found", s.ActiveAccount)
	}
	return acct, nil
}

// AccountNames returns all account names, sorted. Map iteration order would
// reshuffle between calls, and every consumer (the switcher overlay, the
// accounts listing, the fan-out search) needs a stable order.
func (s *Store) AccountNames() []string {
	names := make([]string, 0, len(s.Accounts))
	for name := range s.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Add(name string, acct Account) {
	if s.Accounts == nil {
		s.Accounts = map[string]Account{}
	}
	s.Accounts[name] = acct
}

// Remove deletes the named account. Removing the active account re-points
// the active pointer at any remaining entry, or clears it when the store
// is now empty. Removing the last account is allowed here; the interactive
// layer guards against it.
func (s *Store) Remove(name string) bool {
	if _, ok := s.Accounts[name]; !ok {
		return false
	}
	delete(s.Accounts, name)
	if s.ActiveAccount == name {
		s.ActiveAccount = ""
		s.normalizeActive()
	}
	return true
}

// Switch sets the active account. It mutates nothing else; the caller
// persists.
func (s *Store) Switch(name string) bool {
	if _, ok := s.Accounts[name]; !ok {
		return false
	}
	s.ActiveAccount = name
	return true
}

// ValidateActive reports whether the active account exists and carries
// complete credentials.
func (s *Store) ValidateActive() bool {
	acct, err := s.Active()
	if err != nil {
		return false
	}
	return acct.Auth.Complete()
}

// Clone returns a deep copy, so callers never hold live references into
// shared state.
func (s *Store) Clone() *Store {
	out := &Store{ActiveAccount: s.ActiveAccount, Accounts: make(map[string]Account, len(s.Accounts))}
	for name, acct := range s.Accounts {
		out.Accounts[name] = acct
	}
	return out
}
