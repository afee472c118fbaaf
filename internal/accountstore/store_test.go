package accountstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gwork/gwork-cli/internal/apierr"
)

func testCreds(token string) Credentials {
	return Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		AccessToken:  token,
		RefreshToken: "refresh",
		TokenExpiry:  time.Now().UTC(),
	}
}

func TestLoad_MigratesLegacySingleAccount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	legacy := `{"auth":{"clientId":"id","clientSecret":"secret","accessToken":"tok","refreshToken":"refresh"}}`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	st, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.ActiveAccount != "default" {
		t.Fatalf("expected active=default, got %q", st.ActiveAccount)
	}
	acct, ok := st.Accounts["default"]
	if !ok {
		t.Fatalf("expected default account")
	}
	if acct.Auth.AccessToken != "tok" {
		t.Fatalf("unexpected token %q", acct.Auth.AccessToken)
	}

	// Migration persists immediately: the file on disk no longer has a
	// legacy block and loading again yields the same document.
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(b), `"auth": {`) && strings.Contains(string(b), `"activeAccount": ""`) {
		t.Fatalf("expected migrated document, got %s", b)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["auth"]; ok {
		t.Fatalf("expected legacy auth block dropped after migration")
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load again: %v", err)
	}
	if len(again.Accounts) != 1 || again.ActiveAccount != "default" {
		t.Fatalf("migration not idempotent: %+v", again)
	}
}

func TestLoad_MigratesLegacyTOML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "config.json")
	tomlDoc := `
active_account = "work"

[accounts.work]
label = "Work"

[accounts.work.auth]
client_id = "id"
client_secret = "secret"
access_token = "tok"
refresh_token = "refresh"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tomlDoc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	st, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.ActiveAccount != "work" {
		t.Fatalf("expected active=work, got %q", st.ActiveAccount)
	}
	if _, err := os.Stat(jsonPath); err != nil {
		t.Fatalf("expected migrated json written: %v", err)
	}
}

func TestLoad_MissingAndUnparseable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	var cfgErr *apierr.ConfigError
	if _, err := Load(path); !errors.As(err, &cfgErr) {
		t.Fatalf("expected config error for missing store, got %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.As(err, &cfgErr) {
		t.Fatalf("expected config error for bad json, got %v", err)
	}
}

func TestSwitch_SuccessAndUnknown(t *testing.T) {
	st := &Store{
		ActiveAccount: "work",
		Accounts: map[string]Account{
			"work":     {Label: "Work", Auth: testCreds("w")},
			"personal": {Label: "Personal", Auth: testCreds("p")},
		},
	}
	if !st.Switch("personal") {
		t.Fatalf("expected switch to succeed")
	}
	if st.ActiveAccount != "personal" {
		t.Fatalf("expected active=personal, got %q", st.ActiveAccount)
	}
	if st.Switch("nope") {
		t.Fatalf("expected switch to unknown to fail")
	}
	if st.ActiveAccount != "personal" {
		t.Fatalf("failed switch must not mutate, got %q", st.ActiveAccount)
	}
}

func TestRemove_ActiveReassigned(t *testing.T) {
	st := &Store{
		ActiveAccount: "work",
		Accounts: map[string]Account{
			"work":     {Auth: testCreds("w")},
			"personal": {Auth: testCreds("p")},
		},
	}
	if !st.Remove("work") {
		t.Fatalf("expected remove to succeed")
	}
	if st.ActiveAccount != "personal" {
		t.Fatalf("expected active reassigned to personal, got %q", st.ActiveAccount)
	}

	if !st.Remove("personal") {
		t.Fatalf("expected remove to succeed")
	}
	if st.ActiveAccount != "" || len(st.Accounts) != 0 {
		t.Fatalf("expected empty store, got active=%q accounts=%d", st.ActiveAccount, len(st.Accounts))
	}

	if st.Remove("ghost") {
		t.Fatalf("expected remove of unknown to fail")
	}
}

func TestValidateActive(t *testing.T) {
	st := &Store{
		ActiveAccount: "work",
		Accounts:      map[string]Account{"work": {Auth: testCreds("tok")}},
	}
	if !st.ValidateActive() {
		t.Fatalf("expected complete credentials to validate")
	}

	incomplete := testCreds("tok")
	incomplete.RefreshToken = ""
	st.Accounts["work"] = Account{Auth: incomplete}
	if st.ValidateActive() {
		t.Fatalf("expected incomplete credentials to fail validation")
	}

	st.ActiveAccount = "ghost"
	if st.ValidateActive() {
		t.Fatalf("expected unknown active account to fail validation")
	}
}

func TestSaveAtomicAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	st := &Store{ActiveAccount: "work", Accounts: map[string]Account{"work": {Label: "Work", Auth: testCreds("tok")}}}
	if err := SaveAtomic(path, st); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("expected 0600 perms, got %o", info.Mode().Perm())
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ActiveAccount != "work" {
		t.Fatalf("expected active=work, got %q", loaded.ActiveAccount)
	}
	if got := loaded.Accounts["work"].Auth.AccessToken; got != "tok" {
		t.Fatalf("expected token roundtrip, got %q", got)
	}
}

func TestClone_IsDeepForAccountsMap(t *testing.T) {
	st := &Store{ActiveAccount: "a", Accounts: map[string]Account{"a": {Label: "A", Auth: testCreds("t")}}}
	cp := st.Clone()
	cp.Accounts["b"] = Account{}
	cp.ActiveAccount = "b"
	if _, ok := st.Accounts["b"]; ok {
		t.Fatalf("clone mutated original accounts map")
	}
	if st.ActiveAccount != "a" {
		t.Fatalf("clone mutated original active pointer")
	}
}

func TestAccountNames_SortedAndStable(t *testing.T) {
	st := &Store{Accounts: map[string]Account{}}
	for _, name := range []string{"acct-5", "acct-1", "acct-7", "acct-3", "acct-0", "acct-6", "acct-2", "acct-4"} {
		st.Accounts[name] = Account{Label: name, Auth: testCreds("t")}
	}

	first := st.AccountNames()
	for i, name := range first {
		if want := fmt.Sprintf("acct-%d", i); name != want {
			t.Fatalf("names[%d] = %q, want %q (full: %v)", i, name, want, first)
		}
	}
	// Map iteration reshuffles between calls; the accessor must not.
	for i := 0; i < 20; i++ {
		if got := st.AccountNames(); !slices.Equal(got, first) {
			t.Fatalf("order changed between calls: %v vs %v", got, first)
		}
	}
}
