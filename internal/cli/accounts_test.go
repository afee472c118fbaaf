package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gwork/gwork-cli/internal/accountstore"
)

func seedStore(t *testing.T, names ...string) string {
	t.Helper()
	st := &accountstore.Store{Accounts: map[string]accountstore.Account{}}
	for _, n := range names {
		st.Accounts[n] = accountstore.Account{Label: "Label " + n}
	}
	if len(names) > 0 {
		st.ActiveAccount = names[0]
	}
	path := filepath.Join(t.TempDir(), "config.json")
	if err := accountstore.SaveAtomic(path, st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAccountsList_StarsActive(t *testing.T) {
	path := seedStore(t, "work", "personal")
	out, err := runCLI(t, "", "--config", path, "accounts", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "* work — Label work") {
		t.Fatalf("active not starred:\n%s", out)
	}
	if !strings.Contains(out, "personal — Label personal") {
		t.Fatalf("missing account:\n%s", out)
	}
}

func TestAccountsAdd_NormalizesNameAndActivates(t *testing.T) {
	path := seedStore(t, "work")
	stdin := "My Club\nClub Gmail\nid\nsecret\naccess\nrefresh\n"
	if _, err := runCLI(t, stdin, "--config", path, "accounts", "add"); err != nil {
		t.Fatalf("add: %v", err)
	}
	st, err := accountstore.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	acct, ok := st.Accounts["my-club"]
	if !ok {
		t.Fatalf("accounts = %v", st.AccountNames())
	}
	if acct.Label != "Club Gmail" || acct.Auth.RefreshToken != "refresh" {
		t.Fatalf("account = %+v", acct)
	}
	if st.ActiveAccount != "my-club" {
		t.Fatalf("active = %q", st.ActiveAccount)
	}
}

func TestAccountsRemove_RefusesLastAccount(t *testing.T) {
	path := seedStore(t, "work")
	_, err := runCLI(t, "", "--config", path, "accounts", "remove", "work")
	if err == nil || !strings.Contains(err.Error(), "only account") {
		t.Fatalf("err = %v", err)
	}
	st, loadErr := accountstore.Load(path)
	if loadErr != nil {
		t.Fatalf("load: %v", loadErr)
	}
	if len(st.Accounts) != 1 {
		t.Fatalf("account was removed anyway: %v", st.AccountNames())
	}
}

func TestAccountsSwitch_PersistsActivePointer(t *testing.T) {
	path := seedStore(t, "work", "personal")
	if _, err := runCLI(t, "", "--config", path, "accounts", "switch", "personal"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	st, err := accountstore.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.ActiveAccount != "personal" {
		t.Fatalf("active = %q", st.ActiveAccount)
	}

	_, err = runCLI(t, "", "--config", path, "accounts", "switch", "missing")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestNormalizeAccountName(t *testing.T) {
	cases := map[string]string{
		"":          "default",
		"Work":      "work",
		"My  Club ": "my--club",
	}
	for in, want := range cases {
		if got := normalizeAccountName(in); got != want {
			t.Fatalf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadOrInit_FirstRunWritesStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	stdin := "work\nWork Gmail\nid\nsecret\naccess\nrefresh\n"

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))

	st, err := loadOrInit(cmd, &App{ConfigPath: path})
	if err != nil {
		t.Fatalf("loadOrInit: %v", err)
	}
	if st.ActiveAccount != "work" {
		t.Fatalf("active = %q", st.ActiveAccount)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("store not persisted: %v", statErr)
	}
	if !strings.Contains(out.String(), "No accounts configured") {
		t.Fatalf("setup banner missing:\n%s", out.String())
	}
}
