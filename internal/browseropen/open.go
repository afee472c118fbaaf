// Package browseropen launches the system browser during account setup.
// Every path is best effort: the caller also prints the URL, so a failed
// launch only costs the user a copy-paste.
package browseropen

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// startCommand is swapped out in tests.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

func Open(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return errors.New("missing url")
	}
	wsl := runtime.GOOS == "linux" && isWSL()
	return openFor(runtime.GOOS, wsl, strings.TrimSpace(os.Getenv("BROWSER")), rawURL)
}

func openFor(goos string, wsl bool, browserEnv, rawURL string) error {
	switch goos {
	case "darwin":
		return startCommand("open", rawURL)
	case "windows":
		return tryCandidates("open browser", windowsCandidates(rawURL))
	default:
		if wsl {
			if err := tryCandidates("open browser (wsl)", wslCandidates(rawURL)); err == nil {
				return nil
			}
		}
		if err := openViaBrowserEnv(browserEnv, rawURL); err == nil {
			return nil
		}
		return startCommand("xdg-open", rawURL)
	}
}

func wslCandidates(u string) [][]string {
	return [][]string{
		{"wslview", u},
		{"cmd.exe", "/c", "start", "", u},
		{"powershell.exe", "-NoProfile", "-Command", "Start-Process", u},
		{"explorer.exe", u},
	}
}

func windowsCandidates(u string) [][]string {
	return [][]string{
		{"rundll32", "url.dll,FileProtocolHandler", u},
		{"cmd", "/c", "start", "", u},
		{"powershell", "-NoProfile", "-Command", "Start-Process", u},
		{"explorer", u},
	}
}

// tryCandidates runs each argv in order and stops at the first that starts.
func tryCandidates(what string, candidates [][]string) error {
	var errs []error
	for _, argv := range candidates {
		if err := startCommand(argv[0], argv[1:]...); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("%s failed: %v", what, errs)
}

// openViaBrowserEnv honors the unix BROWSER convention: a colon-separated
// list of commands, each tried in order with the URL appended. A %s in a
// command marks where the URL goes instead.
func openViaBrowserEnv(raw, u string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("BROWSER not set")
	}
	var errs []error
	for _, part := range strings.Split(raw, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var argv []string
		if strings.Contains(part, "%s") {
			argv = strings.Fields(strings.ReplaceAll(part, "%s", u))
		} else {
			argv = append(strings.Fields(part), u)
		}
		if len(argv) == 0 {
			continue
		}
		if err := startCommand(argv[0], argv[1:]...); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("open via BROWSER failed: %v", errs)
}

// isWSL detects Windows Subsystem for Linux by interop env vars, falling
// back to the kernel release string.
func isWSL() bool {
	if os.Getenv("WSL_INTEROP") != "" || os.Getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	for _, p := range []string{"/proc/sys/kernel/osrelease", "/proc/version"} {
		if b, err := os.ReadFile(p); err == nil && strings.Contains(strings.ToLower(string(b)), "microsoft") {
			return true
		}
	}
	return false
}
