// Package browser opens a URL in the user's web browser.
package browser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	pkgbrowser "github.com/pkg/browser"

	"git.home.luguber.info/inful/docbuild/internal/logfields"
)

// EnvBrowser names the conventional variable listing preferred browsers.
const EnvBrowser = "BROWSER"

// Opener opens url in a browser.
type Opener func(url string) error

// Open launches a browser for url without waiting for it. Entries of
// $BROWSER are tried first, in order; each entry may contain %s to place the
// URL, otherwise the URL is appended. Without $BROWSER the platform default
// is used.
func Open(url string) error {
	if list := os.Getenv(EnvBrowser); list != "" {
		err := openFromList(list, url)
		if err == nil {
			return nil
		}
		slog.Debug("No $BROWSER entry could be started; using the platform default",
			logfields.URL(url), logfields.Error(err))
	}

	// The platform opener's own chatter must not mix with build output.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
	if err := pkgbrowser.OpenURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func openFromList(list, url string) error {
	var errs []error
	for _, entry := range strings.Split(list, string(os.PathListSeparator)) {
		argv := command(entry, url)
		if len(argv) == 0 {
			continue
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		if err := cmd.Start(); err != nil {
			errs = append(errs, err)
			continue
		}
		// Reap in the background; the browser outlives us more often than not.
		go func() { _ = cmd.Wait() }()
		return nil
	}
	if len(errs) == 0 {
		return errors.New("empty $BROWSER")
	}
	return errors.Join(errs...)
}

func command(entry, url string) []string {
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return nil
	}
	placed := false
	for i, f := range fields {
		if strings.Contains(f, "%s") {
			fields[i] = strings.ReplaceAll(f, "%s", url)
			placed = true
		}
	}
	if !placed {
		fields = append(fields, url)
	}
	return fields
}
