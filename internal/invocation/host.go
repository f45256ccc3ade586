package invocation

import (
	"os"
	"runtime"

	"git.home.luguber.info/inful/docbuild/internal/git"
)

// Host answers the questions the builder asks about the machine it runs on.
type Host interface {
	Getenv(key string) string
	Getwd() (string, error)
	HomeDir() (string, error)
	GOOS() string
	// RepoRoot returns the version-control root enclosing path.
	RepoRoot(path string) (string, error)
}

// OSHost is the Host backed by the running process.
type OSHost struct{}

func (OSHost) Getenv(key string) string             { return os.Getenv(key) }
func (OSHost) Getwd() (string, error)               { return os.Getwd() }
func (OSHost) HomeDir() (string, error)             { return os.UserHomeDir() }
func (OSHost) GOOS() string                         { return runtime.GOOS }
func (OSHost) RepoRoot(path string) (string, error) { return git.RepoRoot(path) }
