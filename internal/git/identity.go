package git

import (
	"fmt"
	"os"

	formatcfg "github.com/go-git/go-git/v5/plumbing/format/config"
)

// Identity is the committer identity found in a git config file.
type Identity struct {
	Name  string
	Email string
}

// Complete reports whether both name and email are set.
func (i Identity) Complete() bool {
	return i.Name != "" && i.Email != ""
}

// ReadIdentity decodes the [user] section of the git config file at path.
func ReadIdentity(path string) (Identity, error) {
	f, err := os.Open(path)
	if err != nil {
		return Identity{}, err
	}
	defer func() { _ = f.Close() }()

	cfg := formatcfg.New()
	if err := formatcfg.NewDecoder(f).Decode(cfg); err != nil {
		return Identity{}, fmt.Errorf("decode %s: %w", path, err)
	}
	user := cfg.Section("user")
	return Identity{
		Name:  user.Option("name"),
		Email: user.Option("email"),
	}, nil
}
