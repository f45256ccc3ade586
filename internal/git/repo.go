package git

import (
	"os"
	"path/filepath"

	ggit "github.com/go-git/go-git/v5"
)

// RepoRoot returns the root of the working tree enclosing path. path may be a
// file or a directory; parent directories are searched for a .git entry.
func RepoRoot(path string) (string, error) {
	repo, err := openEnclosing(path)
	if err != nil {
		return "", ClassifyGitError(err, "root", path)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", ClassifyGitError(err, "root", path)
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return "", ClassifyGitError(err, "root", path)
	}
	return root, nil
}

// HeadCommit returns the commit hash HEAD points at for the repository
// enclosing path.
func HeadCommit(path string) (string, error) {
	repo, err := openEnclosing(path)
	if err != nil {
		return "", ClassifyGitError(err, "head", path)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", ClassifyGitError(err, "head", path)
	}
	return ref.Hash().String(), nil
}

func openEnclosing(path string) (*ggit.Repository, error) {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	return ggit.PlainOpenWithOptions(dir, &ggit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}
