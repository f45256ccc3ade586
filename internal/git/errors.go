package git

import (
	stderrors "errors"

	ggit "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
)

// ClassifyGitError translates go-git errors into ClassifiedErrors.
func ClassifyGitError(err error, op, path string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	message := "git operation failed"
	switch {
	case stderrors.Is(err, ggit.ErrRepositoryNotExists):
		message = path + " is not inside a git repository"
	case stderrors.Is(err, ggit.ErrIsBareRepository):
		message = path + " belongs to a bare repository"
	}

	return errors.GitError(message).
		WithCause(err).
		WithContext("op", op).
		WithContext(errors.ContextPath, path).
		Build()
}
