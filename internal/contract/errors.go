package contract

import "errors"

var (
	// ErrRepositoryUnavailable means the working directory is not inside a git repository.
	ErrRepositoryUnavailable = errors.New("not a git repository (or any of the parent directories)")

	// ErrUnsafeArgument means an author email or file path cannot be passed to git safely.
	ErrUnsafeArgument = errors.New("unsafe git argument")
)
