package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrIdeaNotFound         = errors.New("idea not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrPreviewUnavailable   = errors.New("preview unavailable")
	ErrInternal             = errors.New("internal error")
)
