package domain

import "errors"

// Domain errors.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid config")
	ErrNoOrigins        = errors.New("no note directories configured")
	ErrConfigExists     = errors.New("config file already exists")
	ErrInvalidDate      = errors.New("invalid date")
	ErrSectionNotFound  = errors.New("section not found")
	ErrUnknownOrigin    = errors.New("unknown origin")
	ErrNotGitRepository = errors.New("not a git repository")
)
