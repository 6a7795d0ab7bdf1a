package vfs

// Error is a filesystem error with a fixed message.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNotFound    Error = "no such file or directory"
	ErrNotDir      Error = "not a directory"
	ErrIsDir       Error = "is a directory"
	ErrExists      Error = "file exists"
	ErrInvalidName Error = "invalid file name"
)
