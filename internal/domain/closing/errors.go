package closing

import "errors"

var (
	ErrAlreadyClosed = errors.New("month is already closed for this employee")
	ErrAlreadyOpen   = errors.New("month is not closed for this employee")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
)
