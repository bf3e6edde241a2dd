package overtime

import "errors"

var (
	ErrPayoutNotFound = errors.New("overtime payout not found")
	ErrInvalidPayout  = errors.New("payout hours must be greater than zero")
)
