package bonus

import "errors"

var (
	ErrSchemeNotFound       = errors.New("bonus scheme not found")
	ErrTiersNotIncreasing   = errors.New("bonus tiers must have strictly increasing thresholds")
	ErrInvalidTierThreshold = errors.New("bonus tier threshold must be greater than zero")
	ErrInvalidSchemeKind    = errors.New("bonus scheme must be linear or stepped")
)
