package shiftplan

import "errors"

var (
	ErrPlanDayNotFound = errors.New("shift plan day not found")
	ErrInvalidSegment  = errors.New("plan segment needs start and end or an absence label")
)
