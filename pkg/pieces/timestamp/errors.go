package timestamp

import "errors"

// Errors returned by the SetTimestamp/CleanUpTimestamp checker variants
// (spec §4.14).
var (
	ErrBadlyTyped     = errors.New("timestamp: badly typed payload")
	ErrWrongInputCount = errors.New("timestamp: wrong input count")
	ErrWrongOutputCount = errors.New("timestamp: wrong output count")
	ErrWrongPeekCount = errors.New("timestamp: wrong peek count")
	ErrWrongBlockNumber = errors.New("timestamp: wrong block number")
	ErrTooSoon        = errors.New("timestamp: block produced too soon after parent")
	ErrTooYoungToClean = errors.New("timestamp: entry not old enough to clean up")
	ErrTooFarInFuture = errors.New("timestamp: block timestamp too far in the future")
)
