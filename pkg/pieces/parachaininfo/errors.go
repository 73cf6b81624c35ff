package parachaininfo

import "errors"

// Errors returned by the SetParachainInfo checker (spec §4.15).
var (
	ErrBadlyTyped        = errors.New("parachaininfo: badly typed payload")
	ErrWrongInputCount   = errors.New("parachaininfo: wrong input count")
	ErrWrongOutputCount  = errors.New("parachaininfo: wrong output count")
	ErrNotMonotonic      = errors.New("parachaininfo: relay parent number did not advance")
	ErrGenesisMustBeZero = errors.New("parachaininfo: genesis relay parent number must be zero")
)
