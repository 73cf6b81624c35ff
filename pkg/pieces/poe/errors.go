package poe

import "errors"

// Errors returned by the Claim/Revoke/Dispute checker variants (spec §4.12).
var (
	ErrBadlyTyped       = errors.New("poe: badly typed payload")
	ErrClaimTooEarly    = errors.New("poe: claim effective_height before current block")
	ErrWrongInputCount  = errors.New("poe: wrong input count")
	ErrWrongOutputCount = errors.New("poe: wrong output count")
	ErrWrongPeekCount   = errors.New("poe: wrong peek count")
	ErrDisputeHashMismatch = errors.New("poe: eviction hash does not match winner")
	ErrDisputeNotOlder  = errors.New("poe: eviction is not a losing duplicate")
)
