package executive

import "errors"

// Errors raised by the Executive's own structural checks and block
// lifecycle, distinct from the per-piece semantic errors a
// ConstraintChecker returns (spec §4.7, §7).
var (
	ErrDuplicateInputRef  = errors.New("executive: duplicate input reference")
	ErrOverlappingRefs    = errors.New("executive: input/peek/eviction references overlap")
	ErrVerifierFailed     = errors.New("executive: verifier rejected redeemer")
	ErrInherentOutOfOrder = errors.New("executive: inherent extrinsic out of order")
	ErrHeaderMismatch     = errors.New("executive: recomputed header does not match supplied header")
)
