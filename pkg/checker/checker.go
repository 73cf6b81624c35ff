// Package checker defines the whole-transaction constraint-checker algebra
// (spec §4.5): the interface every piece's checker variant implements, the
// inherent extension, and the aggregate error/result types shared across
// pieces.
package checker

import (
	"errors"

	"github.com/utxokernel/kernel/pkg/types"
)

// ErrBadlyTyped mirrors types.ErrBadlyTyped for checker-level type
// mismatches (an input/peek/output payload did not extract as the type this
// checker variant declared).
var ErrBadlyTyped = types.ErrBadlyTyped

// ConstraintChecker is implemented by every piece's checker variant (spec
// §4.5). Check receives the already-extracted payload slices — the
// Executive performs type extraction (or surfaces ErrBadlyTyped) before
// calling in.
type ConstraintChecker interface {
	// Check validates the whole transaction and returns its priority, or an
	// error halting validation. height is the block height the transaction
	// is being validated within (the block being built or imported), needed
	// by pieces whose invariants are height-relative (PoE's effective
	// height, Timestamp's block-number fields).
	Check(height uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (priority uint64, err error)
	// IsInherent reports whether this variant may only appear as a
	// block-author-injected inherent transaction.
	IsInherent() bool
}

// InherentCreator is implemented by inherent-capable checker variants that
// can author a fresh copy of themselves at block-authoring time (spec
// §4.9). previous is nil for the bootstrap case (first block after
// genesis).
type InherentCreator interface {
	ConstraintChecker
	CreateInherent(authoringData any, previous *types.OutputRef) (inputs []types.Input, peeks []types.OutputRef, outputs []types.AnyPayload, err error)
}

// InherentImporter is implemented by inherent-capable checker variants that
// re-check an inherent transaction at block-import time (spec §4.9).
type InherentImporter interface {
	ConstraintChecker
	CheckInherent(importingData any, inherentOutputs []types.AnyPayload, out *CheckInherentsResult)
}

// CheckInherentsResult accumulates soft (non-fatal) and fatal errors
// surfaced while re-checking a block's inherents at import time (spec §4.5,
// §7 "Inherent: soft vs fatal").
type CheckInherentsResult struct {
	Errors []InherentError
}

// InherentError is one problem found while re-checking an inherent.
type InherentError struct {
	Kind  string // the piece/checker kind this inherent belongs to
	Code  string // machine-readable error code, e.g. "TooFarInFuture"
	Fatal bool
	Err   error
}

// PutError appends a non-fatal (soft) inherent error.
func (r *CheckInherentsResult) PutError(kind, code string, err error) {
	r.Errors = append(r.Errors, InherentError{Kind: kind, Code: code, Err: err})
}

// PutFatalError appends a fatal inherent error. Per spec §7, fatal inherent
// problems mirror an on-chain invariant violation; callers may choose to
// panic on these during import.
func (r *CheckInherentsResult) PutFatalError(kind, code string, err error) {
	r.Errors = append(r.Errors, InherentError{Kind: kind, Code: code, Fatal: true, Err: err})
}

// FatalOK reports whether no fatal error was recorded.
func (r *CheckInherentsResult) FatalOK() bool {
	for _, e := range r.Errors {
		if e.Fatal {
			return false
		}
	}
	return true
}

// PieceError is an error carrying a stable, machine-readable code alongside
// its message. The pieces' sentinel errors are plain errors.New values and do
// not implement it, and pkg/httpapi does not consult it.
type PieceError interface {
	error
	Code() string
}

// ErrMissingInput, ErrDuplicateInput, ErrPreExistingOutput mirror the
// structural errors from spec §7 for use by pieces that want to return them
// directly (the Executive also raises these itself during its own
// structural checks, spec §4.7 steps 1-4,7).
var (
	ErrMissingInput      = errors.New("checker: missing input")
	ErrDuplicateInput    = errors.New("checker: duplicate input")
	ErrPreExistingOutput = errors.New("checker: pre-existing output")
)
