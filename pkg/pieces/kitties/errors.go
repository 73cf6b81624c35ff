package kitties

import "errors"

// Errors returned by the kitty checker variants (spec §4.11).
var (
	ErrBadlyTyped        = errors.New("kitties: badly typed payload")
	ErrWrongInputCount    = errors.New("kitties: wrong input count")
	ErrWrongOutputCount   = errors.New("kitties: wrong output count")
	ErrMomNotReady        = errors.New("kitties: mom is not rearin to go")
	ErrDadTooTired        = errors.New("kitties: dad is too tired")
	ErrNoFreeBreedings    = errors.New("kitties: no free breedings left")
	ErrBreedingsOverflow  = errors.New("kitties: num_breedings overflow")
	ErrWrongNewMomFields  = errors.New("kitties: new mom fields inconsistent")
	ErrWrongNewDadFields  = errors.New("kitties: new dad fields inconsistent")
	ErrWrongChildDNA      = errors.New("kitties: wrong child dna")
	ErrWrongChildFields   = errors.New("kitties: wrong child fields")
	ErrDNAMismatch        = errors.New("kitties: input/output dna multiset mismatch")
	ErrDuplicateDNA       = errors.New("kitties: duplicate dna")
	ErrNoNameChanged      = errors.New("kitties: no name changed")
	ErrNonNameFieldChanged = errors.New("kitties: a non-name field changed")
	ErrZeroPrice          = errors.New("kitties: price must be positive")
	ErrBaseFieldsChanged  = errors.New("kitties: base kitty fields changed")
	ErrBuyPriceNotMet     = errors.New("kitties: payment does not meet price")
)
