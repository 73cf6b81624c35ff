package amoeba

import "errors"

// Errors returned by the Creation/Mitosis/Death checker variants (spec
// §4.13).
var (
	ErrBadlyTyped         = errors.New("amoeba: badly typed payload")
	ErrWrongInputCount    = errors.New("amoeba: wrong input count")
	ErrWrongOutputCount   = errors.New("amoeba: wrong output count")
	ErrWrongGeneration    = errors.New("amoeba: wrong generation")
)
