package money

import "errors"

// Errors returned by Mint/Spend/MintClass/SpendClass (spec §4.10).
var (
	ErrBadlyTyped      = errors.New("money: badly typed payload")
	ErrMintingWithInputs = errors.New("money: mint has inputs")
	ErrMintingNothing  = errors.New("money: mint produces no outputs")
	ErrSpendingNothing = errors.New("money: spend has no inputs")
	ErrOutputsExceedInputs = errors.New("money: outputs exceed inputs")
	ErrValueOverflow   = errors.New("money: value overflow")
	ErrZeroValueCoin   = errors.New("money: zero value coin")
	ErrClassMismatch   = errors.New("money: class id mismatch")
)
