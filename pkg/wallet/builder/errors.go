package builder

import "errors"

// ErrInsufficientFunds is returned when the wallet's fresh unspent coins
// cannot cover a spend's requested outputs, even after greedily adding
// every remaining entry (spec §4.17 step 1).
var ErrInsufficientFunds = errors.New("builder: insufficient funds")

// ErrNoSuchKey is returned by a KeyStore that has no signing key for a
// requested owner.
var ErrNoSuchKey = errors.New("builder: no signing key for owner")

// ErrKittyNotForSale is returned by BuildBuy when the referenced tradable
// kitty is not present in the wallet's fresh_tradable_kitty table.
var ErrKittyNotForSale = errors.New("builder: kitty not listed for sale")
