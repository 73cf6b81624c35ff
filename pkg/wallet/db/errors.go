package db

import "errors"

// ErrNotFound is returned by a lookup method when the requested key is
// absent from its table.
var ErrNotFound = errors.New("walletdb: not found")

// ErrGenesisMismatch is returned by Open when the database's recorded
// genesis hash disagrees with the one the node reports (spec §4.16 "Opening
// the database verifies the on-disk genesis hash").
var ErrGenesisMismatch = errors.New("walletdb: genesis hash mismatch")
