package sync

import "errors"

// ErrInconsistentDB is returned when the wallet database's recorded state
// cannot be reconciled with itself during an unwind (e.g. a block_hashes
// entry with no corresponding blocks entry).
var ErrInconsistentDB = errors.New("sync: wallet database is inconsistent")
