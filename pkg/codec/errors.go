package codec

import "errors"

// ErrRoundTrip is returned by test helpers when decode(encode(v)) != v.
var ErrRoundTrip = errors.New("codec: round-trip mismatch")
