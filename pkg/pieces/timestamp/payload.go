// Package timestamp implements the block-timestamping inherent (spec
// §4.14): SetTimestamp records one timestamp per block, monotonic and
// rate-limited; CleanUpTimestamp consumes timestamps old enough that no
// pending dispute can reference them anymore.
package timestamp

import (
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// Defaults for the parameters spec §4.14 leaves configurable.
const (
	DefaultMinimumIntervalMS      = 2000
	DefaultMaxDriftMS             = 60000
	DefaultMinAgeForCleanupMS     = 24 * 60 * 60 * 1000
	DefaultMinAgeForCleanupBlocks = 15000
)

// TypeID identifies the Timestamp payload.
var TypeID = [4]byte{'t', 'i', 'm', 'e'}

// Timestamp is the payload a SetTimestamp inherent produces (spec §4.14).
type Timestamp struct {
	TimeMS uint64
	Block  uint32
}

func (Timestamp) TypeID() [4]byte { return TypeID }

func (t Timestamp) Encode(e *codec.Encoder) {
	e.PutUint64(t.TimeMS)
	e.PutUint32(t.Block)
}

// Decode reads a Timestamp written by Encode.
func Decode(d *codec.Decoder) (Timestamp, error) {
	ms, err := d.GetUint64()
	if err != nil {
		return Timestamp{}, err
	}
	b, err := d.GetUint32()
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{TimeMS: ms, Block: b}, nil
}

// As extracts p as a Timestamp, or ErrBadlyTyped.
func As(p types.AnyPayload) (Timestamp, error) { return types.Extract(p, Timestamp{}, Decode) }
