// Package parachaininfo implements the relay-chain anchoring inherent
// (spec §4.15): SetParachainInfo records the latest relay block this
// parachain has observed and publishes it to a side channel the runtime
// exposes for later APIs.
package parachaininfo

import (
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/types"
)

// TypeID identifies the ParachainInfo payload.
var TypeID = [4]byte{'p', 'a', 'r', 'a'}

// ParachainInfo is the payload SetParachainInfo produces (spec §4.15).
type ParachainInfo struct {
	RelayParentNumber      uint32
	RelayParentStorageRoot kernelcrypto.Hash256
	ParentHead             []byte
	RelayChainState        []byte
	DownwardMessages       []byte
	HorizontalMessages     []byte
}

func (ParachainInfo) TypeID() [4]byte { return TypeID }

func (p ParachainInfo) Encode(e *codec.Encoder) {
	e.PutUint32(p.RelayParentNumber)
	e.PutBytes(p.RelayParentStorageRoot[:])
	e.PutBytesWithLen(p.ParentHead)
	e.PutBytesWithLen(p.RelayChainState)
	e.PutBytesWithLen(p.DownwardMessages)
	e.PutBytesWithLen(p.HorizontalMessages)
}

// Decode reads a ParachainInfo written by Encode.
func Decode(d *codec.Decoder) (ParachainInfo, error) {
	var p ParachainInfo
	num, err := d.GetUint32()
	if err != nil {
		return p, err
	}
	root, err := d.GetBytes(kernelcrypto.HashSize)
	if err != nil {
		return p, err
	}
	head, err := d.GetBytesWithLen()
	if err != nil {
		return p, err
	}
	state, err := d.GetBytesWithLen()
	if err != nil {
		return p, err
	}
	dm, err := d.GetBytesWithLen()
	if err != nil {
		return p, err
	}
	hm, err := d.GetBytesWithLen()
	if err != nil {
		return p, err
	}
	p.RelayParentNumber = num
	copy(p.RelayParentStorageRoot[:], root)
	p.ParentHead = append([]byte(nil), head...)
	p.RelayChainState = append([]byte(nil), state...)
	p.DownwardMessages = append([]byte(nil), dm...)
	p.HorizontalMessages = append([]byte(nil), hm...)
	return p, nil
}

// As extracts p as a ParachainInfo, or ErrBadlyTyped.
func As(p types.AnyPayload) (ParachainInfo, error) { return types.Extract(p, ParachainInfo{}, Decode) }
