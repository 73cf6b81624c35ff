package executive

import (
	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/checker"
	"github.com/utxokernel/kernel/pkg/pieces/parachaininfo"
	"github.com/utxokernel/kernel/pkg/pieces/timestamp"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/verifier"
)

// inherentPrototype returns the (stateless, zero-valued) checker variant
// for tag, if tag is one of aggregate.InherentTags.
func inherentPrototype(tag uint8) (checker.InherentCreator, bool) {
	switch tag {
	case aggregate.TagSetTimestamp:
		return timestamp.SetTimestamp{}, true
	case aggregate.TagSetParachainInfo:
		return parachaininfo.SetParachainInfo{}, true
	default:
		return nil, false
	}
}

// BuildInherent authors a single inherent transaction of the given kind
// (spec §4.9 steps 2-3). previous is the ref to the prior block's inherent
// output of the same kind, nil at the bootstrap/genesis case.
func BuildInherent(tag uint8, authoringData any, previous *types.OutputRef) (Transaction, error) {
	proto, ok := inherentPrototype(tag)
	if !ok {
		return Transaction{}, checker.ErrBadlyTyped
	}
	inputs, peeks, outputs, err := proto.CreateInherent(authoringData, previous)
	if err != nil {
		return Transaction{}, err
	}
	txOutputs := make([]types.Output[aggregate.Verifier], len(outputs))
	for i, p := range outputs {
		// Inherent outputs are unlocked: the next block's inherent of the
		// same kind consumes them without a signature, and nothing else is
		// meant to gate that handoff.
		txOutputs[i] = types.Output[aggregate.Verifier]{Payload: p, Verifier: aggregate.Verifier{Inner: verifier.UpForGrabs{}}}
	}
	return Transaction{
		Inputs:  inputs,
		Peeks:   peeks,
		Outputs: txOutputs,
		Checker: aggregate.Checker{Inner: proto},
	}, nil
}

// BuildInherents authors the full ordered set of inherent transactions a
// block author must place at the front of a non-genesis block (spec §4.9).
// authoringData and previous are keyed by checker tag; a tag absent from
// authoringData is skipped (useful for deployments that don't wire every
// inherent-capable piece).
func BuildInherents(authoringData map[uint8]any, previous map[uint8]*types.OutputRef) ([]Transaction, error) {
	txs := make([]Transaction, 0, len(aggregate.InherentTags))
	for _, tag := range aggregate.InherentTags {
		data, ok := authoringData[tag]
		if !ok {
			continue
		}
		tx, err := BuildInherent(tag, data, previous[tag])
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// CheckInherents re-validates block's leading inherent transactions against
// the importer's local data (clocks, relay info, ...), per spec §4.9 "At
// importing". It assumes ApplyExtrinsic/ExecuteBlock already enforced
// ordering; this pass only surfaces soft/fatal problems for the inherents
// actually present.
func CheckInherents(block types.Block, importingData map[uint8]any) (*checker.CheckInherentsResult, error) {
	var result checker.CheckInherentsResult
	for i, tag := range aggregate.InherentTags {
		if i >= len(block.Extrinsics) {
			break
		}
		tx, err := types.DecodeTransaction[aggregate.Verifier, aggregate.Checker](block.Extrinsics[i], aggregate.DecodeVerifier, aggregate.DecodeChecker)
		if err != nil {
			return nil, err
		}
		if tx.Checker.Tag() != tag {
			continue
		}
		importer, ok := tx.Checker.AsInherentImporter()
		if !ok {
			continue
		}
		outs := make([]types.AnyPayload, len(tx.Outputs))
		for j, o := range tx.Outputs {
			outs[j] = o.Payload
		}
		importer.CheckInherent(importingData[tag], outs, &result)
	}
	return &result, nil
}
