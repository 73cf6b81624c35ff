package httpapi

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/verifier"
)

// recipientsToOutputs converts the request's (owner, amount) pairs into
// Coin outputs guarded by a Signature verifier over the named owner.
func recipientsToOutputs(recipients []spendRecipient) ([]types.Output[aggregate.Verifier], error) {
	outputs := make([]types.Output[aggregate.Verifier], 0, len(recipients))
	for _, r := range recipients {
		if r.Amount == 0 {
			return nil, fmt.Errorf("recipient amount must be nonzero")
		}
		outputs = append(outputs, types.Output[aggregate.Verifier]{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(r.Amount)}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: r.Owner}},
		})
	}
	return outputs, nil
}

// parseOutputRef parses the "<hex tx hash>:<index>" form produced by
// types.OutputRef.String.
func parseOutputRef(s string) (types.OutputRef, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return types.OutputRef{}, fmt.Errorf("malformed output ref %q", s)
	}
	raw, err := hex.DecodeString(parts[0])
	if err != nil || len(raw) != kernelcrypto.HashSize {
		return types.OutputRef{}, fmt.Errorf("malformed output ref hash %q", parts[0])
	}
	idx, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return types.OutputRef{}, fmt.Errorf("malformed output ref index %q", parts[1])
	}
	var ref types.OutputRef
	copy(ref.TxHash[:], raw)
	ref.Index = uint32(idx)
	return ref, nil
}
