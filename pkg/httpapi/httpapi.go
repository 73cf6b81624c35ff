// Package httpapi is the wallet's optional HTTP façade (spec §6), mirroring
// the shape of pkg/server/*_handlers.go: one handler struct per concern,
// wrapping a service plus a prefixed *log.Logger, writing plain JSON.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/wallet/builder"
	"github.com/utxokernel/kernel/pkg/wallet/db"
)

// WalletHandlers serves the wallet's balance/ownership queries and its
// spend/buy operations over HTTP.
type WalletHandlers struct {
	db      *db.DB
	builder *builder.Builder
	logger  *log.Logger
}

// NewWalletHandlers builds a WalletHandlers over wdb and b. A nil logger
// gets the package's default prefix.
func NewWalletHandlers(wdb *db.DB, b *builder.Builder, logger *log.Logger) *WalletHandlers {
	if logger == nil {
		logger = log.New(log.Writer(), "[WalletAPI] ", log.LstdFlags)
	}
	return &WalletHandlers{db: wdb, builder: b, logger: logger}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// HandleBalance handles GET /api/wallet/balance, returning the wallet's
// fresh unspent coins.
func (h *WalletHandlers) HandleBalance(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if r.Method != http.MethodGet {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := h.db.ListUnspent()
	if err != nil {
		h.logger.Printf("request %s: list unspent: %v", requestID, err)
		writeJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	var total uint64
	coins := make([]balanceEntry, 0, len(entries))
	for _, e := range entries {
		coins = append(coins, balanceEntry{
			Ref:    e.Ref.String(),
			Owner:  e.Record.Owner,
			Amount: e.Record.Amount.CapToUint64(),
		})
		total += e.Record.Amount.CapToUint64()
	}
	writeJSON(w, balanceResponse{Coins: coins, Total: total})
}

type balanceEntry struct {
	Ref    string                 `json:"ref"`
	Owner  kernelcrypto.PublicKey `json:"owner"`
	Amount uint64                 `json:"amount"`
}

type balanceResponse struct {
	Coins []balanceEntry `json:"coins"`
	Total uint64         `json:"total"`
}

// HandleKitties handles GET /api/wallet/kitties, listing the wallet's
// owned, not-currently-listed kitties.
func (h *WalletHandlers) HandleKitties(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if r.Method != http.MethodGet {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := h.db.ListFreshKitty()
	if err != nil {
		h.logger.Printf("request %s: list kitties: %v", requestID, err)
		writeJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]kittyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, kittyEntry{Ref: e.Ref.String(), Owner: e.Record.Owner, Name: string(e.Record.Data.Name[:])})
	}
	writeJSON(w, out)
}

type kittyEntry struct {
	Ref   string                 `json:"ref"`
	Owner kernelcrypto.PublicKey `json:"owner"`
	Name  string                 `json:"name"`
}

type spendRecipient struct {
	Owner  kernelcrypto.PublicKey `json:"owner"`
	Amount uint64                 `json:"amount"`
}

type spendRequest struct {
	Recipients  []spendRecipient `json:"recipients"`
	ChangeOwner kernelcrypto.PublicKey `json:"change_owner"`
}

type submitResponse struct {
	TxHash kernelcrypto.Hash256 `json:"tx_hash"`
}

// HandleSpend handles POST /api/wallet/spend: builds, signs, and submits a
// transaction paying req.Recipients out of the wallet's fresh coins.
func (h *WalletHandlers) HandleSpend(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req spendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Recipients) == 0 {
		writeJSONError(w, "recipients must be non-empty", http.StatusBadRequest)
		return
	}

	outputs, err := recipientsToOutputs(req.Recipients)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	txHash, err := h.builder.BuildSpend(r.Context(), outputs, nil, req.ChangeOwner)
	if err != nil {
		h.logger.Printf("request %s: build spend: %v", requestID, err)
		if errors.Is(err, builder.ErrInsufficientFunds) {
			writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.logger.Printf("request %s: submitted spend %x", requestID, txHash)
	writeJSON(w, submitResponse{TxHash: txHash})
}

type buyRequest struct {
	ListingRef string                 `json:"listing_ref"`
	Buyer      kernelcrypto.PublicKey `json:"buyer"`
}

// HandleBuy handles POST /api/wallet/buy: builds, signs, and submits an
// atomic purchase of a listed tradable kitty.
func (h *WalletHandlers) HandleBuy(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ref, err := parseOutputRef(req.ListingRef)
	if err != nil {
		writeJSONError(w, "invalid listing_ref", http.StatusBadRequest)
		return
	}

	txHash, err := h.builder.BuildBuy(r.Context(), ref, req.Buyer, nil)
	if err != nil {
		h.logger.Printf("request %s: build buy: %v", requestID, err)
		if errors.Is(err, builder.ErrKittyNotForSale) || errors.Is(err, builder.ErrInsufficientFunds) {
			writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.logger.Printf("request %s: submitted buy %x", requestID, txHash)
	writeJSON(w, submitResponse{TxHash: txHash})
}
