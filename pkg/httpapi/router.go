package httpapi

import "net/http"

// RegisterWallet wires w's routes onto mux, following the plain
// http.NewServeMux + HandleFunc wiring the teacher's main.go uses for its
// own API surface.
func RegisterWallet(mux *http.ServeMux, w *WalletHandlers) {
	mux.HandleFunc("/api/wallet/balance", w.HandleBalance)
	mux.HandleFunc("/api/wallet/kitties", w.HandleKitties)
	mux.HandleFunc("/api/wallet/spend", w.HandleSpend)
	mux.HandleFunc("/api/wallet/buy", w.HandleBuy)
}
