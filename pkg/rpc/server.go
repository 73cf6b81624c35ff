package rpc

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
)

// errInvalidHash is a local parse error; it never escapes this file.
var errInvalidHash = errors.New("rpc: invalid hash")

// Server exposes a Client over plain HTTP/JSON, letting a wallet process
// reach a node running in a different process (pkg/rpc.HTTPClient is its
// counterpart). Routes and logging follow pkg/server/*_handlers.go's
// shape: one struct wrapping the service plus a bracket-prefixed logger.
type Server struct {
	client Client
	logger *log.Logger
}

// NewServer builds a Server fronting client.
func NewServer(client Client, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[rpcapi] ", log.LstdFlags)
	}
	return &Server{client: client, logger: logger}
}

// Register wires s's routes onto mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/rpc/genesis", s.handleGenesis)
	mux.HandleFunc("/rpc/block_hash", s.handleBlockHash)
	mux.HandleFunc("/rpc/block", s.handleBlock)
	mux.HandleFunc("/rpc/storage", s.handleStorage)
	mux.HandleFunc("/rpc/submit", s.handleSubmit)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, requestID string, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "request_id": requestID})
}

func (s *Server) handleGenesis(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	hash, err := s.client.GenesisHash(r.Context())
	if err != nil {
		s.logger.Printf("request %s: genesis hash: %v", requestID, err)
		writeJSONError(w, requestID, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"hash": hex.EncodeToString(hash[:])})
}

func (s *Server) handleBlockHash(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	height, err := parseUint(r.URL.Query().Get("height"))
	if err != nil {
		writeJSONError(w, requestID, "invalid height", http.StatusBadRequest)
		return
	}
	hash, ok, err := s.client.GetBlockHash(r.Context(), height)
	if err != nil {
		s.logger.Printf("request %s: block hash: %v", requestID, err)
		writeJSONError(w, requestID, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSONError(w, requestID, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"hash": hex.EncodeToString(hash[:])})
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	hash, err := parseHash(r.URL.Query().Get("hash"))
	if err != nil {
		writeJSONError(w, requestID, "invalid hash", http.StatusBadRequest)
		return
	}
	block, ok, err := s.client.GetBlock(r.Context(), hash)
	if err != nil {
		s.logger.Printf("request %s: get block: %v", requestID, err)
		writeJSONError(w, requestID, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSONError(w, requestID, "not found", http.StatusNotFound)
		return
	}
	e := codec.NewEncoder()
	block.Encode(e)
	writeJSON(w, map[string]string{"block": hex.EncodeToString(e.Bytes())})
}

func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	key, err := hex.DecodeString(r.URL.Query().Get("key"))
	if err != nil {
		writeJSONError(w, requestID, "invalid key", http.StatusBadRequest)
		return
	}
	value, ok, err := s.client.GetStorage(r.Context(), key)
	if err != nil {
		s.logger.Printf("request %s: get storage: %v", requestID, err)
		writeJSONError(w, requestID, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSONError(w, requestID, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"value": hex.EncodeToString(value)})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if r.Method != http.MethodPost {
		writeJSONError(w, requestID, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, requestID, "failed to read body", http.StatusBadRequest)
		return
	}
	raw, err := hex.DecodeString(string(body))
	if err != nil {
		writeJSONError(w, requestID, "body must be hex-encoded", http.StatusBadRequest)
		return
	}
	hash, err := s.client.SubmitExtrinsic(r.Context(), raw)
	if err != nil {
		s.logger.Printf("request %s: submit: %v", requestID, err)
		writeJSONError(w, requestID, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, map[string]string{"hash": hex.EncodeToString(hash[:])})
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func parseHash(s string) (kernelcrypto.Hash256, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != kernelcrypto.HashSize {
		return kernelcrypto.Hash256{}, errInvalidHash
	}
	var h kernelcrypto.Hash256
	copy(h[:], raw)
	return h, nil
}
