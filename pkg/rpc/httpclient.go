package rpc

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/types"
)

// HTTPClient is a Client talking to a Server (pkg/rpc/server.go) over
// plain HTTP/JSON. It is the cross-process counterpart to LoopbackClient.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds an HTTPClient reaching a node's RPC façade at
// baseURL (e.g. "http://localhost:8080").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, http: http.DefaultClient}
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) (map[string]string, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// GenesisHash implements Client.
func (c *HTTPClient) GenesisHash(ctx context.Context) (kernelcrypto.Hash256, error) {
	body, status, err := c.get(ctx, "/rpc/genesis", nil)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}
	if status != http.StatusOK {
		return kernelcrypto.Hash256{}, fmt.Errorf("rpc: genesis hash: status %d", status)
	}
	return decodeHashField(body["hash"])
}

// GetBlockHash implements Client.
func (c *HTTPClient) GetBlockHash(ctx context.Context, height uint64) (kernelcrypto.Hash256, bool, error) {
	body, status, err := c.get(ctx, "/rpc/block_hash", url.Values{"height": {strconv.FormatUint(height, 10)}})
	if err != nil {
		return kernelcrypto.Hash256{}, false, err
	}
	if status == http.StatusNotFound {
		return kernelcrypto.Hash256{}, false, nil
	}
	if status != http.StatusOK {
		return kernelcrypto.Hash256{}, false, fmt.Errorf("rpc: block hash: status %d", status)
	}
	hash, err := decodeHashField(body["hash"])
	return hash, err == nil, err
}

// GetBlock implements Client.
func (c *HTTPClient) GetBlock(ctx context.Context, hash kernelcrypto.Hash256) (types.Block, bool, error) {
	body, status, err := c.get(ctx, "/rpc/block", url.Values{"hash": {hex.EncodeToString(hash[:])}})
	if err != nil {
		return types.Block{}, false, err
	}
	if status == http.StatusNotFound {
		return types.Block{}, false, nil
	}
	if status != http.StatusOK {
		return types.Block{}, false, fmt.Errorf("rpc: get block: status %d", status)
	}
	raw, err := hex.DecodeString(body["block"])
	if err != nil {
		return types.Block{}, false, err
	}
	block, err := types.DecodeBlock(codec.NewDecoder(raw))
	return block, err == nil, err
}

// GetStorage implements Client.
func (c *HTTPClient) GetStorage(ctx context.Context, key []byte) ([]byte, bool, error) {
	body, status, err := c.get(ctx, "/rpc/storage", url.Values{"key": {hex.EncodeToString(key)}})
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if status != http.StatusOK {
		return nil, false, fmt.Errorf("rpc: get storage: status %d", status)
	}
	value, err := hex.DecodeString(body["value"])
	return value, err == nil, err
}

// SubmitExtrinsic implements Client.
func (c *HTTPClient) SubmitExtrinsic(ctx context.Context, raw []byte) (kernelcrypto.Hash256, error) {
	body := bytes.NewBufferString(hex.EncodeToString(raw))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc/submit", body)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}
	defer resp.Body.Close()
	var respBody map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return kernelcrypto.Hash256{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return kernelcrypto.Hash256{}, fmt.Errorf("rpc: submit extrinsic: %s", respBody["error"])
	}
	return decodeHashField(respBody["hash"])
}

func decodeHashField(s string) (kernelcrypto.Hash256, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != kernelcrypto.HashSize {
		return kernelcrypto.Hash256{}, fmt.Errorf("rpc: malformed hash %q", s)
	}
	var h kernelcrypto.Hash256
	copy(h[:], raw)
	return h, nil
}

var _ Client = (*HTTPClient)(nil)
