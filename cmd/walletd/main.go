// Command walletd runs a wallet process: it syncs against a remote
// kerneld over the RPC façade, serves balance/kitty queries and
// spend/buy operations over HTTP, and holds its own signing keys.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/utxokernel/kernel/pkg/config"
	"github.com/utxokernel/kernel/pkg/httpapi"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/kvdb"
	"github.com/utxokernel/kernel/pkg/rpc"
	"github.com/utxokernel/kernel/pkg/wallet/builder"
	"github.com/utxokernel/kernel/pkg/wallet/db"
	"github.com/utxokernel/kernel/pkg/wallet/sync"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("[walletd] ")

	nodeURL := flag.String("node", "", "Kernel node RPC base URL (overrides NODE_RPC_URL)")
	showHelp := flag.Bool("help", false, "Show help message")
	flag.Parse()
	if *showHelp {
		flag.Usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *nodeURL != "" {
		cfg.NodeRPCURL = *nodeURL
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	keys, keystore, err := loadKeystore(cfg.KeystorePath)
	if err != nil {
		log.Fatalf("failed to load keystore: %v", err)
	}
	log.Printf("loaded %d signing key(s) from %s", len(keys), cfg.KeystorePath)

	client := rpc.NewHTTPClient(cfg.NodeRPCURL)
	ctx := context.Background()
	genesisHash, err := client.GenesisHash(ctx)
	if err != nil {
		log.Fatalf("failed to reach node at %s: %v", cfg.NodeRPCURL, err)
	}

	kv, err := kvdb.Open("wallet", cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open wallet store: %v", err)
	}
	defer kv.Close()

	wdb, err := db.Open(kv, genesisHash)
	if err != nil {
		log.Fatalf("failed to open wallet database: %v", err)
	}

	loop := sync.New(client, wdb, keystore, nil)
	b := builder.New(client, wdb, keys)

	background, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runSyncLoop(background, loop, cfg.SyncPollInterval)

	mux := http.NewServeMux()
	httpapi.RegisterWallet(mux, httpapi.NewWalletHandlers(wdb, b, nil))
	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		log.Printf("wallet API listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("stopped")
}

// runSyncLoop calls loop.Sync on a fixed interval until ctx is cancelled,
// logging (not fataling) any error: a transient RPC failure shouldn't kill
// the wallet process.
func runSyncLoop(ctx context.Context, loop *sync.Loop, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := loop.Sync(ctx); err != nil {
			log.Printf("sync error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// loadKeystore reads a flat "<hex pubkey> <hex seed>" per line keystore
// file, returning both the signing KeyStore and the membership Keystore
// the sync loop filters ownership against.
func loadKeystore(path string) (builder.MemKeyStore, sync.Keystore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	signer := make(builder.MemKeyStore)
	members := make(sync.Keystore)
	lines := splitLines(string(data))
	for _, line := range lines {
		if line == "" {
			continue
		}
		pubHex, seedHex, err := splitKeyLine(line)
		if err != nil {
			return nil, nil, err
		}
		pubRaw, err := hex.DecodeString(pubHex)
		if err != nil || len(pubRaw) != kernelcrypto.PublicKeySize {
			return nil, nil, err
		}
		seedRaw, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, nil, err
		}
		var pub kernelcrypto.PublicKey
		copy(pub[:], pubRaw)
		priv := ed25519PrivateKeyFromSeed(seedRaw)
		signer[pub] = func(msg []byte) kernelcrypto.Signature { return kernelcrypto.Sign(priv, msg) }
		members[pub] = struct{}{}
	}
	return signer, members, nil
}
