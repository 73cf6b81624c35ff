// Command kerneld runs a single-process kernel node: persistent store,
// executive, RPC façade, and HTTP API, wired together the way the
// teacher's root main.go wires its own service (flag parsing, env config,
// signal-driven graceful shutdown).
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/config"
	"github.com/utxokernel/kernel/pkg/executive"
	"github.com/utxokernel/kernel/pkg/kvdb"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/rpc"
	"github.com/utxokernel/kernel/pkg/store"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/verifier"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("[kerneld] ")

	genesisPath := flag.String("genesis", "", "Path to genesis.yaml (overrides GENESIS_PATH)")
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
	if *genesisPath != "" {
		cfg.GenesisPath = *genesisPath
	}
	if err := cfg.ValidateForDevelopment(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	genesis, err := config.LoadGenesisConfig(cfg.GenesisPath)
	if err != nil {
		log.Fatalf("failed to load genesis: %v", err)
	}
	if err := genesis.Validate(); err != nil {
		log.Fatalf("invalid genesis: %v", err)
	}

	kv, err := kvdb.Open("kernel", cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer kv.Close()

	st := store.New(kv)
	client := rpc.NewLoopbackClient(st, nil)

	log.Printf("chain %s: minting %d genesis allocation(s)", genesis.ChainID, len(genesis.Allocations))
	allocTx, err := genesisMintTransaction(genesis)
	if err != nil {
		log.Fatalf("failed to build genesis allocations: %v", err)
	}
	if allocTx != nil {
		if _, err := client.ProduceBlock([]executive.Transaction{*allocTx}); err != nil {
			log.Fatalf("failed to apply genesis allocations: %v", err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	rpc.NewServer(client, log.New(os.Stdout, "[kerneld] [rpc] ", log.LstdFlags)).Register(mux)
	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Printf("kernel node listening on %s", cfg.ListenAddr)
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

// genesisMintTransaction builds the one Mint transaction that credits
// every genesis.yaml allocation, or nil if there are none.
func genesisMintTransaction(genesis *config.GenesisConfig) (*executive.Transaction, error) {
	if len(genesis.Allocations) == 0 {
		return nil, nil
	}
	outputs := make([]types.Output[aggregate.Verifier], 0, len(genesis.Allocations))
	for _, a := range genesis.Allocations {
		pk, err := a.PublicKey()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, types.Output[aggregate.Verifier]{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: a.Value()}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: pk}},
		})
	}
	tx := executive.Transaction{
		Outputs: outputs,
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	return &tx, nil
}
