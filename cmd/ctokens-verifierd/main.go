// Command ctokens-verifierd runs a standalone instruction-processing
// benchmark loop against the confidential-token core: it assembles
// synthetic InitializeMint/Mint/Transfer/CloseAccount instructions,
// dispatches them through internal/token.Processor exactly as a host
// would, and exposes the resulting throughput and rejection metrics over
// HTTP. The core itself has no network protocol or host process of its
// own (spec.md §5); this binary exists to exercise and observe it
// standalone.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/hostapi"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/logging"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/metrics"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/common"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

const version = "0.1.0"

// Config holds verifier daemon configuration.
type Config struct {
	MetricsAddr   string
	LogLevel      string
	CycleInterval time.Duration
	MintAmount    uint64
	RentLamports  uint64
	RentPerByte   uint64
}

func main() {
	cfg := parseFlags()

	fmt.Printf("ctokens-verifierd v%s\n", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("shutting down...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", "127.0.0.1:9464", "Prometheus /metrics listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&cfg.CycleInterval, "cycle-interval", time.Second, "Interval between benchmark cycles")
	flag.Uint64Var(&cfg.MintAmount, "mint-amount", 1000, "Amount minted at the start of each benchmark cycle")
	flag.Uint64Var(&cfg.RentLamports, "rent-base", 0, "Base rent-exemption lamports")
	flag.Uint64Var(&cfg.RentPerByte, "rent-per-byte", 0, "Rent-exemption lamports per account byte")

	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg *Config) error {
	log := logging.New(cfg.LogLevel)
	mtr := metrics.NewCollector()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		log.Info("metrics server listening", map[string]interface{}{"addr": cfg.MetricsAddr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server stopped", err, nil)
		}
	}()

	rent := hostapi.NewStaticRentOracle(cfg.RentLamports, cfg.RentPerByte)
	processor := &token.Processor{Rent: rent, Log: log, Metrics: mtr}

	bench, err := newBenchmark(processor)
	if err != nil {
		return fmt.Errorf("initializing benchmark mint: %w", err)
	}

	ticker := time.NewTicker(cfg.CycleInterval)
	defer ticker.Stop()

	log.Info("verifier benchmark loop started", nil)
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
			log.Info("verifier benchmark loop stopped", nil)
			return nil
		case <-ticker.C:
			if err := bench.runOnce(cfg.MintAmount); err != nil {
				log.Error("benchmark cycle failed", err, nil)
			}
		}
	}
}

// benchmark exercises every instruction kind once per cycle: a Mint into
// a fresh account, a Transfer splitting that account's balance with a
// second fresh account, and a CloseAccount reclaiming the transfer's
// change output. Every commitment opening involved is generated and kept
// locally, the same way internal/token's own tests build a TransferData
// from scratch, rather than going through the two-party client package
// (which never hands the new destination openings back to either side).
type benchmark struct {
	processor *token.Processor
	mintKey   types.Pubkey
	authority types.Pubkey
	mintAcc   *hostapi.MemoryAccount
}

func newBenchmark(processor *token.Processor) (*benchmark, error) {
	mintKey, err := randomPubkey()
	if err != nil {
		return nil, err
	}
	authority, err := randomPubkey()
	if err != nil {
		return nil, err
	}

	mintAcc := hostapi.NewMemoryAccount(mintKey, mintKey, 0, token.MintSize, false, true)
	ix := append([]byte{token.TagInitializeMint}, authority.Bytes()...)
	if err := processor.Process([]hostapi.AccountInfo{mintAcc}, ix); err != nil {
		return nil, err
	}

	return &benchmark{processor: processor, mintKey: mintKey, authority: authority, mintAcc: mintAcc}, nil
}

func (b *benchmark) runOnce(amount uint64) error {
	senderKey, err := randomPubkey()
	if err != nil {
		return err
	}
	senderAcc := hostapi.NewMemoryAccount(senderKey, b.mintKey, 0, token.AccountSize, false, true)
	authorityAcc := hostapi.NewMemoryAccount(b.authority, b.authority, 0, 0, true, false)

	senderCommitment, senderOpening, err := zkp.Commit(amount, nil)
	if err != nil {
		return err
	}
	mintLabel := token.MintLabel(b.mintKey, amount, senderCommitment)
	mintRangeProof, err := zkp.ProveBitRange(amount, senderOpening, token.RangeProofBits, zkp.RangeProofLabel(mintLabel))
	if err != nil {
		return err
	}
	mintPok, err := zkp.ProveKnowledge(senderOpening, mintLabel)
	if err != nil {
		return err
	}
	mintData := token.MintData{Amount: amount, OutCommitment: senderCommitment, RangeProof: mintRangeProof, Pok: mintPok}
	mintIx := append([]byte{token.TagMint}, mintData.Encode()...)
	if err := b.processor.Process([]hostapi.AccountInfo{b.mintAcc, senderAcc, authorityAcc}, mintIx); err != nil {
		return fmt.Errorf("mint: %w", err)
	}

	receiverKey, err := randomPubkey()
	if err != nil {
		return err
	}
	receiverCommitment, receiverOpening, err := zkp.Commit(0, nil)
	if err != nil {
		return err
	}
	receiverAcc := hostapi.NewMemoryAccount(receiverKey, b.mintKey, 0, token.AccountSize, false, true)
	receiverAcc.SetData(token.Account{Mint: b.mintKey, Initialized: true, Commitment: receiverCommitment}.Encode())

	transferAmount := amount / 2
	change := amount - transferAmount
	newBalance := transferAmount

	changeCommitment, changeOpening, err := zkp.Commit(change, nil)
	if err != nil {
		return err
	}
	interimCommitment, interimOpening, err := zkp.Commit(transferAmount, nil)
	if err != nil {
		return err
	}
	_ = interimCommitment
	transferLabel := token.TransferLabel(b.mintKey, senderCommitment, changeCommitment)

	changeRangeProof, err := zkp.ProveBitRange(change, changeOpening, token.RangeProofBits, zkp.RangeProofLabel(transferLabel))
	if err != nil {
		return err
	}
	senderBlindingDelta := senderOpening.Sub(changeOpening).Sub(interimOpening)
	senderPok, err := zkp.ProveKnowledge(senderBlindingDelta, transferLabel)
	if err != nil {
		return err
	}

	newBalanceCommitment, newBalanceOpening, err := zkp.Commit(newBalance, nil)
	if err != nil {
		return err
	}
	newBalanceRangeProof, err := zkp.ProveBitRange(newBalance, newBalanceOpening, token.RangeProofBits, zkp.RangeProofLabel(transferLabel))
	if err != nil {
		return err
	}
	receiverBlindingDelta := receiverOpening.Add(interimOpening).Sub(newBalanceOpening)
	sharedChallenge := zkp.AggregateChallenge(senderPok.N, transferLabel)
	receiverPok, err := zkp.ProveWithChallenge(receiverBlindingDelta, sharedChallenge)
	if err != nil {
		return err
	}

	transferData := token.TransferData{
		InCommitments:  [2]zkp.Commitment{senderCommitment, receiverCommitment},
		OutCommitments: [2]zkp.Commitment{changeCommitment, newBalanceCommitment},
		RangeProofs:    [2]zkp.RangeProof{changeRangeProof, newBalanceRangeProof},
		Poks:           [2]zkp.ProofOfKnowledge{senderPok, receiverPok},
	}

	dst0Key, err := randomPubkey()
	if err != nil {
		return err
	}
	dst1Key, err := randomPubkey()
	if err != nil {
		return err
	}
	dst0Acc := hostapi.NewMemoryAccount(dst0Key, b.mintKey, 0, token.AccountSize, false, true)
	dst1Acc := hostapi.NewMemoryAccount(dst1Key, b.mintKey, 0, token.AccountSize, false, true)
	readonlyMintAcc := hostapi.NewMemoryAccount(b.mintKey, b.mintKey, 0, 0, false, false)

	transferIx := append([]byte{token.TagTransfer}, transferData.Encode()...)
	transferAccounts := []hostapi.AccountInfo{readonlyMintAcc, senderAcc, receiverAcc, dst0Acc, dst1Acc}
	if err := b.processor.Process(transferAccounts, transferIx); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}

	reclaimKey, err := randomPubkey()
	if err != nil {
		return err
	}
	reclaimAcc := hostapi.NewMemoryAccount(reclaimKey, reclaimKey, 1, 0, false, true)
	dst0Acc.SetLamports(1)

	closeData := token.CloseAccountData{Amount: change, Commitment: changeCommitment, Opening: changeOpening}
	closeIx := append([]byte{token.TagCloseAccount}, closeData.Encode()...)
	if err := b.processor.Process([]hostapi.AccountInfo{dst0Acc, reclaimAcc}, closeIx); err != nil {
		return fmt.Errorf("close account: %w", err)
	}

	return nil
}

func randomPubkey() (types.Pubkey, error) {
	b, err := common.RandomBytes(types.PubkeySize)
	if err != nil {
		return types.Pubkey{}, err
	}
	return types.PubkeyFromBytes(b)
}
