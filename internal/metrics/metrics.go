// Package metrics exposes Prometheus counters and histograms for the
// instruction processor, so a verifier daemon can report throughput and
// rejection rates without the core depending on any particular exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds every metric the processor updates while dispatching
// instructions. A nil *Collector is valid everywhere it's accepted: every
// method on it is a no-op, so callers that don't care about metrics can
// simply not construct one.
type Collector struct {
	InitializeMintCount prometheus.Counter
	MintCount           prometheus.Counter
	TransferCount       prometheus.Counter
	CloseAccountCount   prometheus.Counter

	VerificationSucceeded prometheus.Counter
	VerificationFailed    prometheus.Counter

	InstructionLatency *prometheus.HistogramVec
}

// NewCollector registers and returns a fresh Collector. Call once per
// process; registering the same metric name twice panics, matching
// promauto's own behavior.
func NewCollector() *Collector {
	return &Collector{
		InitializeMintCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ctokens_initialize_mint_total",
			Help: "Total number of InitializeMint instructions processed.",
		}),
		MintCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ctokens_mint_total",
			Help: "Total number of Mint instructions processed.",
		}),
		TransferCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ctokens_transfer_total",
			Help: "Total number of Transfer instructions processed.",
		}),
		CloseAccountCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ctokens_close_account_total",
			Help: "Total number of CloseAccount instructions processed.",
		}),
		VerificationSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ctokens_verification_succeeded_total",
			Help: "Total number of instructions that passed all cryptographic checks.",
		}),
		VerificationFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ctokens_verification_failed_total",
			Help: "Total number of instructions rejected by a cryptographic or structural check.",
		}),
		InstructionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ctokens_instruction_latency_seconds",
			Help:    "Instruction processing latency in seconds, by instruction kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"instruction"}),
	}
}

// CountInstruction increments the per-kind instruction counter.
func (c *Collector) CountInstruction(kind string) {
	if c == nil {
		return
	}
	switch kind {
	case "initialize_mint":
		c.InitializeMintCount.Inc()
	case "mint":
		c.MintCount.Inc()
	case "transfer":
		c.TransferCount.Inc()
	case "close_account":
		c.CloseAccountCount.Inc()
	}
}

// RecordVerification records whether an instruction's cryptographic and
// structural checks passed.
func (c *Collector) RecordVerification(ok bool) {
	if c == nil {
		return
	}
	if ok {
		c.VerificationSucceeded.Inc()
	} else {
		c.VerificationFailed.Inc()
	}
}

// ObserveLatency records how long an instruction of the given kind took
// to process, measured from start to the moment the caller calls this.
func (c *Collector) ObserveLatency(kind string, start time.Time) {
	if c == nil {
		return
	}
	c.InstructionLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
