package client

import (
	"errors"
	"sync"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// Outbox errors.
var (
	ErrOutboxFull        = errors.New("client: outbox is full")
	ErrTransferNotStaged = errors.New("client: transfer not staged")
)

// StagedTransfer is a TransferData the sender has assembled but not yet
// submitted to the host, indexed by the sender's source account key so a
// wallet can tell which of its accounts is currently tied up in flight.
type StagedTransfer struct {
	SourceAccount types.Pubkey
	Mint          types.Pubkey
	Data          token.TransferData
}

// Outbox stages assembled transfers between Step2 and submission to the
// host. It holds no chain state and performs no verification itself; a
// caller runs token.VerifyTransferData before staging if it wants a
// pre-submission check.
type Outbox struct {
	mu      sync.RWMutex
	staged  map[types.Pubkey]StagedTransfer
	maxSize int
}

// NewOutbox creates an outbox that holds at most maxSize staged transfers.
func NewOutbox(maxSize int) *Outbox {
	return &Outbox{
		staged:  make(map[types.Pubkey]StagedTransfer),
		maxSize: maxSize,
	}
}

// Stage records a transfer keyed by its source account. Staging a second
// transfer for the same source account replaces the first: a sender can
// only have one transfer in flight from a given account, since that
// account's commitment changes under the first transfer.
func (o *Outbox) Stage(t StagedTransfer) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.staged[t.SourceAccount]; !exists && len(o.staged) >= o.maxSize {
		return ErrOutboxFull
	}
	o.staged[t.SourceAccount] = t
	return nil
}

// Take removes and returns the staged transfer for sourceAccount.
func (o *Outbox) Take(sourceAccount types.Pubkey) (StagedTransfer, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	t, exists := o.staged[sourceAccount]
	if !exists {
		return StagedTransfer{}, ErrTransferNotStaged
	}
	delete(o.staged, sourceAccount)
	return t, nil
}

// Peek returns the staged transfer for sourceAccount without removing it.
func (o *Outbox) Peek(sourceAccount types.Pubkey) (StagedTransfer, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	t, exists := o.staged[sourceAccount]
	return t, exists
}

// Discard drops a staged transfer without submitting it, e.g. after the
// host reports the source account no longer holds the expected commitment.
func (o *Outbox) Discard(sourceAccount types.Pubkey) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.staged, sourceAccount)
}

// Len reports the number of transfers currently staged.
func (o *Outbox) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.staged)
}

// Pending returns every currently staged transfer.
func (o *Outbox) Pending() []StagedTransfer {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]StagedTransfer, 0, len(o.staged))
	for _, t := range o.staged {
		out = append(out, t)
	}
	return out
}
