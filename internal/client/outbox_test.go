package client

import (
	"testing"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

func TestOutboxStageAndTake(t *testing.T) {
	o := NewOutbox(2)
	mint := types.Pubkey{1}
	account := types.Pubkey{2}

	staged := StagedTransfer{SourceAccount: account, Mint: mint, Data: token.TransferData{}}
	if err := o.Stage(staged); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if got := o.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	got, err := o.Take(account)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got.Mint != mint {
		t.Fatalf("got.Mint = %v, want %v", got.Mint, mint)
	}
	if o.Len() != 0 {
		t.Fatalf("Len() after Take = %d, want 0", o.Len())
	}
}

func TestOutboxTakeRejectsUnstaged(t *testing.T) {
	o := NewOutbox(2)
	if _, err := o.Take(types.Pubkey{9}); err != ErrTransferNotStaged {
		t.Fatalf("error = %v, want ErrTransferNotStaged", err)
	}
}

func TestOutboxStageRejectsOverCapacity(t *testing.T) {
	o := NewOutbox(1)
	if err := o.Stage(StagedTransfer{SourceAccount: types.Pubkey{1}}); err != nil {
		t.Fatalf("Stage first: %v", err)
	}
	if err := o.Stage(StagedTransfer{SourceAccount: types.Pubkey{2}}); err != ErrOutboxFull {
		t.Fatalf("error = %v, want ErrOutboxFull", err)
	}
}

func TestOutboxStageReplacesExistingEntryForSameAccount(t *testing.T) {
	o := NewOutbox(1)
	account := types.Pubkey{1}

	if err := o.Stage(StagedTransfer{SourceAccount: account, Mint: types.Pubkey{1}}); err != nil {
		t.Fatalf("Stage first: %v", err)
	}
	if err := o.Stage(StagedTransfer{SourceAccount: account, Mint: types.Pubkey{2}}); err != nil {
		t.Fatalf("Stage replacement: %v", err)
	}
	if got := o.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	got, ok := o.Peek(account)
	if !ok {
		t.Fatalf("Peek: not found")
	}
	if got.Mint != (types.Pubkey{2}) {
		t.Fatalf("got.Mint = %v, want replacement value", got.Mint)
	}
}

func TestOutboxDiscard(t *testing.T) {
	o := NewOutbox(2)
	account := types.Pubkey{1}
	if err := o.Stage(StagedTransfer{SourceAccount: account}); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	o.Discard(account)
	if o.Len() != 0 {
		t.Fatalf("Len() after Discard = %d, want 0", o.Len())
	}
	if _, ok := o.Peek(account); ok {
		t.Fatalf("Peek found a discarded transfer")
	}
}

func TestOutboxPendingReturnsAllStaged(t *testing.T) {
	o := NewOutbox(3)
	accounts := []types.Pubkey{{1}, {2}, {3}}
	for _, a := range accounts {
		if err := o.Stage(StagedTransfer{SourceAccount: a}); err != nil {
			t.Fatalf("Stage: %v", err)
		}
	}
	pending := o.Pending()
	if len(pending) != len(accounts) {
		t.Fatalf("len(Pending()) = %d, want %d", len(pending), len(accounts))
	}
}
