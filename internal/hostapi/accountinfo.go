// Package hostapi describes the contracts the ledger core expects from its
// host: account handles and a rent-exemption oracle. The core never reaches
// outside these interfaces for chain state; everything else (transaction
// dispatch, signature scheduling, rent accounting internals) belongs to the
// host and is out of scope here.
package hostapi

import (
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// AccountInfo is a single borrowed account handle, modeled after the
// lamports/data/owner/signer shape every instruction processor in the
// original source receives for each account in its accounts list.
type AccountInfo interface {
	// Key is the account's own address.
	Key() types.Pubkey

	// Owner is the program id that owns this account's data.
	Owner() types.Pubkey

	// Lamports returns the account's current balance.
	Lamports() uint64

	// SetLamports overwrites the account's balance. Setting it to zero is
	// how the core signals that the host may reclaim a destroyed account.
	SetLamports(v uint64)

	// Data exposes the account's raw byte buffer for in-place decode.
	Data() []byte

	// SetData overwrites the account's raw byte buffer.
	SetData(b []byte)

	// IsSigner reports whether the transaction's signature set included
	// this account.
	IsSigner() bool

	// IsWritable reports whether the instruction declared this account
	// writable.
	IsWritable() bool
}

// RentOracle decides whether an account's lamport balance is sufficient to
// be exempt from rent given its data length. The core never computes rent
// itself; it only asks the oracle.
type RentOracle interface {
	IsExempt(lamports uint64, dataLen int) bool
}
