package token

import (
	"encoding/binary"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// MintSize is the fixed on-wire size of a Mint record: 32B authority,
// 8B supply, 1B initialized.
const MintSize = types.PubkeySize + 8 + 1

// AccountSize is the fixed on-wire size of an Account record: 32B mint,
// 1B initialized, 32B commitment.
const AccountSize = types.PubkeySize + 1 + curve.PointSize

// Mint is the ledger record an InitializeMint/Mint instruction operates
// on. Supply accumulates cleartext mint amounts; Initialized is a
// single-shot latch.
type Mint struct {
	Authority   types.Pubkey
	Supply      uint64
	Initialized bool
}

// Encode packs m into its fixed 41-byte wire form.
func (m Mint) Encode() []byte {
	buf := make([]byte, MintSize)
	copy(buf[:types.PubkeySize], m.Authority[:])
	binary.LittleEndian.PutUint64(buf[types.PubkeySize:types.PubkeySize+8], m.Supply)
	if m.Initialized {
		buf[types.PubkeySize+8] = 1
	}
	return buf
}

// DecodeMint unpacks a 41-byte Mint record.
func DecodeMint(b []byte) (Mint, error) {
	if len(b) != MintSize {
		return Mint{}, types.ErrInvalidInstruction
	}
	authority, err := types.PubkeyFromBytes(b[:types.PubkeySize])
	if err != nil {
		return Mint{}, err
	}
	supply := binary.LittleEndian.Uint64(b[types.PubkeySize : types.PubkeySize+8])
	initialized := b[types.PubkeySize+8] != 0
	return Mint{Authority: authority, Supply: supply, Initialized: initialized}, nil
}

// Account is the ledger record a token account occupies. It is created
// uninitialized (zeroed), transitions to initialized exactly once, and is
// destroyed by the operation that next consumes it.
type Account struct {
	Mint        types.Pubkey
	Initialized bool
	Commitment  zkp.Commitment
}

// Encode packs a into its fixed 65-byte wire form.
func (a Account) Encode() []byte {
	buf := make([]byte, AccountSize)
	copy(buf[:types.PubkeySize], a.Mint[:])
	if a.Initialized {
		buf[types.PubkeySize] = 1
	}
	enc := a.Commitment.Encode()
	copy(buf[types.PubkeySize+1:], enc[:])
	return buf
}

// DecodeAccount unpacks a 65-byte Account record.
func DecodeAccount(b []byte) (Account, error) {
	if len(b) != AccountSize {
		return Account{}, types.ErrInvalidInstruction
	}
	mint, err := types.PubkeyFromBytes(b[:types.PubkeySize])
	if err != nil {
		return Account{}, err
	}
	initialized := b[types.PubkeySize] != 0
	commitment, err := zkp.DecodeCommitment(b[types.PubkeySize+1:])
	if err != nil {
		return Account{}, types.ErrInvalidProof
	}
	return Account{Mint: mint, Initialized: initialized, Commitment: commitment}, nil
}
