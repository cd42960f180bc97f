// Package types defines value types and the error taxonomy shared across
// the confidential-token ledger core.
package types

import "encoding/hex"

// PubkeySize is the size of a Pubkey, in bytes.
const PubkeySize = 32

// Pubkey identifies a mint authority, a signer, or an account address in
// the host's account model.
type Pubkey [PubkeySize]byte

// ZeroPubkey is the all-zero pubkey.
var ZeroPubkey = Pubkey{}

// IsZero reports whether p is the all-zero pubkey.
func (p Pubkey) IsZero() bool {
	return p == ZeroPubkey
}

// Bytes returns p as a byte slice.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

// String returns the hex encoding of p.
func (p Pubkey) String() string {
	return hex.EncodeToString(p[:])
}

// PubkeyFromBytes copies b into a Pubkey. b must be exactly PubkeySize
// bytes long.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var p Pubkey
	if len(b) != PubkeySize {
		return p, ErrInvalidInstruction
	}
	copy(p[:], b)
	return p, nil
}
