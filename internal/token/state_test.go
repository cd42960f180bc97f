package token

import (
	"bytes"
	"testing"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

func TestMintEncodeDecodeRoundTrip(t *testing.T) {
	m := Mint{Authority: types.Pubkey{1, 2, 3}, Supply: 100, Initialized: true}
	enc := m.Encode()
	if len(enc) != MintSize {
		t.Fatalf("Encode length = %d, want %d", len(enc), MintSize)
	}
	got, err := DecodeMint(enc)
	if err != nil {
		t.Fatalf("DecodeMint: %v", err)
	}
	if got != m {
		t.Fatalf("DecodeMint round trip = %+v, want %+v", got, m)
	}
}

func TestDecodeMintRejectsWrongLength(t *testing.T) {
	if _, err := DecodeMint(make([]byte, MintSize-1)); err != types.ErrInvalidInstruction {
		t.Fatalf("error = %v, want ErrInvalidInstruction", err)
	}
}

func TestAccountEncodeDecodeRoundTrip(t *testing.T) {
	c, _, err := zkp.Commit(42, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	a := Account{Mint: types.Pubkey{9}, Initialized: true, Commitment: c}
	enc := a.Encode()
	if len(enc) != AccountSize {
		t.Fatalf("Encode length = %d, want %d", len(enc), AccountSize)
	}
	got, err := DecodeAccount(enc)
	if err != nil {
		t.Fatalf("DecodeAccount: %v", err)
	}
	if got.Mint != a.Mint || got.Initialized != a.Initialized || !got.Commitment.Point.Equal(a.Commitment.Point) {
		t.Fatalf("DecodeAccount round trip = %+v, want %+v", got, a)
	}
}

func TestDecodeAccountRejectsWrongLength(t *testing.T) {
	if _, err := DecodeAccount(make([]byte, AccountSize+1)); err != types.ErrInvalidInstruction {
		t.Fatalf("error = %v, want ErrInvalidInstruction", err)
	}
}

func TestAccountZeroValueDecodesUninitialized(t *testing.T) {
	got, err := DecodeAccount(make([]byte, AccountSize))
	if err != nil {
		t.Fatalf("DecodeAccount on zeroed buffer: %v", err)
	}
	if got.Initialized {
		t.Fatalf("zeroed buffer decoded as initialized")
	}
	if !got.Commitment.Point.IsIdentity() {
		t.Fatalf("zeroed buffer decoded a non-identity commitment")
	}
}

func TestMintZeroValueDecodesUninitialized(t *testing.T) {
	got, err := DecodeMint(make([]byte, MintSize))
	if err != nil {
		t.Fatalf("DecodeMint on zeroed buffer: %v", err)
	}
	if got.Initialized || got.Supply != 0 || !got.Authority.IsZero() {
		t.Fatalf("zeroed buffer decoded as %+v", got)
	}
}

func TestAccountEncodeIsDeterministic(t *testing.T) {
	c, _, err := zkp.Commit(7, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	a := Account{Mint: types.Pubkey{1}, Initialized: true, Commitment: c}
	if !bytes.Equal(a.Encode(), a.Encode()) {
		t.Fatalf("Encode is not deterministic")
	}
}
