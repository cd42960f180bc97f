// Package client implements the off-chain, two-party transaction
// assembler (C5): a sender and a receiver jointly build a balanced
// TransferData without either learning more about the other's balance
// than the transfer amount requires.
package client

import (
	"errors"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// RangeProofBits mirrors token.RangeProofBits; every new output commitment
// the client assembles is proven against it.
const RangeProofBits = token.RangeProofBits

// ErrInsufficientBalance is returned when a sender attempts to transfer
// more than its known source value. This is a client-side sanity check;
// the ledger itself never learns the source value.
var ErrInsufficientBalance = errors.New("client: insufficient balance")

// SenderMessage is everything the sender hands to the receiver to
// complete a transfer. It carries the interim commitment's opening
// (r_int) in the clear, so it should be sealed in transit (see
// envelope.go) rather than handed to an untrusted relay as-is.
type SenderMessage struct {
	Amount            uint64
	SourceCommitment  zkp.Commitment
	DestCommitment    zkp.Commitment
	DestRangeProof    zkp.RangeProof
	InterimCommitment zkp.Commitment
	InterimOpening    curve.Scalar
	ProofOfKnowledge  zkp.ProofOfKnowledge
}

// Sender holds one party's view of its own source commitment while it
// assembles the first half of a transfer.
type Sender struct {
	SourceCommitment zkp.Commitment
	SourceOpening    curve.Scalar
	SourceValue      uint64
}

// Step1 implements spec.md §4.5's sender step: commit to the change,
// commit to the interim payload, build a range proof for the change
// commitment, and produce a proof of knowledge over the blinding delta
// r_src - r_dst - r_int.
//
// The transcript label is derived from mint and the sender's own source
// and destination commitments (token.TransferLabel), not passed in by the
// caller: it must be exactly what the on-chain verifier recomputes from
// the final TransferData, and at this point in the protocol the sender's
// pair is the only part of that data that exists yet. The receiver
// reuses the returned message's ProofOfKnowledge.N to derive the same
// challenge (zkp.AggregateChallenge) rather than deriving its own.
func (s Sender) Step1(mint types.Pubkey, amount uint64) (SenderMessage, error) {
	if amount > s.SourceValue {
		return SenderMessage{}, ErrInsufficientBalance
	}
	change := s.SourceValue - amount

	destCommitment, destOpening, err := zkp.Commit(change, nil)
	if err != nil {
		return SenderMessage{}, err
	}

	interimCommitment, interimOpening, err := zkp.Commit(amount, nil)
	if err != nil {
		return SenderMessage{}, err
	}

	label := token.TransferLabel(mint, s.SourceCommitment, destCommitment)

	rangeProof, err := zkp.ProveBitRange(change, destOpening, RangeProofBits, zkp.RangeProofLabel(label))
	if err != nil {
		return SenderMessage{}, err
	}

	k := s.SourceOpening.Sub(destOpening).Sub(interimOpening)
	pok, err := zkp.ProveKnowledge(k, label)
	if err != nil {
		return SenderMessage{}, err
	}

	return SenderMessage{
		Amount:            amount,
		SourceCommitment:  s.SourceCommitment,
		DestCommitment:    destCommitment,
		DestRangeProof:    rangeProof,
		InterimCommitment: interimCommitment,
		InterimOpening:    interimOpening,
		ProofOfKnowledge:  pok,
	}, nil
}
