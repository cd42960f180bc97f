package client

import (
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// Receiver holds one party's view of its own source commitment while it
// completes a transfer begun by a Sender.
type Receiver struct {
	SourceCommitment zkp.Commitment
	SourceOpening    curve.Scalar
	SourceValue      uint64
}

// Step2 implements spec.md §4.5's receiver step: commit to the new
// balance, build a range proof for it, and produce a proof of knowledge
// over the blinding delta r_src + r_int - r_dst. It assembles the
// balanced TransferData ready for submission to the ledger.
//
// The transcript label is rederived from mint and msg's own source and
// destination commitments (token.TransferLabel) rather than taken on
// faith from the caller, so it is guaranteed to match what the sender
// used and what the verifier will later recompute. The receiver's proof
// of knowledge reuses the sender's Fiat-Shamir challenge
// (zkp.AggregateChallenge over msg.ProofOfKnowledge.N) rather than
// deriving an independent one from its own nonce: that is what lets the
// verifier check the combined relation without either party's interim
// commitment ever appearing on the wire (see internal/token/verify.go
// and zkp.VerifyAggregate).
//
// Verification of msg's own range proof and proof of knowledge is left
// to the caller (spec.md §4.5 step 1: "this spec leaves client-side
// verification policy to the implementer").
func (r Receiver) Step2(mint types.Pubkey, msg SenderMessage) (token.TransferData, error) {
	newBalance := r.SourceValue + msg.Amount

	destCommitment, destOpening, err := zkp.Commit(newBalance, nil)
	if err != nil {
		return token.TransferData{}, err
	}

	label := token.TransferLabel(mint, msg.SourceCommitment, msg.DestCommitment)

	rangeProof, err := zkp.ProveBitRange(newBalance, destOpening, RangeProofBits, zkp.RangeProofLabel(label))
	if err != nil {
		return token.TransferData{}, err
	}

	k := r.SourceOpening.Add(msg.InterimOpening).Sub(destOpening)
	sharedChallenge := zkp.AggregateChallenge(msg.ProofOfKnowledge.N, label)
	pok, err := zkp.ProveWithChallenge(k, sharedChallenge)
	if err != nil {
		return token.TransferData{}, err
	}

	return token.TransferData{
		InCommitments:  [2]zkp.Commitment{msg.SourceCommitment, r.SourceCommitment},
		OutCommitments: [2]zkp.Commitment{msg.DestCommitment, destCommitment},
		RangeProofs:    [2]zkp.RangeProof{msg.DestRangeProof, rangeProof},
		Poks:           [2]zkp.ProofOfKnowledge{msg.ProofOfKnowledge, pok},
	}, nil
}
