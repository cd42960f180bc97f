package zkp

import "golang.org/x/crypto/sha3"

// transcript domain tags. Every Fiat-Shamir challenge derived through
// this file is bound to one of these, so a proof minted for one context
// can never be replayed as a valid proof in another.
var (
	domainPoK        = []byte("ctoken-pok-v1")
	domainRangeProof = []byte("ctoken-range-v1")
)

// BindLabel derives a transcript label for a proof of knowledge that is
// bound to both a domain tag and the caller-supplied payload bytes (the
// serialized transaction data the proof is making a claim about), so a
// challenge depends on that payload and not only on the proof's own
// nonce. The label covers only what the caller passes in:
// token.MintLabel passes the mint, amount and output commitment;
// token.TransferLabel passes the mint and the sender's input and output
// commitments only, so a transfer's receiver-side commitments are not
// bound by the label.
func BindLabel(payload []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(domainPoK)
	h.Write(payload)
	return h.Sum(nil)
}

// RangeProofLabel derives a transcript label for a range proof bound to a
// domain tag and a caller-supplied context (every caller passes the
// output of token.MintLabel or token.TransferLabel). Passing nil reproduces the prototype's empty
// label "" for parity with the original implementation; production
// callers should pass a non-empty context.
func RangeProofLabel(context []byte) []byte {
	if len(context) == 0 {
		return nil
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(domainRangeProof)
	h.Write(context)
	return h.Sum(nil)
}
