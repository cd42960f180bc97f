// Package token implements the transaction payload model (C3) and the
// ledger state machine (C4): typed instruction bodies, their cryptographic
// acceptance checks, and the Mint/Account records they mutate.
package token

import (
	"encoding/binary"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// RangeProofBits is the range width every commitment in this ledger is
// proven against.
const RangeProofBits = 64

// MintData is the body of a Mint instruction: a cleartext amount, the
// commitment it mints into, a range proof that the commitment's hidden
// value fits in 64 bits, and a proof of knowledge that out_commitment
// opens to (some blinding factor, amount): i.e. out_commitment - amount*H
// is a pure multiple of G, known to the prover.
type MintData struct {
	Amount        uint64
	OutCommitment zkp.Commitment
	RangeProof    zkp.RangeProof
	Pok           zkp.ProofOfKnowledge
}

// TransferData is the body of a Transfer instruction. Tuple positions are
// fixed: index 0 is the sender, index 1 the receiver.
type TransferData struct {
	InCommitments  [2]zkp.Commitment
	OutCommitments [2]zkp.Commitment
	RangeProofs    [2]zkp.RangeProof
	Poks           [2]zkp.ProofOfKnowledge
}

// CloseAccountData is the body of a CloseAccount instruction: the claimed
// amount and commitment, plus the opening (blinding factor) that proves
// the caller knows what the commitment hides.
type CloseAccountData struct {
	Amount     uint64
	Commitment zkp.Commitment
	Opening    curve.Scalar
}

func putUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func putLengthPrefixed(buf []byte, b []byte) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(b)))
	buf = append(buf, tmp[:]...)
	return append(buf, b...)
}

func takeLengthPrefixed(b []byte) (payload []byte, rest []byte, err error) {
	if len(b) < 4 {
		return nil, nil, types.ErrInvalidInstruction
	}
	n := binary.LittleEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(len(b)) < uint64(n) {
		return nil, nil, types.ErrInvalidInstruction
	}
	return b[:n], b[n:], nil
}

func encodeRangeProof(rp zkp.RangeProof) []byte {
	// The wire format only ever carries the real (non-succinct)
	// BitRangeProof; StubRangeProof exists purely for in-process
	// benchmarking and is never serialized onto the ledger.
	if bp, ok := rp.(*zkp.BitRangeProof); ok {
		return bp.Encode()
	}
	return nil
}

func decodeRangeProof(b []byte, bits int) (zkp.RangeProof, error) {
	rp, err := zkp.DecodeBitRangeProof(b, bits)
	if err != nil {
		return nil, types.ErrInvalidProof
	}
	return rp, nil
}

// Encode serializes m in declaration order: amount, out_commitment,
// length-prefixed range proof, pok.
func (m MintData) Encode() []byte {
	buf := make([]byte, 0, 8+curve.PointSize+curve.PointSize+curve.ScalarSize)
	buf = putUint64(buf, m.Amount)
	enc := m.OutCommitment.Encode()
	buf = append(buf, enc[:]...)
	buf = putLengthPrefixed(buf, encodeRangeProof(m.RangeProof))
	nEnc := m.Pok.N.Encode()
	sEnc := m.Pok.S.Encode()
	buf = append(buf, nEnc[:]...)
	buf = append(buf, sEnc[:]...)
	return buf
}

// DecodeMintData parses a MintData body.
func DecodeMintData(b []byte) (MintData, error) {
	if len(b) < 8+curve.PointSize {
		return MintData{}, types.ErrInvalidInstruction
	}
	amount := binary.LittleEndian.Uint64(b[:8])
	rest := b[8:]

	outEnc := rest[:curve.PointSize]
	rest = rest[curve.PointSize:]
	outCommitment, err := zkp.DecodeCommitment(outEnc)
	if err != nil {
		return MintData{}, types.ErrInvalidProof
	}

	rpBytes, rest, err := takeLengthPrefixed(rest)
	if err != nil {
		return MintData{}, err
	}
	rangeProof, err := decodeRangeProof(rpBytes, RangeProofBits)
	if err != nil {
		return MintData{}, err
	}

	pok, err := decodePok(rest)
	if err != nil {
		return MintData{}, err
	}

	return MintData{
		Amount:        amount,
		OutCommitment: outCommitment,
		RangeProof:    rangeProof,
		Pok:           pok,
	}, nil
}

// Encode serializes t in declaration order: in_commitments,
// out_commitments, length-prefixed range proofs, poks.
func (t TransferData) Encode() []byte {
	buf := make([]byte, 0, 4*curve.PointSize+2*curve.ScalarSize)
	for _, c := range t.InCommitments {
		enc := c.Encode()
		buf = append(buf, enc[:]...)
	}
	for _, c := range t.OutCommitments {
		enc := c.Encode()
		buf = append(buf, enc[:]...)
	}
	for _, rp := range t.RangeProofs {
		buf = putLengthPrefixed(buf, encodeRangeProof(rp))
	}
	for _, p := range t.Poks {
		nEnc := p.N.Encode()
		sEnc := p.S.Encode()
		buf = append(buf, nEnc[:]...)
		buf = append(buf, sEnc[:]...)
	}
	return buf
}

// DecodeTransferData parses a TransferData body.
func DecodeTransferData(b []byte) (TransferData, error) {
	var t TransferData
	if len(b) < 4*curve.PointSize {
		return t, types.ErrInvalidInstruction
	}
	for i := range t.InCommitments {
		c, err := zkp.DecodeCommitment(b[:curve.PointSize])
		if err != nil {
			return t, types.ErrInvalidProof
		}
		t.InCommitments[i] = c
		b = b[curve.PointSize:]
	}
	for i := range t.OutCommitments {
		c, err := zkp.DecodeCommitment(b[:curve.PointSize])
		if err != nil {
			return t, types.ErrInvalidProof
		}
		t.OutCommitments[i] = c
		b = b[curve.PointSize:]
	}
	for i := range t.RangeProofs {
		var rpBytes []byte
		var err error
		rpBytes, b, err = takeLengthPrefixed(b)
		if err != nil {
			return t, err
		}
		rp, err := decodeRangeProof(rpBytes, RangeProofBits)
		if err != nil {
			return t, err
		}
		t.RangeProofs[i] = rp
	}
	for i := range t.Poks {
		if len(b) < curve.PointSize+curve.ScalarSize {
			return t, types.ErrInvalidInstruction
		}
		pok, err := decodePok(b[:curve.PointSize+curve.ScalarSize])
		if err != nil {
			return t, err
		}
		t.Poks[i] = pok
		b = b[curve.PointSize+curve.ScalarSize:]
	}
	return t, nil
}

func decodePok(b []byte) (zkp.ProofOfKnowledge, error) {
	if len(b) < curve.PointSize+curve.ScalarSize {
		return zkp.ProofOfKnowledge{}, types.ErrInvalidInstruction
	}
	n, err := curve.DecodePoint(b[:curve.PointSize])
	if err != nil {
		return zkp.ProofOfKnowledge{}, types.ErrInvalidProof
	}
	s, err := curve.DecodeScalar(b[curve.PointSize : curve.PointSize+curve.ScalarSize])
	if err != nil {
		return zkp.ProofOfKnowledge{}, types.ErrInvalidProof
	}
	return zkp.ProofOfKnowledge{N: n, S: s}, nil
}

// Encode serializes c: amount, commitment, opening.
func (c CloseAccountData) Encode() []byte {
	buf := make([]byte, 0, 8+curve.PointSize+curve.ScalarSize)
	buf = putUint64(buf, c.Amount)
	enc := c.Commitment.Encode()
	buf = append(buf, enc[:]...)
	opEnc := c.Opening.Encode()
	buf = append(buf, opEnc[:]...)
	return buf
}

// DecodeCloseAccountData parses a CloseAccountData body.
func DecodeCloseAccountData(b []byte) (CloseAccountData, error) {
	if len(b) != 8+curve.PointSize+curve.ScalarSize {
		return CloseAccountData{}, types.ErrInvalidInstruction
	}
	amount := binary.LittleEndian.Uint64(b[:8])
	commitment, err := zkp.DecodeCommitment(b[8 : 8+curve.PointSize])
	if err != nil {
		return CloseAccountData{}, types.ErrInvalidProof
	}
	opening, err := curve.DecodeScalar(b[8+curve.PointSize:])
	if err != nil {
		return CloseAccountData{}, types.ErrInvalidProof
	}
	return CloseAccountData{Amount: amount, Commitment: commitment, Opening: opening}, nil
}
