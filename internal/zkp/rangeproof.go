package zkp

import (
	"errors"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
)

// ErrBitLengthMismatch is returned when a RangeProof is checked against a
// bit length it was not built for.
var ErrBitLengthMismatch = errors.New("zkp: range proof bit length mismatch")

// RangeProof is the capability boundary described in spec §4.2/§9: an
// opaque proof that a commitment hides a value in [0, 2^bits). The
// intended production instantiation is a Bulletproofs single-output
// proof; BitRangeProof below is a real, if non-succinct, stand-in, and
// StubRangeProof lets the rest of the verifier be benchmarked without
// paying for any range-proof cost at all.
type RangeProof interface {
	// Verify checks the proof against commitment c, claiming its hidden
	// value lies in [0, 2^bits). label binds the proof to a transcript;
	// pass nil to reproduce the prototype's empty-label behavior.
	Verify(c Commitment, bits int, label []byte) bool
}

// bitCommitmentProof is a 1-of-2 Camenisch-Stadler OR-proof that a single
// Pedersen commitment opens to the bit value 0 or the bit value 1,
// without revealing which.
type bitCommitmentProof struct {
	A0, A1 curve.Point
	C0, C1 curve.Scalar
	S0, S1 curve.Scalar
}

// BitRangeProof decomposes a 64-bit value into one Pedersen commitment per
// bit and attaches a bitCommitmentProof to each; the per-bit commitments
// are constructed so that their doubling sum reconstructs the value
// commitment by construction (see ProveBitRange), so verification reduces
// to checking that reconstruction plus the 64 independent OR-proofs.
//
// This trades Bulletproofs' logarithmic proof size for a simple, fully
// elementary construction: O(bits) group elements instead of
// O(log(bits)), which is the right call for a prototype whose purpose is
// to exercise the rest of the verifier, not to minimize proof size.
type BitRangeProof struct {
	BitCommitments []Commitment
	BitProofs      []bitCommitmentProof
}

// ProveBitRange builds a BitRangeProof that value (whose Pedersen
// commitment under blind is the caller's responsibility to also publish)
// lies in [0, 2^bits). bits must be between 1 and 64.
func ProveBitRange(value uint64, blind curve.Scalar, bits int, label []byte) (*BitRangeProof, error) {
	if bits < 1 || bits > 64 {
		return nil, ErrBitLengthMismatch
	}

	bitBlinds := make([]curve.Scalar, bits)
	acc := curve.ZeroScalar()
	for i := 1; i < bits; i++ {
		r, err := curve.NewRandomScalar()
		if err != nil {
			return nil, err
		}
		bitBlinds[i] = r
		weight := curve.ScalarFromUint64(uint64(1) << uint(i))
		acc = acc.Add(weight.Mul(r))
	}
	// The coefficient of bit 0 is 1, so solve for it directly: no modular
	// inverse of a power of two is needed.
	bitBlinds[0] = blind.Sub(acc)

	commitments := make([]Commitment, bits)
	proofs := make([]bitCommitmentProof, bits)
	for i := 0; i < bits; i++ {
		bitVal := (value >> uint(i)) & 1
		c, _, err := Commit(bitVal, &bitBlinds[i])
		if err != nil {
			return nil, err
		}
		commitments[i] = c

		proof, err := proveBit(c, bitBlinds[i], bitVal == 1, bitLabel(label, i))
		if err != nil {
			return nil, err
		}
		proofs[i] = proof
	}

	return &BitRangeProof{BitCommitments: commitments, BitProofs: proofs}, nil
}

// Verify implements RangeProof. It checks that the weighted sum of the
// per-bit commitments reconstructs c, and that every per-bit OR-proof is
// valid.
func (rp *BitRangeProof) Verify(c Commitment, bits int, label []byte) bool {
	if len(rp.BitCommitments) != bits || len(rp.BitProofs) != bits {
		return false
	}

	reconstructed := curve.IdentityPoint()
	for i := 0; i < bits; i++ {
		weight := curve.ScalarFromUint64(uint64(1) << uint(i))
		reconstructed = reconstructed.Add(rp.BitCommitments[i].Point.ScalarMult(weight))

		if !verifyBit(rp.BitCommitments[i], rp.BitProofs[i], bitLabel(label, i)) {
			return false
		}
	}

	return reconstructed.Equal(c.Point)
}

func bitLabel(label []byte, index int) []byte {
	out := make([]byte, 0, len(label)+1)
	out = append(out, label...)
	out = append(out, byte(index))
	return out
}

// proveBit builds the OR-proof that commitment opens to 0 or 1. Exactly
// one of the two branches is real; the other is simulated, per the
// standard Camenisch-Stadler construction.
func proveBit(commitment Commitment, blind curve.Scalar, bitIsOne bool, label []byte) (bitCommitmentProof, error) {
	g := curve.G()
	h := curve.H()
	// Branch 0 claims: commitment = r*G.
	// Branch 1 claims: commitment - H = r*G.
	branch1Target := commitment.Point.Sub(h)

	simC, err := curve.NewRandomScalar()
	if err != nil {
		return bitCommitmentProof{}, err
	}
	simS, err := curve.NewRandomScalar()
	if err != nil {
		return bitCommitmentProof{}, err
	}
	realK, err := curve.NewRandomScalar()
	if err != nil {
		return bitCommitmentProof{}, err
	}

	var a0, a1 curve.Point
	if !bitIsOne {
		a0 = g.ScalarMult(realK)
		a1 = g.ScalarMult(simS).Sub(branch1Target.ScalarMult(simC))
	} else {
		a1 = g.ScalarMult(realK)
		a0 = g.ScalarMult(simS).Sub(commitment.Point.ScalarMult(simC))
	}

	c := orChallenge(a0, a1, label)

	var c0, c1, s0, s1 curve.Scalar
	if !bitIsOne {
		c1 = simC
		c0 = c.Sub(c1)
		s1 = simS
		s0 = realK.Add(c0.Mul(blind))
	} else {
		c0 = simC
		c1 = c.Sub(c0)
		s0 = simS
		s1 = realK.Add(c1.Mul(blind))
	}

	return bitCommitmentProof{A0: a0, A1: a1, C0: c0, C1: c1, S0: s0, S1: s1}, nil
}

func verifyBit(commitment Commitment, proof bitCommitmentProof, label []byte) bool {
	c := orChallenge(proof.A0, proof.A1, label)
	if !c.Equal(proof.C0.Add(proof.C1)) {
		return false
	}

	g := curve.G()
	h := curve.H()
	branch1Target := commitment.Point.Sub(h)

	lhs0 := g.ScalarMult(proof.S0)
	rhs0 := proof.A0.Add(commitment.Point.ScalarMult(proof.C0))
	if !lhs0.Equal(rhs0) {
		return false
	}

	lhs1 := g.ScalarMult(proof.S1)
	rhs1 := proof.A1.Add(branch1Target.ScalarMult(proof.C1))
	return lhs1.Equal(rhs1)
}

func orChallenge(a0, a1 curve.Point, label []byte) curve.Scalar {
	enc0 := a0.Encode()
	enc1 := a1.Encode()
	buf := make([]byte, 0, len(label)+len(enc0)+len(enc1))
	buf = append(buf, label...)
	buf = append(buf, enc0[:]...)
	buf = append(buf, enc1[:]...)
	return curve.HashToScalar(buf)
}

// Encode serializes the proof as a flat byte blob: bits * (32-byte bit
// commitment || 6 * 32-byte proof scalars/points), in bit order. The blob
// carries no length prefix of its own; a decoder must be told the bit
// count (token's payload codec length-prefixes the blob and decodes it
// with RangeProofBits).
func (rp *BitRangeProof) Encode() []byte {
	bits := len(rp.BitCommitments)
	out := make([]byte, 0, bits*(curve.PointSize+6*curve.ScalarSize))
	for i := 0; i < bits; i++ {
		enc := rp.BitCommitments[i].Encode()
		out = append(out, enc[:]...)

		p := rp.BitProofs[i]
		for _, pt := range []curve.Point{p.A0, p.A1} {
			e := pt.Encode()
			out = append(out, e[:]...)
		}
		for _, s := range []curve.Scalar{p.C0, p.C1, p.S0, p.S1} {
			e := s.Encode()
			out = append(out, e[:]...)
		}
	}
	return out
}

// bitProofWireSize is the encoded size, in bytes, of one bit's commitment
// plus its OR-proof.
const bitProofWireSize = curve.PointSize*3 + curve.ScalarSize*4

// DecodeBitRangeProof parses a blob produced by Encode, given the claimed
// bit count.
func DecodeBitRangeProof(b []byte, bits int) (*BitRangeProof, error) {
	if bits < 1 || bits > 64 {
		return nil, ErrBitLengthMismatch
	}
	if len(b) != bits*bitProofWireSize {
		return nil, ErrBitLengthMismatch
	}

	commitments := make([]Commitment, bits)
	proofs := make([]bitCommitmentProof, bits)
	off := 0
	for i := 0; i < bits; i++ {
		c, err := DecodeCommitment(b[off : off+curve.PointSize])
		if err != nil {
			return nil, err
		}
		commitments[i] = c
		off += curve.PointSize

		a0, err := curve.DecodePoint(b[off : off+curve.PointSize])
		if err != nil {
			return nil, err
		}
		off += curve.PointSize
		a1, err := curve.DecodePoint(b[off : off+curve.PointSize])
		if err != nil {
			return nil, err
		}
		off += curve.PointSize

		scalars := make([]curve.Scalar, 4)
		for j := range scalars {
			s, err := curve.DecodeScalar(b[off : off+curve.ScalarSize])
			if err != nil {
				return nil, err
			}
			scalars[j] = s
			off += curve.ScalarSize
		}

		proofs[i] = bitCommitmentProof{
			A0: a0, A1: a1,
			C0: scalars[0], C1: scalars[1],
			S0: scalars[2], S1: scalars[3],
		}
	}

	return &BitRangeProof{BitCommitments: commitments, BitProofs: proofs}, nil
}

// StubRangeProof always verifies. It exists to let the rest of the
// verifier be benchmarked without paying any range-proof cost, per
// spec's "implementations may stub range proofs to benchmark the rest" —
// gated behind a constructor name that makes misuse in production obvious
// at every call site.
type StubRangeProof struct{}

// NewStubRangeProofForBenchmark returns a RangeProof that unconditionally
// verifies.
func NewStubRangeProofForBenchmark() RangeProof {
	return StubRangeProof{}
}

// Verify always returns true.
func (StubRangeProof) Verify(Commitment, int, []byte) bool {
	return true
}
