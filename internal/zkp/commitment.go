// Package zkp implements the Pedersen commitment scheme, the Schnorr-style
// aggregated proof of knowledge, and the range-proof capability that
// together let the ledger verify balance without learning amounts.
package zkp

import (
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
)

// Commitment is a Pedersen commitment C = r*G + v*H, stored as a Point.
type Commitment struct {
	Point curve.Point
}

// Commit computes C = r*G + v*H. If blind is nil, a fresh random blinding
// factor is sampled.
func Commit(value uint64, blind *curve.Scalar) (Commitment, curve.Scalar, error) {
	r := curve.Scalar{}
	if blind != nil {
		r = *blind
	} else {
		sampled, err := curve.NewRandomScalar()
		if err != nil {
			return Commitment{}, curve.Scalar{}, err
		}
		r = sampled
	}

	v := curve.ScalarFromUint64(value)
	point := curve.ScalarBaseMult(r).Add(curve.H().ScalarMult(v))
	return Commitment{Point: point}, r, nil
}

// Verify reports whether c opens to (blind, value).
func Verify(c Commitment, blind curve.Scalar, value uint64) bool {
	expected, _, err := Commit(value, &blind)
	if err != nil {
		return false
	}
	return c.Point.Equal(expected.Point)
}

// Add exploits the additive homomorphism: Commit(r1,v1) + Commit(r2,v2) ==
// Commit(r1+r2, v1+v2).
func Add(a, b Commitment) Commitment {
	return Commitment{Point: a.Point.Add(b.Point)}
}

// Sub returns a commitment to the difference of the two hidden values,
// using the difference of their blinding factors.
func Sub(a, b Commitment) Commitment {
	return Commitment{Point: a.Point.Sub(b.Point)}
}

// Encode returns the 32-byte compressed encoding of the commitment.
func (c Commitment) Encode() [curve.PointSize]byte {
	return c.Point.Encode()
}

// DecodeCommitment parses a 32-byte compressed point encoding.
func DecodeCommitment(b []byte) (Commitment, error) {
	p, err := curve.DecodePoint(b)
	if err != nil {
		return Commitment{}, err
	}
	return Commitment{Point: p}, nil
}
