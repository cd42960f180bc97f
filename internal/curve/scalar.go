// Package curve implements scalar and point algebra over the Ristretto255
// group for the confidential-token cryptographic core. All encode/decode
// paths reject malformed or non-canonical input with a typed error rather
// than panicking, since callers feed this layer untrusted, on-chain data.
package curve

import (
	"crypto/rand"
	"encoding/binary"
	"errors"

	"github.com/gtank/ristretto255"
)

// ErrInvalidScalar is returned when a byte string is not the canonical
// little-endian encoding of a scalar field element.
var ErrInvalidScalar = errors.New("curve: invalid scalar encoding")

// ScalarSize is the canonical encoded size of a Scalar, in bytes.
const ScalarSize = 32

// Scalar is an element of the prime-order Ristretto255 scalar field.
type Scalar struct {
	inner ristretto255.Scalar
}

// NewRandomScalar samples a uniformly random scalar using the operating
// system CSPRNG, via wide reduction of 64 random bytes.
func NewRandomScalar() (Scalar, error) {
	var wide [64]byte
	if _, err := rand.Read(wide[:]); err != nil {
		return Scalar{}, err
	}
	var s Scalar
	s.inner.FromUniformBytes(wide[:])
	return s, nil
}

// ScalarFromUint64 embeds a cleartext 64-bit amount as a scalar. The
// zero-padded 32-byte little-endian encoding of a uint64 is always a
// canonical scalar encoding.
func ScalarFromUint64(v uint64) Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], v)
	var s Scalar
	if err := s.inner.Decode(buf[:]); err != nil {
		panic("curve: u64 embedding must always be a canonical scalar")
	}
	return s
}

// ZeroScalar returns the additive identity of the scalar field.
func ZeroScalar() Scalar {
	var s Scalar
	s.inner.Zero()
	return s
}

// OneScalar returns the multiplicative identity of the scalar field.
func OneScalar() Scalar {
	var s Scalar
	s.inner.One()
	return s
}

// Add returns s + other.
func (s Scalar) Add(other Scalar) Scalar {
	var out Scalar
	out.inner.Add(&s.inner, &other.inner)
	return out
}

// Sub returns s - other.
func (s Scalar) Sub(other Scalar) Scalar {
	var out Scalar
	out.inner.Subtract(&s.inner, &other.inner)
	return out
}

// Mul returns s * other.
func (s Scalar) Mul(other Scalar) Scalar {
	var out Scalar
	out.inner.Multiply(&s.inner, &other.inner)
	return out
}

// Negate returns -s.
func (s Scalar) Negate() Scalar {
	var out Scalar
	out.inner.Negate(&s.inner)
	return out
}

// Invert returns s^-1. Panics if s is zero, matching the underlying library;
// callers in this module never invert an untrusted scalar.
func (s Scalar) Invert() Scalar {
	var out Scalar
	out.inner.Invert(&s.inner)
	return out
}

// Encode returns the canonical 32-byte little-endian encoding of s.
func (s Scalar) Encode() [ScalarSize]byte {
	var out [ScalarSize]byte
	b := s.inner.Encode(out[:0])
	copy(out[:], b)
	return out
}

// DecodeScalar parses a canonical 32-byte little-endian scalar encoding.
// Non-canonical encodings (>= group order) and wrong-length input are
// rejected with ErrInvalidScalar.
func DecodeScalar(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, ErrInvalidScalar
	}
	var s Scalar
	if err := s.inner.Decode(b); err != nil {
		return Scalar{}, ErrInvalidScalar
	}
	return s, nil
}

// Equal reports whether s and other encode the same scalar.
func (s Scalar) Equal(other Scalar) bool {
	return s.inner.Equal(&other.inner) == 1
}
