package curve

import (
	"errors"

	"github.com/gtank/ristretto255"
)

// ErrInvalidPoint is returned when a byte string does not decompress to a
// valid Ristretto255 group element.
var ErrInvalidPoint = errors.New("curve: invalid point encoding")

// PointSize is the canonical compressed encoding size of a Point, in bytes.
const PointSize = 32

// Point is an element of the Ristretto255 group.
type Point struct {
	inner ristretto255.Element
}

// IdentityPoint returns the group identity element, whose canonical
// encoding is 32 zero bytes.
func IdentityPoint() Point {
	var p Point
	p.inner = *ristretto255.NewIdentityElement()
	return p
}

// BasePoint returns the standard Ristretto255 basepoint, G.
func BasePoint() Point {
	var p Point
	p.inner = *ristretto255.NewGeneratorElement()
	return p
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	var out Point
	out.inner.Add(&p.inner, &other.inner)
	return out
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	var out Point
	out.inner.Subtract(&p.inner, &other.inner)
	return out
}

// Negate returns -p.
func (p Point) Negate() Point {
	var out Point
	out.inner.Negate(&p.inner)
	return out
}

// ScalarMult returns s*p.
func (p Point) ScalarMult(s Scalar) Point {
	var out Point
	out.inner.ScalarMult(&s.inner, &p.inner)
	return out
}

// ScalarBaseMult returns s*G.
func ScalarBaseMult(s Scalar) Point {
	var out Point
	out.inner.ScalarBaseMult(&s.inner)
	return out
}

// Encode returns the canonical 32-byte compressed encoding of p.
func (p Point) Encode() [PointSize]byte {
	var out [PointSize]byte
	b := p.inner.Encode(out[:0])
	copy(out[:], b)
	return out
}

// DecodePoint decompresses a canonical 32-byte Ristretto255 point encoding.
// Malformed encodings (wrong length, or a 32-byte string that does not
// correspond to a valid group element) are rejected with ErrInvalidPoint
// rather than panicking.
func DecodePoint(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, ErrInvalidPoint
	}
	var p Point
	if err := p.inner.Decode(b); err != nil {
		return Point{}, ErrInvalidPoint
	}
	return p, nil
}

// Equal reports whether p and other encode the same group element.
func (p Point) Equal(other Point) bool {
	return p.inner.Equal(&other.inner) == 1
}

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool {
	return p.Equal(IdentityPoint())
}
