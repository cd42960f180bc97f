package curve

import "crypto/sha512"

// HashToScalar reduces a SHA-512 (wide, 512-bit) digest of msg onto the
// scalar field. Used to derive the Fiat-Shamir challenge from a proof's
// transcript.
func HashToScalar(msg []byte) Scalar {
	digest := sha512.Sum512(msg)
	var s Scalar
	s.inner.FromUniformBytes(digest[:])
	return s
}

// HashToPoint maps a SHA-512 (wide, 512-bit) digest of msg onto the group.
// Used once, on the first call to H, to derive H from the encoding of G: H has no
// known discrete log relative to G because nobody — including the prover —
// ever learns a scalar h with H = h*G.
func HashToPoint(msg []byte) Point {
	digest := sha512.Sum512(msg)
	var p Point
	p.inner.FromUniformBytes(digest[:])
	return p
}
