package curve

import "sync"

var (
	gOnce sync.Once
	hOnce sync.Once
	gVal  Point
	hVal  Point
)

// G returns the standard Ristretto255 basepoint, cached after first use.
func G() Point {
	gOnce.Do(func() {
		gVal = BasePoint()
	})
	return gVal
}

// H returns the second Pedersen generator, HashToPoint(encoding_of_G),
// cached after first use. It is process-wide, read-only, and identical
// across every client and verifier since it is a pure function of G.
func H() Point {
	hOnce.Do(func() {
		enc := G().Encode()
		hVal = HashToPoint(enc[:])
	})
	return hVal
}
