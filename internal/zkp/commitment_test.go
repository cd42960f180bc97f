package zkp

import "testing"

func TestCommitVerifyRoundTrip(t *testing.T) {
	c, r, err := Commit(1000, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !Verify(c, r, 1000) {
		t.Error("commitment should verify against its own opening")
	}
	if Verify(c, r, 1001) {
		t.Error("commitment should not verify against a wrong value")
	}
}

func TestCommitmentHomomorphism(t *testing.T) {
	c1, r1, err := Commit(100, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	c2, r2, err := Commit(200, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	sum := Add(c1, c2)
	rSum := r1.Add(r2)
	if !Verify(sum, rSum, 300) {
		t.Error("Commit(r1,v1) + Commit(r2,v2) should open to (r1+r2, v1+v2)")
	}
}

func TestCommitmentSubtraction(t *testing.T) {
	c1, r1, err := Commit(500, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	c2, r2, err := Commit(200, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	diff := Sub(c1, c2)
	rDiff := r1.Sub(r2)
	if !Verify(diff, rDiff, 300) {
		t.Error("Commit(r1,v1) - Commit(r2,v2) should open to (r1-r2, v1-v2)")
	}
}

func TestCommitmentEncodeDecodeRoundTrip(t *testing.T) {
	c, _, err := Commit(42, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	enc := c.Encode()
	decoded, err := DecodeCommitment(enc[:])
	if err != nil {
		t.Fatalf("DecodeCommitment: %v", err)
	}
	if !decoded.Point.Equal(c.Point) {
		t.Error("round-tripped commitment does not match original")
	}
}
