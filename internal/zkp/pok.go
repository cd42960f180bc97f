package zkp

import (
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
)

// ProofOfKnowledge is a non-interactive Schnorr-style proof that the
// prover knows a scalar k such that L = k*G, for some linear combination
// L of commitments whose value components have been arranged to cancel.
type ProofOfKnowledge struct {
	N curve.Point  // nonce t*G
	S curve.Scalar // response k*c + t
}

// ProveKnowledge produces a proof that the prover knows k such that
// L = k*G. label binds the Fiat-Shamir challenge to a transcript (see
// BindLabel); pass nil to reproduce the bare challenge c = H(encode(N)).
func ProveKnowledge(k curve.Scalar, label []byte) (ProofOfKnowledge, error) {
	t, err := curve.NewRandomScalar()
	if err != nil {
		return ProofOfKnowledge{}, err
	}
	n := curve.ScalarBaseMult(t)
	c := challenge(n, label)
	s := k.Mul(c).Add(t)
	return ProofOfKnowledge{N: n, S: s}, nil
}

// VerifyKnowledge checks a proof of knowledge against the claimed linear
// relation L. It accepts on equality: s*G == c*L + N. label must match the
// value passed to ProveKnowledge.
func VerifyKnowledge(proof ProofOfKnowledge, l curve.Point, label []byte) bool {
	c := challenge(proof.N, label)
	lhs := curve.ScalarBaseMult(proof.S)
	rhs := l.ScalarMult(c).Add(proof.N)
	return lhs.Equal(rhs)
}

// ProveWithChallenge builds a proof of knowledge against a caller-supplied
// challenge instead of deriving one from its own nonce. It underlies the
// receiver's half of a two-party aggregated proof (see VerifyAggregate):
// the receiver reuses the sender's challenge so that a term common to
// both parties' relations cancels out of the verifier's combined check
// instead of needing to be transmitted.
func ProveWithChallenge(k curve.Scalar, c curve.Scalar) (ProofOfKnowledge, error) {
	t, err := curve.NewRandomScalar()
	if err != nil {
		return ProofOfKnowledge{}, err
	}
	n := curve.ScalarBaseMult(t)
	s := k.Mul(c).Add(t)
	return ProofOfKnowledge{N: n, S: s}, nil
}

// AggregateChallenge derives the challenge shared by a two-party
// aggregated proof from the first party's nonce and a transcript label.
// Both the second party (building its half once it has learned the
// first party's nonce) and the verifier call this with the same inputs.
func AggregateChallenge(firstNonce curve.Point, label []byte) curve.Scalar {
	return challenge(firstNonce, label)
}

// VerifyAggregate checks two proofs of knowledge built against the same
// shared challenge: (s0+s1)*G == c*l + N0 + N1, where c is derived from
// p0's nonce. This is the two-party aggregated proof of knowledge used by
// Transfer (see internal/token/verify.go): l is the verifier's own
// interim-free combination of the transaction's public commitments, so
// neither party's private interim blinding factor ever needs to appear
// on the wire.
func VerifyAggregate(p0, p1 ProofOfKnowledge, l curve.Point, label []byte) bool {
	c := AggregateChallenge(p0.N, label)
	lhs := curve.ScalarBaseMult(p0.S.Add(p1.S))
	rhs := l.ScalarMult(c).Add(p0.N).Add(p1.N)
	return lhs.Equal(rhs)
}

// challenge computes c = HashToScalar(label || encode(N)). An empty label
// reproduces the bare prototype challenge over the nonce alone.
func challenge(n curve.Point, label []byte) curve.Scalar {
	enc := n.Encode()
	buf := make([]byte, 0, len(label)+len(enc))
	buf = append(buf, label...)
	buf = append(buf, enc[:]...)
	return curve.HashToScalar(buf)
}
