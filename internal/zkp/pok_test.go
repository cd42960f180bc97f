package zkp

import (
	"testing"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
)

func TestProveKnowledgeAcceptsOnEquality(t *testing.T) {
	k, err := curve.NewRandomScalar()
	if err != nil {
		t.Fatalf("NewRandomScalar: %v", err)
	}
	l := curve.ScalarBaseMult(k)

	proof, err := ProveKnowledge(k, nil)
	if err != nil {
		t.Fatalf("ProveKnowledge: %v", err)
	}
	if !VerifyKnowledge(proof, l, nil) {
		t.Error("valid proof of knowledge should verify")
	}
}

func TestVerifyKnowledgeRejectsTamperedScalar(t *testing.T) {
	k, err := curve.NewRandomScalar()
	if err != nil {
		t.Fatalf("NewRandomScalar: %v", err)
	}
	l := curve.ScalarBaseMult(k)

	proof, err := ProveKnowledge(k, nil)
	if err != nil {
		t.Fatalf("ProveKnowledge: %v", err)
	}

	tampered, err := curve.NewRandomScalar()
	if err != nil {
		t.Fatalf("NewRandomScalar: %v", err)
	}
	proof.S = tampered

	if VerifyKnowledge(proof, l, nil) {
		t.Error("proof with replaced response scalar must not verify")
	}
}

func TestVerifyKnowledgeRejectsWrongRelation(t *testing.T) {
	k, err := curve.NewRandomScalar()
	if err != nil {
		t.Fatalf("NewRandomScalar: %v", err)
	}
	proof, err := ProveKnowledge(k, nil)
	if err != nil {
		t.Fatalf("ProveKnowledge: %v", err)
	}

	wrong, err := curve.NewRandomScalar()
	if err != nil {
		t.Fatalf("NewRandomScalar: %v", err)
	}
	wrongL := curve.ScalarBaseMult(wrong)

	if VerifyKnowledge(proof, wrongL, nil) {
		t.Error("proof must not verify against an unrelated relation")
	}
}

func TestProveKnowledgeBindsLabel(t *testing.T) {
	k, err := curve.NewRandomScalar()
	if err != nil {
		t.Fatalf("NewRandomScalar: %v", err)
	}
	l := curve.ScalarBaseMult(k)

	proof, err := ProveKnowledge(k, BindLabel([]byte("transaction-a")))
	if err != nil {
		t.Fatalf("ProveKnowledge: %v", err)
	}

	if VerifyKnowledge(proof, l, BindLabel([]byte("transaction-b"))) {
		t.Error("proof bound to one transaction must not verify under another's label")
	}
	if !VerifyKnowledge(proof, l, BindLabel([]byte("transaction-a"))) {
		t.Error("proof should verify under the label it was created with")
	}
}
