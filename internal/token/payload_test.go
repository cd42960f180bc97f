package token

import (
	"testing"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

func mustCommit(t *testing.T, value uint64) (zkp.Commitment, curve.Scalar) {
	t.Helper()
	c, r, err := zkp.Commit(value, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return c, r
}

func TestMintDataEncodeDecodeRoundTrip(t *testing.T) {
	mint := types.Pubkey{1}
	amount := uint64(57)
	out, r := mustCommit(t, amount)
	label := MintLabel(mint, amount, out)

	rp, err := zkp.ProveBitRange(amount, r, RangeProofBits, zkp.RangeProofLabel(label))
	if err != nil {
		t.Fatalf("ProveBitRange: %v", err)
	}
	pok, err := zkp.ProveKnowledge(r, label)
	if err != nil {
		t.Fatalf("ProveKnowledge: %v", err)
	}

	m := MintData{Amount: amount, OutCommitment: out, RangeProof: rp, Pok: pok}
	enc := m.Encode()
	got, err := DecodeMintData(enc)
	if err != nil {
		t.Fatalf("DecodeMintData: %v", err)
	}
	if got.Amount != m.Amount {
		t.Fatalf("Amount = %d, want %d", got.Amount, m.Amount)
	}
	if !got.OutCommitment.Point.Equal(m.OutCommitment.Point) {
		t.Fatalf("OutCommitment mismatch after round trip")
	}
	if err := VerifyMintData(mint, got); err != nil {
		t.Fatalf("verifyMintData on round-tripped data: %v", err)
	}
}

func TestDecodeMintDataRejectsTruncated(t *testing.T) {
	mint := types.Pubkey{1}
	amount := uint64(5)
	out, r := mustCommit(t, amount)
	label := MintLabel(mint, amount, out)
	rp, err := zkp.ProveBitRange(amount, r, RangeProofBits, zkp.RangeProofLabel(label))
	if err != nil {
		t.Fatalf("ProveBitRange: %v", err)
	}
	pok, err := zkp.ProveKnowledge(r, label)
	if err != nil {
		t.Fatalf("ProveKnowledge: %v", err)
	}
	enc := MintData{Amount: amount, OutCommitment: out, RangeProof: rp, Pok: pok}.Encode()

	if _, err := DecodeMintData(enc[:len(enc)-1]); err == nil {
		t.Fatalf("DecodeMintData accepted a truncated buffer")
	}
}

func buildTransferData(t *testing.T, mint types.Pubkey, srcVal0, srcVal1, amount uint64) TransferData {
	t.Helper()
	in0, rIn0 := mustCommit(t, srcVal0)
	in1, rIn1 := mustCommit(t, srcVal1)

	change := srcVal0 - amount
	out0, rOut0 := mustCommit(t, change)
	_, rInterim := mustCommit(t, amount)

	label := TransferLabel(mint, in0, out0)

	rpOut0, err := zkp.ProveBitRange(change, rOut0, RangeProofBits, zkp.RangeProofLabel(label))
	if err != nil {
		t.Fatalf("ProveBitRange out0: %v", err)
	}
	ks := rIn0.Sub(rOut0).Sub(rInterim)
	pok0, err := zkp.ProveKnowledge(ks, label)
	if err != nil {
		t.Fatalf("ProveKnowledge sender: %v", err)
	}

	newBalance := srcVal1 + amount
	out1, rOut1 := mustCommit(t, newBalance)
	rpOut1, err := zkp.ProveBitRange(newBalance, rOut1, RangeProofBits, zkp.RangeProofLabel(label))
	if err != nil {
		t.Fatalf("ProveBitRange out1: %v", err)
	}
	kr := rIn1.Add(rInterim).Sub(rOut1)
	shared := zkp.AggregateChallenge(pok0.N, label)
	pok1, err := zkp.ProveWithChallenge(kr, shared)
	if err != nil {
		t.Fatalf("ProveWithChallenge receiver: %v", err)
	}

	return TransferData{
		InCommitments:  [2]zkp.Commitment{in0, in1},
		OutCommitments: [2]zkp.Commitment{out0, out1},
		RangeProofs:    [2]zkp.RangeProof{rpOut0, rpOut1},
		Poks:           [2]zkp.ProofOfKnowledge{pok0, pok1},
	}
}

func TestTransferDataEncodeDecodeRoundTrip(t *testing.T) {
	mint := types.Pubkey{2}
	td := buildTransferData(t, mint, 77, 10, 55)

	enc := td.Encode()
	got, err := DecodeTransferData(enc)
	if err != nil {
		t.Fatalf("DecodeTransferData: %v", err)
	}
	if err := VerifyTransferData(mint, got); err != nil {
		t.Fatalf("verifyTransferData on round-tripped data: %v", err)
	}
}

func TestDecodeTransferDataRejectsTruncated(t *testing.T) {
	mint := types.Pubkey{2}
	enc := buildTransferData(t, mint, 77, 10, 55).Encode()
	if _, err := DecodeTransferData(enc[:curve.PointSize]); err == nil {
		t.Fatalf("DecodeTransferData accepted a truncated buffer")
	}
}

func TestCloseAccountDataEncodeDecodeRoundTrip(t *testing.T) {
	amount := uint64(12)
	c, r, err := zkp.Commit(amount, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	cad := CloseAccountData{Amount: amount, Commitment: c, Opening: r}
	enc := cad.Encode()
	got, err := DecodeCloseAccountData(enc)
	if err != nil {
		t.Fatalf("DecodeCloseAccountData: %v", err)
	}
	if err := VerifyCloseAccountData(got); err != nil {
		t.Fatalf("verifyCloseAccountData on round-tripped data: %v", err)
	}
}

func TestDecodeCloseAccountDataRejectsWrongLength(t *testing.T) {
	amount := uint64(12)
	c, r, err := zkp.Commit(amount, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	enc := CloseAccountData{Amount: amount, Commitment: c, Opening: r}.Encode()
	if _, err := DecodeCloseAccountData(enc[:len(enc)-1]); err != types.ErrInvalidInstruction {
		t.Fatalf("error = %v, want ErrInvalidInstruction", err)
	}
}
