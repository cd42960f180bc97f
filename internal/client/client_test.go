package client

import (
	"testing"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

func newSender(t *testing.T, value uint64) Sender {
	t.Helper()
	c, r, err := zkp.Commit(value, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return Sender{SourceCommitment: c, SourceOpening: r, SourceValue: value}
}

func newReceiver(t *testing.T, value uint64) Receiver {
	t.Helper()
	c, r, err := zkp.Commit(value, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return Receiver{SourceCommitment: c, SourceOpening: r, SourceValue: value}
}

func TestTwoPartyTransferProducesVerifiableTransferData(t *testing.T) {
	mint := types.Pubkey{7}
	sender := newSender(t, 77)
	receiver := newReceiver(t, 10)

	msg, err := sender.Step1(mint, 55)
	if err != nil {
		t.Fatalf("Sender.Step1: %v", err)
	}
	if msg.Amount != 55 {
		t.Fatalf("msg.Amount = %d, want 55", msg.Amount)
	}

	td, err := receiver.Step2(mint, msg)
	if err != nil {
		t.Fatalf("Receiver.Step2: %v", err)
	}

	if err := token.VerifyTransferData(mint, td); err != nil {
		t.Fatalf("VerifyTransferData: %v", err)
	}

	if !td.InCommitments[0].Point.Equal(sender.SourceCommitment.Point) {
		t.Fatalf("in_commitments[0] does not match sender's source commitment")
	}
	if !td.InCommitments[1].Point.Equal(receiver.SourceCommitment.Point) {
		t.Fatalf("in_commitments[1] does not match receiver's source commitment")
	}

	// The output blindings are fresh, so in0+in1 and out0+out1 differ by a
	// multiple of G; the values balance when that difference is exactly what
	// the two proofs of knowledge prove knowledge of.
	combinedIn := zkp.Add(td.InCommitments[0], td.InCommitments[1])
	combinedOut := zkp.Add(td.OutCommitments[0], td.OutCommitments[1])
	label := token.TransferLabel(mint, td.InCommitments[0], td.OutCommitments[0])
	if !zkp.VerifyAggregate(td.Poks[0], td.Poks[1], zkp.Sub(combinedIn, combinedOut).Point, label) {
		t.Fatalf("combined input and output commitments do not balance")
	}
}

func TestSenderStep1RejectsInsufficientBalance(t *testing.T) {
	mint := types.Pubkey{7}
	sender := newSender(t, 10)

	if _, err := sender.Step1(mint, 55); err != ErrInsufficientBalance {
		t.Fatalf("error = %v, want ErrInsufficientBalance", err)
	}
}

func TestTransferFromTamperedSenderMessageFailsVerification(t *testing.T) {
	mint := types.Pubkey{7}
	sender := newSender(t, 77)
	receiver := newReceiver(t, 10)

	msg, err := sender.Step1(mint, 55)
	if err != nil {
		t.Fatalf("Sender.Step1: %v", err)
	}
	msg.Amount = 1000

	td, err := receiver.Step2(mint, msg)
	if err != nil {
		t.Fatalf("Receiver.Step2: %v", err)
	}
	if err := token.VerifyTransferData(mint, td); err == nil {
		t.Fatalf("VerifyTransferData accepted a transfer built from a tampered amount")
	}
}
