package client

import (
	"testing"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

func TestSealOpenRoundTrip(t *testing.T) {
	mint := types.Pubkey{7}
	sender := newSender(t, 77)

	msg, err := sender.Step1(mint, 55)
	if err != nil {
		t.Fatalf("Sender.Step1: %v", err)
	}

	senderPub, senderPriv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (sender): %v", err)
	}
	recipientPub, recipientPriv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (recipient): %v", err)
	}

	sealed, err := Seal(msg, senderPriv, senderPub, recipientPub)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	opened, err := Open(sealed, recipientPriv)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if opened.Amount != msg.Amount {
		t.Fatalf("opened.Amount = %d, want %d", opened.Amount, msg.Amount)
	}
	if !opened.SourceCommitment.Point.Equal(msg.SourceCommitment.Point) {
		t.Fatalf("opened.SourceCommitment does not match original")
	}
	if !opened.DestCommitment.Point.Equal(msg.DestCommitment.Point) {
		t.Fatalf("opened.DestCommitment does not match original")
	}
	if !opened.InterimCommitment.Point.Equal(msg.InterimCommitment.Point) {
		t.Fatalf("opened.InterimCommitment does not match original")
	}
	if !opened.InterimOpening.Equal(msg.InterimOpening) {
		t.Fatalf("opened.InterimOpening does not match original")
	}
	if !opened.ProofOfKnowledge.N.Equal(msg.ProofOfKnowledge.N) || !opened.ProofOfKnowledge.S.Equal(msg.ProofOfKnowledge.S) {
		t.Fatalf("opened.ProofOfKnowledge does not match original")
	}
	label := token.TransferLabel(mint, sender.SourceCommitment, opened.DestCommitment)
	if !opened.DestRangeProof.Verify(opened.DestCommitment, RangeProofBits, zkp.RangeProofLabel(label)) {
		t.Fatalf("opened.DestRangeProof does not verify against the decoded commitment")
	}
}

func TestOpenRejectsWrongRecipient(t *testing.T) {
	mint := types.Pubkey{7}
	sender := newSender(t, 77)

	msg, err := sender.Step1(mint, 55)
	if err != nil {
		t.Fatalf("Sender.Step1: %v", err)
	}

	senderPub, senderPriv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (sender): %v", err)
	}
	recipientPub, _, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (recipient): %v", err)
	}
	_, wrongPriv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (attacker): %v", err)
	}

	sealed, err := Seal(msg, senderPriv, senderPub, recipientPub)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := Open(sealed, wrongPriv); err == nil {
		t.Fatalf("Open succeeded for a recipient the message was not sealed to")
	}
}

func TestOpenRejectsTamperedBox(t *testing.T) {
	mint := types.Pubkey{7}
	sender := newSender(t, 77)

	msg, err := sender.Step1(mint, 55)
	if err != nil {
		t.Fatalf("Sender.Step1: %v", err)
	}

	senderPub, senderPriv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (sender): %v", err)
	}
	recipientPub, recipientPriv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (recipient): %v", err)
	}

	sealed, err := Seal(msg, senderPriv, senderPub, recipientPub)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	sealed.Box[0] ^= 0xff

	if _, err := Open(sealed, recipientPriv); err == nil {
		t.Fatalf("Open accepted a tampered box")
	}
}
