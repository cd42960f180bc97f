package client

import (
	"crypto/rand"
	"encoding/binary"
	"errors"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"golang.org/x/crypto/nacl/box"
)

// ErrEnvelopeTooShort is returned when an opened envelope's plaintext is
// too short to hold an encoded SenderMessage.
var ErrEnvelopeTooShort = errors.New("client: envelope too short")

// SealedMessage is a SenderMessage encrypted for a single receiver with
// NaCl box. SenderMessage.InterimOpening is the interim commitment's
// blinding factor (r_int); spec.md §4.5 hands it to the
// receiver in the clear, but nothing requires it to cross an untrusted
// relay unsealed, so a handoff channel that isn't already
// point-to-point should use this instead of SenderMessage directly.
type SealedMessage struct {
	SenderPublicKey [32]byte
	Nonce           [24]byte
	Box             []byte
}

// Seal encrypts msg for recipientPublicKey under a random nonce,
// authenticated with the caller's senderPrivateKey; senderPublicKey is
// carried in the envelope so the recipient can open it. No ephemeral
// keypair is generated.
func Seal(msg SenderMessage, senderPrivateKey *[32]byte, senderPublicKey, recipientPublicKey *[32]byte) (SealedMessage, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return SealedMessage{}, err
	}

	plaintext := encodeSenderMessage(msg)
	sealed := box.Seal(nil, plaintext, &nonce, recipientPublicKey, senderPrivateKey)

	return SealedMessage{
		SenderPublicKey: *senderPublicKey,
		Nonce:           nonce,
		Box:             sealed,
	}, nil
}

// Open decrypts a SealedMessage addressed to recipientPrivateKey, using
// the sender public key embedded in the envelope.
func Open(sealed SealedMessage, recipientPrivateKey *[32]byte) (SenderMessage, error) {
	plaintext, ok := box.Open(nil, sealed.Box, &sealed.Nonce, &sealed.SenderPublicKey, recipientPrivateKey)
	if !ok {
		return SenderMessage{}, errors.New("client: envelope authentication failed")
	}
	return decodeSenderMessage(plaintext)
}

// GenerateKeyPair returns a fresh X25519 keypair for envelope sealing.
func GenerateKeyPair() (publicKey, privateKey *[32]byte, err error) {
	return box.GenerateKey(rand.Reader)
}

func encodeSenderMessage(msg SenderMessage) []byte {
	buf := make([]byte, 0, 8+4*curve.PointSize+curve.ScalarSize+4+4)
	buf = putUint64(buf, msg.Amount)
	buf = append(buf, encodePoint(msg.SourceCommitment.Point)...)
	buf = append(buf, encodePoint(msg.DestCommitment.Point)...)
	buf = append(buf, encodePoint(msg.InterimCommitment.Point)...)
	buf = append(buf, encodeScalar(msg.InterimOpening)...)
	buf = putLengthPrefixed(buf, encodeRangeProofForEnvelope(msg.DestRangeProof))
	buf = append(buf, encodePok(msg.ProofOfKnowledge)...)
	return buf
}

func decodeSenderMessage(b []byte) (SenderMessage, error) {
	if len(b) < 8+3*curve.PointSize+curve.ScalarSize+4 {
		return SenderMessage{}, ErrEnvelopeTooShort
	}

	amount := binary.LittleEndian.Uint64(b[:8])
	b = b[8:]

	source, err := decodeCommitment(b)
	if err != nil {
		return SenderMessage{}, err
	}
	b = b[curve.PointSize:]

	dest, err := decodeCommitment(b)
	if err != nil {
		return SenderMessage{}, err
	}
	b = b[curve.PointSize:]

	interim, err := decodeCommitment(b)
	if err != nil {
		return SenderMessage{}, err
	}
	b = b[curve.PointSize:]

	if len(b) < curve.ScalarSize {
		return SenderMessage{}, ErrEnvelopeTooShort
	}
	interimOpening, err := curve.DecodeScalar(b[:curve.ScalarSize])
	if err != nil {
		return SenderMessage{}, err
	}
	b = b[curve.ScalarSize:]

	rpBytes, rest, err := takeLengthPrefixed(b)
	if err != nil {
		return SenderMessage{}, err
	}
	rangeProof, err := zkp.DecodeBitRangeProof(rpBytes, RangeProofBits)
	if err != nil {
		return SenderMessage{}, err
	}

	pok, err := decodePok(rest)
	if err != nil {
		return SenderMessage{}, err
	}

	return SenderMessage{
		Amount:            amount,
		SourceCommitment:  source,
		DestCommitment:    dest,
		DestRangeProof:    rangeProof,
		InterimCommitment: interim,
		InterimOpening:    interimOpening,
		ProofOfKnowledge:  pok,
	}, nil
}

func encodePoint(p curve.Point) []byte {
	enc := p.Encode()
	return enc[:]
}

func encodeScalar(s curve.Scalar) []byte {
	enc := s.Encode()
	return enc[:]
}

func decodeCommitment(b []byte) (zkp.Commitment, error) {
	if len(b) < curve.PointSize {
		return zkp.Commitment{}, ErrEnvelopeTooShort
	}
	return zkp.DecodeCommitment(b[:curve.PointSize])
}

func encodePok(p zkp.ProofOfKnowledge) []byte {
	buf := make([]byte, 0, curve.PointSize+curve.ScalarSize)
	buf = append(buf, encodePoint(p.N)...)
	buf = append(buf, encodeScalar(p.S)...)
	return buf
}

func decodePok(b []byte) (zkp.ProofOfKnowledge, error) {
	if len(b) < curve.PointSize+curve.ScalarSize {
		return zkp.ProofOfKnowledge{}, ErrEnvelopeTooShort
	}
	n, err := curve.DecodePoint(b[:curve.PointSize])
	if err != nil {
		return zkp.ProofOfKnowledge{}, err
	}
	b = b[curve.PointSize:]

	s, err := curve.DecodeScalar(b[:curve.ScalarSize])
	if err != nil {
		return zkp.ProofOfKnowledge{}, err
	}
	return zkp.ProofOfKnowledge{N: n, S: s}, nil
}

func encodeRangeProofForEnvelope(rp zkp.RangeProof) []byte {
	if bp, ok := rp.(*zkp.BitRangeProof); ok {
		return bp.Encode()
	}
	return nil
}

func putUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func putLengthPrefixed(buf []byte, b []byte) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(b)))
	buf = append(buf, tmp[:]...)
	return append(buf, b...)
}

func takeLengthPrefixed(b []byte) (payload []byte, rest []byte, err error) {
	if len(b) < 4 {
		return nil, nil, ErrEnvelopeTooShort
	}
	n := binary.LittleEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(len(b)) < uint64(n) {
		return nil, nil, ErrEnvelopeTooShort
	}
	return b[:n], b[n:], nil
}
