package token

import "github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"

// Instruction tags, per the wire format: a single leading tag byte
// followed by a tag-specific body.
const (
	TagInitializeMint byte = 0
	TagMint           byte = 1
	TagTransfer       byte = 2
	TagCloseAccount   byte = 3
)

// Instruction is a decoded, dispatch-ready instruction body. Exactly one
// of the typed fields is populated, matching Tag.
type Instruction struct {
	Tag byte

	InitializeMintAuthority types.Pubkey
	MintData                MintData
	TransferData            TransferData
	CloseAccountData        CloseAccountData
}

// DecodeInstruction parses the leading tag byte and dispatches to the
// matching body decoder. An unknown tag or a malformed body surfaces as
// ErrInvalidInstruction, or as ErrInvalidProof when a point, scalar or
// range proof in the body does not decode; never as a panic.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) < 1 {
		return Instruction{}, types.ErrInvalidInstruction
	}
	tag := data[0]
	body := data[1:]

	switch tag {
	case TagInitializeMint:
		authority, err := types.PubkeyFromBytes(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, InitializeMintAuthority: authority}, nil

	case TagMint:
		m, err := DecodeMintData(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, MintData: m}, nil

	case TagTransfer:
		t, err := DecodeTransferData(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, TransferData: t}, nil

	case TagCloseAccount:
		c, err := DecodeCloseAccountData(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, CloseAccountData: c}, nil

	default:
		return Instruction{}, types.ErrInvalidInstruction
	}
}
