package types

import "errors"

// Error taxonomy for the confidential-token ledger core. Each is a
// distinct sentinel mapped by the host to its own error code; nothing in
// this module panics on untrusted input.
var (
	// ErrInvalidInstruction is returned for an unknown instruction tag or
	// a malformed instruction body.
	ErrInvalidInstruction = errors.New("invalid instruction")

	// ErrAlreadyInUse is returned when initializing a record that is
	// already initialized.
	ErrAlreadyInUse = errors.New("already in use")

	// ErrNotRentExempt is returned when a writable record fails the
	// host's rent-exemption check.
	ErrNotRentExempt = errors.New("not rent exempt")

	// ErrOverflow is returned when a u64 supply addition would overflow.
	ErrOverflow = errors.New("overflow")

	// ErrInvalidProof is returned when any cryptographic check fails:
	// range proof, proof of knowledge, or a point/scalar decode.
	ErrInvalidProof = errors.New("invalid proof")

	// ErrCommitmentMismatch is returned when a source account's stored
	// commitment does not match the transaction's declared input.
	ErrCommitmentMismatch = errors.New("commitment mismatch")

	// ErrOpeningInvalid is returned when a CloseAccount opening does not
	// verify against the claimed commitment and amount.
	ErrOpeningInvalid = errors.New("opening invalid")

	// ErrMintMismatch is returned when a source account's mint field does
	// not match the mint passed into the instruction.
	ErrMintMismatch = errors.New("mint mismatch")

	// ErrOwnerMismatch is returned when the provided authority does not
	// match the mint's recorded authority.
	ErrOwnerMismatch = errors.New("owner mismatch")
)
