// Command ctokens-cli is an offline command-line interface for the
// confidential-token core: it assembles instruction payloads and the
// wallet-side note each one requires to later prove or reopen its own
// commitment. It never talks to a host; "submitting" an instruction
// means printing its encoded bytes for whatever transport the caller
// uses.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/client"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/token"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/zkp"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/common"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("ctokens-cli v%s\n", version)
	case "help":
		printUsage()
	case "keygen":
		err = cmdKeygen()
	case "mint":
		err = cmdMint(os.Args[2:])
	case "transfer":
		err = cmdTransfer(os.Args[2:])
	case "close":
		err = cmdClose(os.Args[2:])
	default:
		fmt.Printf("unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ctokens-cli - offline instruction assembler for the confidential-token core")
	fmt.Println()
	fmt.Println("Usage: ctokens-cli <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version                                Show version information")
	fmt.Println("  help                                   Show this help message")
	fmt.Println("  keygen                                 Generate a new account key")
	fmt.Println("  mint <mint_hex> <amount>                Build a Mint instruction")
	fmt.Println("  transfer <mint_hex> <src_val> <src_opening_hex> <dst_val> <dst_opening_hex> <amount>")
	fmt.Println("                                          Run the two-party transfer protocol and build a Transfer instruction")
	fmt.Println("  close <amount> <opening_hex>            Build a CloseAccount instruction")
}

func cmdKeygen() error {
	b, err := common.RandomBytes(types.PubkeySize)
	if err != nil {
		return err
	}
	key, err := types.PubkeyFromBytes(b)
	if err != nil {
		return err
	}
	fmt.Printf("account: %s\n", key.String())
	return nil
}

// cmdMint builds a Mint instruction for amount, minted against mintHex.
// It prints the instruction's hex-encoded wire bytes and the blinding
// factor the caller must keep (its wallet note) in order to later spend
// or close the resulting commitment.
func cmdMint(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ctokens-cli mint <mint_hex> <amount>")
	}
	mint, err := parsePubkey(args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	commitment, opening, err := zkp.Commit(amount, nil)
	if err != nil {
		return err
	}
	label := token.MintLabel(mint, amount, commitment)

	rangeProof, err := zkp.ProveBitRange(amount, opening, token.RangeProofBits, zkp.RangeProofLabel(label))
	if err != nil {
		return err
	}
	pok, err := zkp.ProveKnowledge(opening, label)
	if err != nil {
		return err
	}

	data := token.MintData{Amount: amount, OutCommitment: commitment, RangeProof: rangeProof, Pok: pok}
	ix := append([]byte{token.TagMint}, data.Encode()...)

	fmt.Printf("instruction: %s\n", common.BytesToHex(ix))
	fmt.Printf("wallet_opening: %s\n", common.BytesToHex(encodeScalarBytes(opening)))
	return nil
}

// cmdTransfer runs the real two-party protocol locally (both sides are
// simulated in the same process, since this is an offline tool) and
// prints the resulting Transfer instruction. The new destination openings
// are not printed: the client package does not return them.
func cmdTransfer(args []string) error {
	if len(args) != 6 {
		return fmt.Errorf("usage: ctokens-cli transfer <mint_hex> <src_val> <src_opening_hex> <dst_val> <dst_opening_hex> <amount>")
	}
	mint, err := parsePubkey(args[0])
	if err != nil {
		return err
	}
	srcVal, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid src_val: %w", err)
	}
	srcOpening, err := parseScalar(args[2])
	if err != nil {
		return fmt.Errorf("invalid src_opening: %w", err)
	}
	dstVal, err := strconv.ParseUint(args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid dst_val: %w", err)
	}
	dstOpening, err := parseScalar(args[4])
	if err != nil {
		return fmt.Errorf("invalid dst_opening: %w", err)
	}
	amount, err := strconv.ParseUint(args[5], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	senderCommitment, _, err := zkp.Commit(srcVal, &srcOpening)
	if err != nil {
		return err
	}
	receiverCommitment, _, err := zkp.Commit(dstVal, &dstOpening)
	if err != nil {
		return err
	}

	sender := client.Sender{SourceCommitment: senderCommitment, SourceOpening: srcOpening, SourceValue: srcVal}
	receiver := client.Receiver{SourceCommitment: receiverCommitment, SourceOpening: dstOpening, SourceValue: dstVal}

	msg, err := sender.Step1(mint, amount)
	if err != nil {
		return fmt.Errorf("sender step1: %w", err)
	}
	transferData, err := receiver.Step2(mint, msg)
	if err != nil {
		return fmt.Errorf("receiver step2: %w", err)
	}

	if err := token.VerifyTransferData(mint, transferData); err != nil {
		return fmt.Errorf("assembled transfer failed verification: %w", err)
	}

	ix := append([]byte{token.TagTransfer}, transferData.Encode()...)
	fmt.Printf("instruction: %s\n", common.BytesToHex(ix))
	fmt.Println("note: the sender's new change-account opening and the receiver's new")
	fmt.Println("balance-account opening are generated fresh inside the client package and")
	fmt.Println("are not returned by Step1/Step2 and are not recoverable from the")
	fmt.Println("instruction bytes.")
	return nil
}

// cmdClose builds a CloseAccount instruction for a commitment the caller
// already knows the opening of.
func cmdClose(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ctokens-cli close <amount> <opening_hex>")
	}
	amount, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	opening, err := parseScalar(args[1])
	if err != nil {
		return fmt.Errorf("invalid opening: %w", err)
	}

	commitment, _, err := zkp.Commit(amount, &opening)
	if err != nil {
		return err
	}

	data := token.CloseAccountData{Amount: amount, Commitment: commitment, Opening: opening}
	ix := append([]byte{token.TagCloseAccount}, data.Encode()...)

	fmt.Printf("instruction: %s\n", common.BytesToHex(ix))
	return nil
}

func parsePubkey(s string) (types.Pubkey, error) {
	b, err := common.HexToBytes(s)
	if err != nil {
		return types.Pubkey{}, err
	}
	return types.PubkeyFromBytes(b)
}

func parseScalar(s string) (curve.Scalar, error) {
	b, err := common.HexToBytes(s)
	if err != nil {
		return curve.Scalar{}, err
	}
	return curve.DecodeScalar(b)
}

func encodeScalarBytes(s curve.Scalar) []byte {
	enc := s.Encode()
	return enc[:]
}
