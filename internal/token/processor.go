package token

import (
	"time"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/hostapi"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/logging"
	"github.com/mayacrypto/spl-c-tokens-prototype/internal/metrics"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// Processor dispatches decoded instructions against host-provided account
// handles. It holds no state of its own; every check and mutation reads
// and writes through the AccountInfo and RentOracle interfaces. Log and
// Metrics are optional observability hooks: both are nil-safe, so a
// Processor built with NewProcessor works without either wired in.
type Processor struct {
	Rent    hostapi.RentOracle
	Log     *logging.Logger
	Metrics *metrics.Collector
}

// NewProcessor constructs a Processor backed by the given rent oracle.
func NewProcessor(rent hostapi.RentOracle) *Processor {
	return &Processor{Rent: rent}
}

// Process decodes instructionData and dispatches it against accounts.
// Every cryptographic and structural check for an instruction completes
// before any account buffer is mutated (write-after-verify, spec.md §5):
// a verification failure returns before touching accounts.
func (p *Processor) Process(accounts []hostapi.AccountInfo, instructionData []byte) error {
	ix, err := DecodeInstruction(instructionData)
	if err != nil {
		return err
	}

	kind, mint := instructionKindAndMint(ix, accounts)
	start := time.Now()

	switch ix.Tag {
	case TagInitializeMint:
		err = p.processInitializeMint(accounts, ix.InitializeMintAuthority)
	case TagMint:
		err = p.processMint(accounts, ix.MintData)
	case TagTransfer:
		err = p.processTransfer(accounts, ix.TransferData)
	case TagCloseAccount:
		err = p.processCloseAccount(accounts, ix.CloseAccountData)
	default:
		err = types.ErrInvalidInstruction
	}

	p.Metrics.CountInstruction(kind)
	p.Metrics.RecordVerification(err == nil)
	p.Metrics.ObserveLatency(kind, start)

	keys := make([]types.Pubkey, len(accounts))
	for i, a := range accounts {
		keys[i] = a.Key()
	}
	p.Log.Instruction(kind, mint, keys, err)

	return err
}

// instructionKindAndMint reports the instruction's metric/log label and
// the mint it concerns, reading only from already-decoded fields so it
// never needs its own error path.
func instructionKindAndMint(ix Instruction, accounts []hostapi.AccountInfo) (string, types.Pubkey) {
	switch ix.Tag {
	case TagInitializeMint:
		if len(accounts) > 0 {
			return "initialize_mint", accounts[0].Key()
		}
		return "initialize_mint", types.Pubkey{}
	case TagMint:
		if len(accounts) > 0 {
			return "mint", accounts[0].Key()
		}
		return "mint", types.Pubkey{}
	case TagTransfer:
		if len(accounts) > 0 {
			return "transfer", accounts[0].Key()
		}
		return "transfer", types.Pubkey{}
	case TagCloseAccount:
		return "close_account", types.Pubkey{}
	default:
		return "unknown", types.Pubkey{}
	}
}

// processInitializeMint implements spec.md §4.4 InitializeMint.
// Accounts: [writable mint].
func (p *Processor) processInitializeMint(accounts []hostapi.AccountInfo, authority types.Pubkey) error {
	if len(accounts) < 1 {
		return types.ErrInvalidInstruction
	}
	mintAcc := accounts[0]

	mint, err := DecodeMint(mintAcc.Data())
	if err != nil {
		return err
	}
	if mint.Initialized {
		return types.ErrAlreadyInUse
	}
	if !p.Rent.IsExempt(mintAcc.Lamports(), MintSize) {
		return types.ErrNotRentExempt
	}

	mint = Mint{Authority: authority, Supply: 0, Initialized: true}
	mintAcc.SetData(mint.Encode())
	return nil
}

// processMint implements spec.md §4.4 Mint.
// Accounts: [writable mint, writable dest_account, readonly expected_authority (signer)].
func (p *Processor) processMint(accounts []hostapi.AccountInfo, data MintData) error {
	if len(accounts) < 3 {
		return types.ErrInvalidInstruction
	}
	mintAcc, destAcc, authorityAcc := accounts[0], accounts[1], accounts[2]

	mint, err := DecodeMint(mintAcc.Data())
	if err != nil {
		return err
	}
	dest, err := DecodeAccount(destAcc.Data())
	if err != nil {
		return err
	}
	if dest.Initialized {
		return types.ErrAlreadyInUse
	}
	if !p.Rent.IsExempt(destAcc.Lamports(), AccountSize) {
		return types.ErrNotRentExempt
	}

	if err := VerifyMintData(mintAcc.Key(), data); err != nil {
		return err
	}

	if authorityAcc.Key() != mint.Authority {
		return types.ErrOwnerMismatch
	}

	newSupply, ok := checkedAddUint64(mint.Supply, data.Amount)
	if !ok {
		return types.ErrOverflow
	}

	dest = Account{Mint: mintAcc.Key(), Initialized: true, Commitment: data.OutCommitment}
	destAcc.SetData(dest.Encode())

	mint.Supply = newSupply
	mintAcc.SetData(mint.Encode())
	return nil
}

// processTransfer implements spec.md §4.4 Transfer.
// Accounts: [readonly mint, writable src0, writable src1, writable dst0, writable dst1].
func (p *Processor) processTransfer(accounts []hostapi.AccountInfo, data TransferData) error {
	if len(accounts) < 5 {
		return types.ErrInvalidInstruction
	}
	mintAcc := accounts[0]
	srcAccs := [2]hostapi.AccountInfo{accounts[1], accounts[2]}
	dstAccs := [2]hostapi.AccountInfo{accounts[3], accounts[4]}

	var srcs [2]Account
	for i, acc := range srcAccs {
		a, err := DecodeAccount(acc.Data())
		if err != nil {
			return err
		}
		srcs[i] = a
	}

	var dsts [2]Account
	for i, acc := range dstAccs {
		a, err := DecodeAccount(acc.Data())
		if err != nil {
			return err
		}
		dsts[i] = a
	}

	for i := range srcs {
		if !srcs[i].Commitment.Point.Equal(data.InCommitments[i].Point) {
			return types.ErrCommitmentMismatch
		}
		if srcs[i].Mint != mintAcc.Key() {
			return types.ErrMintMismatch
		}
	}
	for i := range dsts {
		if dsts[i].Initialized {
			return types.ErrAlreadyInUse
		}
		if !p.Rent.IsExempt(dstAccs[i].Lamports(), AccountSize) {
			return types.ErrNotRentExempt
		}
	}

	if err := VerifyTransferData(mintAcc.Key(), data); err != nil {
		return err
	}

	for _, acc := range srcAccs {
		acc.SetLamports(0)
	}
	for i, acc := range dstAccs {
		out := Account{Mint: mintAcc.Key(), Initialized: true, Commitment: data.OutCommitments[i]}
		acc.SetData(out.Encode())
	}
	return nil
}

// processCloseAccount implements spec.md §4.4 CloseAccount.
// Accounts: [writable src, writable dst].
func (p *Processor) processCloseAccount(accounts []hostapi.AccountInfo, data CloseAccountData) error {
	if len(accounts) < 2 {
		return types.ErrInvalidInstruction
	}
	srcAcc, dstAcc := accounts[0], accounts[1]

	src, err := DecodeAccount(srcAcc.Data())
	if err != nil {
		return err
	}
	if !src.Commitment.Point.Equal(data.Commitment.Point) {
		return types.ErrCommitmentMismatch
	}

	if err := VerifyCloseAccountData(data); err != nil {
		return err
	}

	dstAcc.SetLamports(dstAcc.Lamports() + srcAcc.Lamports())
	srcAcc.SetLamports(0)
	return nil
}

func checkedAddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
