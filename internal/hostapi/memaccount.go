package hostapi

import "github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"

// MemoryAccount is an in-process AccountInfo backed by a plain byte slice.
// It exists so internal/token can be exercised without a real host, and so
// cmd/ctokens-verifierd can simulate accounts locally.
type MemoryAccount struct {
	key      types.Pubkey
	owner    types.Pubkey
	lamports uint64
	data     []byte
	signer   bool
	writable bool
}

// NewMemoryAccount allocates a zeroed account of dataLen bytes.
func NewMemoryAccount(key, owner types.Pubkey, lamports uint64, dataLen int, signer, writable bool) *MemoryAccount {
	return &MemoryAccount{
		key:      key,
		owner:    owner,
		lamports: lamports,
		data:     make([]byte, dataLen),
		signer:   signer,
		writable: writable,
	}
}

func (a *MemoryAccount) Key() types.Pubkey    { return a.key }
func (a *MemoryAccount) Owner() types.Pubkey  { return a.owner }
func (a *MemoryAccount) Lamports() uint64     { return a.lamports }
func (a *MemoryAccount) SetLamports(v uint64) { a.lamports = v }
func (a *MemoryAccount) Data() []byte         { return a.data }
func (a *MemoryAccount) SetData(b []byte)     { a.data = b }
func (a *MemoryAccount) IsSigner() bool       { return a.signer }
func (a *MemoryAccount) IsWritable() bool     { return a.writable }

// StaticRentOracle is a fixed lamports-per-byte rent oracle, sufficient for
// tests and local simulation; a production host wires its own sysvar-backed
// implementation.
type StaticRentOracle struct {
	LamportsPerByte uint64
	BaseLamports    uint64
}

// NewStaticRentOracle returns a rent oracle charging base+perByte*dataLen.
func NewStaticRentOracle(base, perByte uint64) *StaticRentOracle {
	return &StaticRentOracle{LamportsPerByte: perByte, BaseLamports: base}
}

// IsExempt reports whether lamports covers the minimum balance for dataLen.
func (o *StaticRentOracle) IsExempt(lamports uint64, dataLen int) bool {
	minimum := o.BaseLamports + o.LamportsPerByte*uint64(dataLen)
	return lamports >= minimum
}
