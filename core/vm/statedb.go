package vm

import "github.com/ferrovm/evmcore/core/types"

// StateDB is the subset of world-state operations an executing frame can
// reach (spec §4.7). It is declared here, not in core/state, so this
// package never has to import the state package — any type satisfying
// this interface (core/state.State in particular) can drive the
// interpreter, matching the teacher's own StateDB-interface-lives-in-vm
// pattern (pkg/core/vm/interpreter.go).
type StateDB interface {
	GetBalance(addr types.Address) *Word
	AddBalance(addr types.Address, amount *Word)
	SubBalance(addr types.Address, amount *Word) error

	GetNonce(addr types.Address) uint64
	SetNonce(addr types.Address, nonce uint64)

	GetCode(addr types.Address) []byte
	SetCode(addr types.Address, code []byte)
	GetCodeHash(addr types.Address) types.Hash
	GetCodeSize(addr types.Address) int

	GetState(addr types.Address, key types.Hash) types.Hash
	SetState(addr types.Address, key types.Hash, value types.Hash)

	Snapshot() int
	RevertToSnapshot(id int)

	AddLog(l types.Log)
	Logs() []types.Log
}
