// Package state implements the interpreter's world-state collaborator:
// an in-memory Address -> Account map with per-account storage, code
// store, and deep-copy snapshot/revert (spec §4.7).
package state

import (
	"github.com/ferrovm/evmcore/core/types"
	"github.com/ferrovm/evmcore/core/vm"
)

// Account is the per-address record the state map holds. A zero-valued
// Account is an implicitly-created empty EOA (spec §4.7 "On first touch
// by balance/nonce query, a zero-valued EOA is implicitly created").
type Account struct {
	Balance  *vm.Word
	Nonce    uint64
	CodeHash types.Hash
}

func newAccount() *Account {
	return &Account{Balance: vm.NewWord()}
}

// clone returns a deep copy of a, safe to mutate independently.
func (a *Account) clone() *Account {
	return &Account{
		Balance:  new(vm.Word).Set(a.Balance),
		Nonce:    a.Nonce,
		CodeHash: a.CodeHash,
	}
}
