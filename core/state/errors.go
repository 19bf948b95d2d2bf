package state

import (
	"errors"
	"fmt"

	"github.com/ferrovm/evmcore/core/vm"
)

// ErrInsufficientBalance is the comparison sentinel for
// InsufficientBalanceError; use errors.Is rather than a type assertion.
var ErrInsufficientBalance = errors.New("state: insufficient balance")

// InsufficientBalanceError names the shortfall a transfer hit (spec §7:
// "InsufficientBalance(required, available) — transfer underflow").
type InsufficientBalanceError struct {
	Required  *vm.Word
	Available *vm.Word
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("state: insufficient balance: required %s, available %s", e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
