package vm

import "github.com/ferrovm/evmcore/core/types"

// Storage opcode handlers: SLOAD, SSTORE (spec §4.4). SSTORE enforces
// the static-call guard here too since it is the one storage op with a
// write (the dispatcher also checks operation.writes generically, but
// the refund math only makes sense written out by hand).

func opSload(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	loc, _ := stack.Peek(0)
	key := types.Hash(loc.Bytes32())
	val := evm.StateDB.GetState(ctx.Address, key)
	loc.SetBytes32(val[:])
	return nil, nil
}

// opSstore writes a storage slot and applies the refund rules of spec
// P8. The dispatcher's gasSstore closure has already priced the write
// (zero when the slot was and stays zero, GasSstore otherwise); this
// handler only has to do the write and account for the refund earned
// when a previously non-zero slot is cleared to zero.
func opSstore(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	if ctx.IsStatic {
		return nil, ErrStaticCallViolation
	}
	loc, _ := stack.Pop()
	val, _ := stack.Pop()

	key := types.Hash(loc.Bytes32())
	newBytes := val.Bytes32()
	newVal := types.Hash(newBytes)

	current := evm.StateDB.GetState(ctx.Address, key)
	isZero := types.Hash{}

	if newVal == current {
		evm.StateDB.SetState(ctx.Address, key, newVal)
		return nil, nil
	}

	if newVal == isZero && current != isZero {
		gas.AddRefund(SstoreRefund)
	}

	evm.StateDB.SetState(ctx.Address, key, newVal)
	return nil, nil
}
