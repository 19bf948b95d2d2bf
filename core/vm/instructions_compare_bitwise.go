package vm

// Comparison and bitwise opcode handlers (spec §4.1/§6).

func opLt(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIsZero(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Peek(0)
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.And(x, y)
	return nil, nil
}

func opOr(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.Or(x, y)
	return nil, nil
}

func opXor(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.Xor(x, y)
	return nil, nil
}

func opNot(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Peek(0)
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	th, _ := stack.Pop()
	val, _ := stack.Peek(0)
	val.Byte(th) // 0 when th >= 32 (spec §4.1)
	return nil, nil
}

func opShl(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	shift, _ := stack.Pop()
	value, _ := stack.Peek(0)
	if shift.GtUint64(255) {
		value.Clear()
	} else {
		value.Lsh(value, uint(shift.Uint64()))
	}
	return nil, nil
}

func opShr(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	shift, _ := stack.Pop()
	value, _ := stack.Peek(0)
	if shift.GtUint64(255) {
		value.Clear()
	} else {
		value.Rsh(value, uint(shift.Uint64()))
	}
	return nil, nil
}

func opSar(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	shift, _ := stack.Pop()
	value, _ := stack.Peek(0)
	if shift.GtUint64(255) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}
