package vm

// Arithmetic opcode handlers (spec §4.1). Each pops its operands,
// computes in place on the slot that remains on the stack, and relies on
// uint256.Int's own wrap-around/truncating/two's-complement semantics
// (see word.go) rather than re-deriving them. Stack underflow cannot
// occur here: the dispatcher already checked minStack before calling
// execute, so Pop/Peek errors are discarded.

func opAdd(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.Add(x, y)
	return nil, nil
}

func opSub(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.Sub(x, y)
	return nil, nil
}

func opMul(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.Mul(x, y)
	return nil, nil
}

func opDiv(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.Div(x, y) // uint256.Int.Div already returns 0 for a zero divisor (spec P6)
	return nil, nil
}

func opSdiv(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.SDiv(x, y) // handles zero divisor and INT256_MIN/-1 (spec §4.1)
	return nil, nil
}

func opMod(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.Mod(x, y) // 0 for a zero modulus (spec P6)
	return nil, nil
}

func opSmod(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Peek(0)
	y.SMod(x, y)
	return nil, nil
}

func opAddmod(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Pop()
	z, _ := stack.Peek(0)
	// AddMod carries 512 bits of intermediate precision so the sum
	// cannot overflow before the modulo is taken (spec P7, scenario 3).
	z.AddMod(x, y, z)
	return nil, nil
}

func opMulmod(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	x, _ := stack.Pop()
	y, _ := stack.Pop()
	z, _ := stack.Peek(0)
	z.MulMod(x, y, z)
	return nil, nil
}

func opExp(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	base, _ := stack.Pop()
	exponent, _ := stack.Peek(0)
	exponent.Exp(base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	back, _ := stack.Pop()
	num, _ := stack.Peek(0)
	num.ExtendSign(num, back)
	return nil, nil
}
