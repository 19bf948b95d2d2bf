package vm

// Memory opcode handlers: MLOAD, MSTORE, MSTORE8, MSIZE (spec §4.3).
// Gas metering and resizing happen in the dispatcher before execute is
// called, so these only touch the already-expanded backing store.

func opMload(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	off, _ := stack.Peek(0)
	o, err := toByteSize(off)
	if err != nil {
		return nil, err
	}
	off.Set(mem.Load(o))
	return nil, nil
}

func opMstore(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	off, _ := stack.Pop()
	val, _ := stack.Pop()
	o, err := toByteSize(off)
	if err != nil {
		return nil, err
	}
	mem.Store(o, val)
	return nil, nil
}

func opMstore8(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	off, _ := stack.Pop()
	val, _ := stack.Pop()
	o, err := toByteSize(off)
	if err != nil {
		return nil, err
	}
	mem.StoreByte(o, byte(val.Uint64()))
	return nil, nil
}

func opMsize(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(mem.Len()))
	return nil, nil
}
