package vm

// Block-context opcode handlers: BLOCKHASH, COINBASE, TIMESTAMP, NUMBER,
// DIFFICULTY, GASLIMIT, CHAINID, SELFBALANCE, BASEFEE (spec §6 "Block
// context input"). All but BLOCKHASH and SELFBALANCE read straight off
// ctx.Block; there is no block store to query ancestor hashes from, so
// BLOCKHASH returns zero for every argument (spec §9: "without a chain
// to query, BLOCKHASH degrades to the zero hash").

func opBlockhash(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	n, _ := stack.Peek(0)
	n.Clear()
	return nil, nil
}

func opCoinbase(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(wordFromAddress(ctx.Block.Coinbase))
	return nil, nil
}

func opTimestamp(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(ctx.Block.Timestamp))
	return nil, nil
}

func opNumber(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(ctx.Block.Number))
	return nil, nil
}

func opDifficulty(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	if ctx.Block.Difficulty == nil {
		stack.Push(NewWord())
		return nil, nil
	}
	stack.Push(new(Word).Set(ctx.Block.Difficulty))
	return nil, nil
}

func opGaslimit(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(ctx.Block.GasLimit))
	return nil, nil
}

func opChainid(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(ctx.Block.ChainID))
	return nil, nil
}

func opSelfbalance(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(evm.StateDB.GetBalance(ctx.Address))
	return nil, nil
}

func opBasefee(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	if ctx.Block.BaseFee == nil {
		stack.Push(NewWord())
		return nil, nil
	}
	stack.Push(new(Word).Set(ctx.Block.BaseFee))
	return nil, nil
}
