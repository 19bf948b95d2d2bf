package vm

import "github.com/ferrovm/evmcore/core/types"

// makeLog returns a LOGn handler that pops (offset, size) and n topics,
// records a Log against the frame's address, and refuses to run inside
// a static call (spec I6 "SSTORE/LOG*/CREATE*/CALL-with-value/
// SELFDESTRUCT must fail before mutation when is_static").
func makeLog(topics int) executionFunc {
	return func(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
		if ctx.IsStatic {
			return nil, ErrStaticCallViolation
		}
		off, _ := stack.Pop()
		size, _ := stack.Pop()
		o, err := toByteSize(off)
		if err != nil {
			return nil, err
		}
		sz, err := toByteSize(size)
		if err != nil {
			return nil, err
		}
		data := mem.LoadRange(o, sz)

		topicHashes := make([]types.Hash, topics)
		for i := 0; i < topics; i++ {
			t, _ := stack.Pop()
			b := t.Bytes32()
			topicHashes[i] = types.Hash(b)
		}

		evm.StateDB.AddLog(types.Log{
			Address: ctx.Address,
			Topics:  topicHashes,
			Data:    data,
		})
		return nil, nil
	}
}
