package vm

// Control-flow opcode handlers: STOP, JUMP, JUMPI, PC, JUMPDEST, GAS,
// RETURN, REVERT, INVALID (spec §4.6). These signal the frame's
// outcome to the Run loop via the sentinel errors below rather than by
// mutating frame state directly, since ExecutionContext carries no
// running/stopped/reverted field of its own.

// haltError is the internal control-flow signal STOP and RETURN use; the
// dispatcher recognizes it and translates it into a successful Result
// with a nil error, so it is never surfaced to callers.
type haltError struct {
	returnData []byte
}

func (h *haltError) Error() string { return "evm: halt" }

func opStop(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	return nil, &haltError{}
}

func opReturn(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
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
	return data, &haltError{returnData: data}
}

// opRevert surfaces its memory range as ExecutionReverted without
// burning the gas remaining at the point of the call (spec §4.6, §7
// "REVERT preserves remaining gas").
func opRevert(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
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
	return data, &revertError{data: data}
}

type revertError struct {
	data []byte
}

func (e *revertError) Error() string { return ErrExecutionReverted.Error() }
func (e *revertError) Is(target error) bool { return target == ErrExecutionReverted }

// opInvalid implements the explicit INVALID (0xFE) opcode. Spec §4.6
// treats it like any other Failed transition (burn all remaining gas),
// so it simply reports the invalid-opcode sentinel like an unassigned
// byte would; the dispatcher's burn-on-failure rule takes care of gas.
func opInvalid(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	return nil, &InvalidOpcodeError{Opcode: byte(INVALID)}
}

func opJumpdest(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	return nil, nil
}

func opPc(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(*pc))
	return nil, nil
}

func opGas(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(gas.Remaining()))
	return nil, nil
}

// opJump pops a target and fails InvalidJump unless it names a
// JUMPDEST outside any PUSH immediate (spec §4.6). On success it sets
// *pc directly so the dispatcher's default pc+1 advance is skipped.
func opJump(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	dest, _ := stack.Pop()
	if !ctx.validJumpdest(dest) {
		target := uint64(0)
		if dest.IsUint64() {
			target = dest.Uint64()
		}
		return nil, &InvalidJumpError{Target: target}
	}
	*pc = dest.Uint64()
	return nil, nil
}

// opJumpi is JUMP gated on a non-zero condition; on a zero condition it
// falls through to the normal pc+1 advance.
func opJumpi(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	dest, _ := stack.Pop()
	cond, _ := stack.Pop()
	if cond.IsZero() {
		// jumps=true suppresses the dispatcher's automatic pc+1, so the
		// non-branching path must advance pc itself.
		*pc++
		return nil, nil
	}
	if !ctx.validJumpdest(dest) {
		target := uint64(0)
		if dest.IsUint64() {
			target = dest.Uint64()
		}
		return nil, &InvalidJumpError{Target: target}
	}
	*pc = dest.Uint64()
	return nil, nil
}
