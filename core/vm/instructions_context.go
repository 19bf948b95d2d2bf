package vm

import (
	"github.com/ferrovm/evmcore/core/types"
	"github.com/ferrovm/evmcore/crypto"
)

// Environment and data-copy opcode handlers: ADDRESS, BALANCE, ORIGIN,
// CALLER, CALLVALUE, CALLDATALOAD, CALLDATASIZE, CALLDATACOPY, CODESIZE,
// CODECOPY, GASPRICE, EXTCODESIZE, EXTCODECOPY, EXTCODEHASH,
// RETURNDATASIZE, RETURNDATACOPY, KECCAK256 (spec §6).

func opAddress(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(wordFromAddress(ctx.Address))
	return nil, nil
}

func opBalance(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	addr, _ := stack.Peek(0)
	a := addressFromWord(addr)
	addr.Set(evm.StateDB.GetBalance(a))
	return nil, nil
}

func opOrigin(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(wordFromAddress(ctx.Origin))
	return nil, nil
}

func opCaller(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(wordFromAddress(ctx.Caller))
	return nil, nil
}

func opCallvalue(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(new(Word).Set(ctx.Value))
	return nil, nil
}

func opCalldataload(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	off, _ := stack.Peek(0)
	var buf [32]byte
	if off.IsUint64() {
		o := off.Uint64()
		if o < uint64(len(ctx.CallData)) {
			copy(buf[:], ctx.CallData[o:])
		}
	}
	off.SetBytes32(buf[:])
	return nil, nil
}

func opCalldatasize(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(ctx.CallDataSize()))
	return nil, nil
}

func opCalldatacopy(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	destOff, _ := stack.Pop()
	srcOff, _ := stack.Pop()
	size, _ := stack.Pop()
	return copyToMemory(mem, destOff, srcOff, size, ctx.CallData)
}

func opCodesize(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(ctx.CodeSize()))
	return nil, nil
}

func opCodecopy(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	destOff, _ := stack.Pop()
	srcOff, _ := stack.Pop()
	size, _ := stack.Pop()
	return copyToMemory(mem, destOff, srcOff, size, ctx.Code)
}

func opGasprice(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(new(Word).Set(ctx.GasPrice))
	return nil, nil
}

func opExtcodesize(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	addr, _ := stack.Peek(0)
	a := addressFromWord(addr)
	addr.SetUint64(uint64(evm.StateDB.GetCodeSize(a)))
	return nil, nil
}

func opExtcodecopy(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	addrW, _ := stack.Pop()
	destOff, _ := stack.Pop()
	srcOff, _ := stack.Pop()
	size, _ := stack.Pop()
	a := addressFromWord(addrW)
	code := evm.StateDB.GetCode(a)
	return copyToMemory(mem, destOff, srcOff, size, code)
}

func opExtcodehash(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	addr, _ := stack.Peek(0)
	a := addressFromWord(addr)
	h := evm.StateDB.GetCodeHash(a)
	addr.SetBytes32(h[:])
	return nil, nil
}

func opReturndatasize(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	stack.Push(WordFromUint64(uint64(len(ctx.ReturnData))))
	return nil, nil
}

func opReturndatacopy(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	destOff, _ := stack.Pop()
	srcOff, _ := stack.Pop()
	size, _ := stack.Pop()
	so, err := toByteSize(srcOff)
	if err != nil {
		return nil, err
	}
	sz, err := toByteSize(size)
	if err != nil {
		return nil, err
	}
	if so+sz > uint64(len(ctx.ReturnData)) {
		return nil, &InvalidJumpError{Target: so + sz}
	}
	return copyToMemory(mem, destOff, srcOff, size, ctx.ReturnData)
}

func opKeccak256(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error) {
	off, _ := stack.Pop()
	size, _ := stack.Peek(0)
	o, err := toByteSize(off)
	if err != nil {
		return nil, err
	}
	sz, err := toByteSize(size)
	if err != nil {
		return nil, err
	}
	data := mem.LoadRange(o, sz)
	h := crypto.Keccak256(data)
	size.SetBytes32(h)
	return nil, nil
}

// copyToMemory implements the CALLDATACOPY/CODECOPY/EXTCODECOPY family:
// copy size bytes from src[srcOff:] into memory at destOff, zero-filling
// any tail past the end of src (spec §6 "out-of-bounds source reads
// behave as if padded with zero bytes").
func copyToMemory(mem *Memory, destOff, srcOff, size *Word, src []byte) ([]byte, error) {
	do, err := toByteSize(destOff)
	if err != nil {
		return nil, err
	}
	sz, err := toByteSize(size)
	if err != nil {
		return nil, err
	}
	if sz == 0 {
		return nil, nil
	}
	buf := make([]byte, sz)
	if srcOff.IsUint64() {
		so := srcOff.Uint64()
		if so < uint64(len(src)) {
			copy(buf, src[so:])
		}
	}
	mem.StoreRange(do, buf)
	return nil, nil
}

// wordFromAddress left-zero-pads a 20-byte address into a 256-bit word
// (spec §6 "addresses occupy the low 20 bytes of a word").
func wordFromAddress(a types.Address) *Word {
	var buf [32]byte
	copy(buf[12:], a[:])
	return new(Word).SetBytes32(buf[:])
}

// addressFromWord truncates a word's low 20 bytes into an address,
// discarding any nonzero high bytes (spec §6, matching how the stack
// already stores full words for ADDRESS/CALLER/ORIGIN operands).
func addressFromWord(w *Word) types.Address {
	b := w.Bytes32()
	var a types.Address
	copy(a[:], b[12:])
	return a
}
