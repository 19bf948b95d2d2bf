package vm

import "github.com/ferrovm/evmcore/core/types"

// executionFunc is the signature every opcode handler implements.
// Grounded on the teacher's executionFunc (instructions.go), with gas
// broken out as its own parameter since this spec's GasMeter is a
// standalone component rather than a field on the code-and-address
// bundle (spec §4.5).
type executionFunc func(pc *uint64, evm *EVM, ctx *ExecutionContext, gas *GasMeter, mem *Memory, stack *Stack) ([]byte, error)

// dynamicGasFunc computes an opcode's variable gas cost beyond its
// constantGas, given the already-resolved memory size it will touch.
type dynamicGasFunc func(evm *EVM, ctx *ExecutionContext, stack *Stack, mem *Memory, memorySize uint64) (uint64, error)

// memorySizeFunc reports the highest memory offset (in bytes) an
// operation's stack operands require, before word-alignment. Grounded
// on the teacher's memoryMload/memoryMstore/... family (jump_table.go).
type memorySizeFunc func(stack *Stack) (uint64, error)

// operation is one opcode's complete execution metadata: how to run it,
// what it costs, and the stack/memory shape the dispatcher must enforce
// before calling execute (spec §4.6).
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  dynamicGasFunc
	minStack    int
	maxStack    int
	memorySize  memorySizeFunc
	halts       bool
	jumps       bool
	writes      bool
}

// JumpTable maps every opcode byte to its operation, nil for undefined
// bytes (spec §6 "Unlisted bytes are invalid opcodes").
type JumpTable [256]*operation

// toByteSize converts a stack word expected to be a byte offset/length
// into a uint64, failing with errGasUintOverflow if it does not fit —
// no real program can afford the gas such a value would cost, so this
// is treated exactly like running out of gas (spec §9).
func toByteSize(w *Word) (uint64, error) {
	if !w.IsUint64() {
		return 0, errGasUintOverflow
	}
	return w.Uint64(), nil
}

// memRange resolves a (offset, size) operand pair into the single
// highest byte index they touch, offset+size, with overflow checking.
func memRange(offset, size *Word) (uint64, error) {
	if size.IsZero() {
		return 0, nil
	}
	off, err := toByteSize(offset)
	if err != nil {
		return 0, err
	}
	sz, err := toByteSize(size)
	if err != nil {
		return 0, err
	}
	sum := off + sz
	if sum < off {
		return 0, errGasUintOverflow
	}
	return sum, nil
}

func memMload(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	o, err := toByteSize(off)
	if err != nil {
		return 0, err
	}
	return o + 32, nil
}

func memMstore(stack *Stack) (uint64, error) {
	return memMload(stack)
}

func memMstore8(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	o, err := toByteSize(off)
	if err != nil {
		return 0, err
	}
	return o + 1, nil
}

func memReturnRevert(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	size, _ := stack.Peek(1)
	return memRange(off, size)
}

func memKeccak256(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	size, _ := stack.Peek(1)
	return memRange(off, size)
}

func memCalldataCopy(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	size, _ := stack.Peek(2)
	return memRange(off, size)
}

func memCodeCopy(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	size, _ := stack.Peek(2)
	return memRange(off, size)
}

func memExtCodeCopy(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(1)
	size, _ := stack.Peek(3)
	return memRange(off, size)
}

func memReturnDataCopy(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	size, _ := stack.Peek(2)
	return memRange(off, size)
}

func memLog(stack *Stack) (uint64, error) {
	off, _ := stack.Peek(0)
	size, _ := stack.Peek(1)
	return memRange(off, size)
}

// gasMemExpansion charges for any memory growth memorySize requires,
// via Memory.ExpansionCost (spec §4.3), grounded on the teacher's
// gasMemExpansion (jump_table.go).
func gasMemExpansion(evm *EVM, ctx *ExecutionContext, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if memorySize == 0 {
		return 0, nil
	}
	return mem.ExpansionCost(0, memorySize), nil
}

// gasExp charges GasExpByte per significant byte of the exponent on top
// of EXP's constant cost (spec §4.1 "EXP ... gas cost formula").
func gasExp(evm *EVM, ctx *ExecutionContext, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	exponent, _ := stack.Peek(1)
	byteLen := (exponent.BitLen() + 7) / 8
	return uint64(byteLen) * GasExpByte, nil
}

// gasKeccak256 charges GasKeccak256Word per 32-byte word of input on top
// of KECCAK256's constant cost (spec §6).
func gasKeccak256(evm *EVM, ctx *ExecutionContext, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	size, _ := stack.Peek(1)
	sz, err := toByteSize(size)
	if err != nil {
		return 0, err
	}
	words := (sz + 31) / 32
	expansion, err := gasMemExpansion(evm, ctx, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	return words*GasKeccak256Word + expansion, nil
}

// gasLog charges the LOG0..LOG4 formula: 375*(topics+1) + 8*len, plus
// memory expansion (spec §4.6 "LOG0..LOG4 ... charge 375*(k+1) +
// 8*len + memory_expansion").
func gasLog(topics int) dynamicGasFunc {
	return func(evm *EVM, ctx *ExecutionContext, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		size, _ := stack.Peek(1)
		sz, err := toByteSize(size)
		if err != nil {
			return 0, err
		}
		expansion, err := gasMemExpansion(evm, ctx, stack, mem, memorySize)
		if err != nil {
			return 0, err
		}
		return GasLogTopic*uint64(topics) + GasLogData*sz + expansion, nil
	}
}

// alignWords rounds a byte count up to the next multiple of 32, as the
// dispatcher must before resizing memory (spec §4.3).
func alignWords(size uint64) uint64 {
	return (size + 31) / 32 * 32
}

// gasSstore implements the full four-case SSTORE price (spec §4.4): a
// slot already zero that stays zero costs nothing, every other
// transition costs GasSstore. It peeks rather than pops so the stack is
// untouched if a later check in the dispatcher still fails the step.
func gasSstore(evm *EVM, ctx *ExecutionContext, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc, _ := stack.Peek(0)
	val, _ := stack.Peek(1)

	key := types.Hash(loc.Bytes32())
	newVal := types.Hash(val.Bytes32())
	current := evm.StateDB.GetState(ctx.Address, key)

	if current == (types.Hash{}) && newVal == (types.Hash{}) {
		return GasZero, nil
	}
	return GasSstore, nil
}

// NewJumpTable builds the single jump table this core uses (spec §1:
// no fork selection, one fixed opcode set), grounded on the teacher's
// NewFrontierJumpTable but extended with every tier the spec's opcode
// table (§6) lists. Unlisted bytes are left nil, which the dispatcher
// treats as InvalidOpcode.
func NewJumpTable() JumpTable {
	var tbl JumpTable

	tbl[STOP] = &operation{execute: opStop, constantGas: GasZero, minStack: 0, maxStack: 1024, halts: true}
	tbl[ADD] = &operation{execute: opAdd, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[MUL] = &operation{execute: opMul, constantGas: GasLow, minStack: 2, maxStack: 1024}
	tbl[SUB] = &operation{execute: opSub, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[DIV] = &operation{execute: opDiv, constantGas: GasLow, minStack: 2, maxStack: 1024}
	tbl[SDIV] = &operation{execute: opSdiv, constantGas: GasLow, minStack: 2, maxStack: 1024}
	tbl[MOD] = &operation{execute: opMod, constantGas: GasLow, minStack: 2, maxStack: 1024}
	tbl[SMOD] = &operation{execute: opSmod, constantGas: GasLow, minStack: 2, maxStack: 1024}
	tbl[ADDMOD] = &operation{execute: opAddmod, constantGas: GasMid, minStack: 3, maxStack: 1024}
	tbl[MULMOD] = &operation{execute: opMulmod, constantGas: GasMid, minStack: 3, maxStack: 1024}
	tbl[EXP] = &operation{execute: opExp, constantGas: GasHigh, dynamicGas: gasExp, minStack: 2, maxStack: 1024}
	tbl[SIGNEXTEND] = &operation{execute: opSignExtend, constantGas: GasLow, minStack: 2, maxStack: 1024}

	tbl[LT] = &operation{execute: opLt, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[GT] = &operation{execute: opGt, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[SLT] = &operation{execute: opSlt, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[SGT] = &operation{execute: opSgt, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[EQ] = &operation{execute: opEq, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[ISZERO] = &operation{execute: opIsZero, constantGas: GasVerylow, minStack: 1, maxStack: 1024}
	tbl[AND] = &operation{execute: opAnd, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[OR] = &operation{execute: opOr, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[XOR] = &operation{execute: opXor, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[NOT] = &operation{execute: opNot, constantGas: GasVerylow, minStack: 1, maxStack: 1024}
	tbl[BYTE] = &operation{execute: opByte, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[SHL] = &operation{execute: opShl, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[SHR] = &operation{execute: opShr, constantGas: GasVerylow, minStack: 2, maxStack: 1024}
	tbl[SAR] = &operation{execute: opSar, constantGas: GasVerylow, minStack: 2, maxStack: 1024}

	tbl[KECCAK256] = &operation{execute: opKeccak256, constantGas: GasKeccak256, dynamicGas: gasKeccak256, memorySize: memKeccak256, minStack: 2, maxStack: 1024}

	tbl[ADDRESS] = &operation{execute: opAddress, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[BALANCE] = &operation{execute: opBalance, constantGas: GasExt, minStack: 1, maxStack: 1024}
	tbl[ORIGIN] = &operation{execute: opOrigin, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[CALLER] = &operation{execute: opCaller, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[CALLVALUE] = &operation{execute: opCallvalue, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[CALLDATALOAD] = &operation{execute: opCalldataload, constantGas: GasVerylow, minStack: 1, maxStack: 1024}
	tbl[CALLDATASIZE] = &operation{execute: opCalldatasize, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[CALLDATACOPY] = &operation{execute: opCalldatacopy, constantGas: GasVerylow, dynamicGas: gasMemExpansion, memorySize: memCalldataCopy, minStack: 3, maxStack: 1024}
	tbl[CODESIZE] = &operation{execute: opCodesize, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[CODECOPY] = &operation{execute: opCodecopy, constantGas: GasVerylow, dynamicGas: gasMemExpansion, memorySize: memCodeCopy, minStack: 3, maxStack: 1024}
	tbl[GASPRICE] = &operation{execute: opGasprice, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[EXTCODESIZE] = &operation{execute: opExtcodesize, constantGas: GasExt, minStack: 1, maxStack: 1024}
	tbl[EXTCODECOPY] = &operation{execute: opExtcodecopy, constantGas: GasExt, dynamicGas: gasMemExpansion, memorySize: memExtCodeCopy, minStack: 4, maxStack: 1024}
	tbl[RETURNDATASIZE] = &operation{execute: opReturndatasize, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[RETURNDATACOPY] = &operation{execute: opReturndatacopy, constantGas: GasVerylow, dynamicGas: gasMemExpansion, memorySize: memReturnDataCopy, minStack: 3, maxStack: 1024}
	tbl[EXTCODEHASH] = &operation{execute: opExtcodehash, constantGas: GasExt, minStack: 1, maxStack: 1024}

	tbl[BLOCKHASH] = &operation{execute: opBlockhash, constantGas: GasExt, minStack: 1, maxStack: 1024}
	tbl[COINBASE] = &operation{execute: opCoinbase, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[TIMESTAMP] = &operation{execute: opTimestamp, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[NUMBER] = &operation{execute: opNumber, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[DIFFICULTY] = &operation{execute: opDifficulty, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[GASLIMIT] = &operation{execute: opGaslimit, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[CHAINID] = &operation{execute: opChainid, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[SELFBALANCE] = &operation{execute: opSelfbalance, constantGas: GasLow, minStack: 0, maxStack: 1023}
	tbl[BASEFEE] = &operation{execute: opBasefee, constantGas: GasBase, minStack: 0, maxStack: 1023}

	tbl[POP] = &operation{execute: opPop, constantGas: GasBase, minStack: 1, maxStack: 1024}
	tbl[MLOAD] = &operation{execute: opMload, constantGas: GasVerylow, dynamicGas: gasMemExpansion, memorySize: memMload, minStack: 1, maxStack: 1024}
	tbl[MSTORE] = &operation{execute: opMstore, constantGas: GasVerylow, dynamicGas: gasMemExpansion, memorySize: memMstore, minStack: 2, maxStack: 1024}
	tbl[MSTORE8] = &operation{execute: opMstore8, constantGas: GasVerylow, dynamicGas: gasMemExpansion, memorySize: memMstore8, minStack: 2, maxStack: 1024}
	tbl[SLOAD] = &operation{execute: opSload, constantGas: GasSload, minStack: 1, maxStack: 1024}
	tbl[SSTORE] = &operation{execute: opSstore, constantGas: GasZero, dynamicGas: gasSstore, minStack: 2, maxStack: 1024, writes: true}
	tbl[JUMP] = &operation{execute: opJump, constantGas: GasMid, minStack: 1, maxStack: 1024, jumps: true}
	tbl[JUMPI] = &operation{execute: opJumpi, constantGas: GasHigh, minStack: 2, maxStack: 1024, jumps: true}
	tbl[PC] = &operation{execute: opPc, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[MSIZE] = &operation{execute: opMsize, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[GAS] = &operation{execute: opGas, constantGas: GasBase, minStack: 0, maxStack: 1023}
	tbl[JUMPDEST] = &operation{execute: opJumpdest, constantGas: GasJumpdest, minStack: 0, maxStack: 1024}

	tbl[PUSH1] = &operation{execute: makePush(1), constantGas: GasVerylow, minStack: 0, maxStack: 1023}
	for i := 2; i <= 32; i++ {
		tbl[PUSH1+OpCode(i-1)] = &operation{execute: makePush(i), constantGas: GasVerylow, minStack: 0, maxStack: 1023}
	}
	for i := 1; i <= 16; i++ {
		tbl[DUP1+OpCode(i-1)] = &operation{execute: makeDup(i), constantGas: GasVerylow, minStack: i, maxStack: 1023}
	}
	for i := 1; i <= 16; i++ {
		tbl[SWAP1+OpCode(i-1)] = &operation{execute: makeSwap(i), constantGas: GasVerylow, minStack: i + 1, maxStack: 1024}
	}
	for i := 0; i <= 4; i++ {
		n := i
		tbl[LOG0+OpCode(i)] = &operation{
			execute:     makeLog(n),
			constantGas: GasLog,
			dynamicGas:  gasLog(n),
			memorySize:  memLog,
			minStack:    2 + n,
			maxStack:    1024,
			writes:      true,
		}
	}

	tbl[RETURN] = &operation{execute: opReturn, constantGas: GasZero, dynamicGas: gasMemExpansion, memorySize: memReturnRevert, minStack: 2, maxStack: 1024, halts: true}
	tbl[REVERT] = &operation{execute: opRevert, constantGas: GasZero, dynamicGas: gasMemExpansion, memorySize: memReturnRevert, minStack: 2, maxStack: 1024, halts: true}
	tbl[INVALID] = &operation{execute: opInvalid, constantGas: GasZero, minStack: 0, maxStack: 1024, halts: true}

	return tbl
}
