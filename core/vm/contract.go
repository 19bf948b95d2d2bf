package vm

import "github.com/ferrovm/evmcore/core/types"

// BlockContext carries the block-level facts an executing frame may read
// (spec §6 "Block context input"). It never changes during a run.
type BlockContext struct {
	Number     uint64
	Timestamp  uint64
	Difficulty *Word // PREVRANDAO post-merge; kept under the legacy name
	GasLimit   uint64
	Coinbase   types.Address
	ChainID    uint64
	BaseFee    *Word // nil when the caller has no EIP-1559 base fee to report
}

// ExecutionContext bundles the read-only inputs a single frame executes
// against (spec §6 "Execution context input"). Grounded on the original
// Rust implementation's ExecutionContext (original_source/src/evm/
// context.rs): caller/origin/address/value/calldata/code/block/gas price/
// is_static, plus the jumpdest analysis the teacher's Contract caches
// lazily on first use.
type ExecutionContext struct {
	Address  types.Address
	Caller   types.Address
	Origin   types.Address
	Value    *Word
	CallData []byte
	Code     []byte
	Block    BlockContext
	GasPrice *Word
	IsStatic bool

	// ReturnData is the output of the most recently completed sub-call
	// in this frame (spec §6 RETURNDATASIZE/RETURNDATACOPY). Since
	// contract-to-contract CALL/CREATE dispatch is out of scope for
	// this core, no handler ever populates it; it stays nil and the two
	// opcodes behave as if no sub-call had ever run.
	ReturnData []byte

	jumpdests map[uint64]bool // lazily computed, see analyzeJumpdests
}

// NewExecutionContext returns a frame context for a non-static call.
func NewExecutionContext(addr, caller, origin types.Address, value *Word, calldata, code []byte, block BlockContext, gasPrice *Word) *ExecutionContext {
	return &ExecutionContext{
		Address:  addr,
		Caller:   caller,
		Origin:   origin,
		Value:    value,
		CallData: calldata,
		Code:     code,
		Block:    block,
		GasPrice: gasPrice,
	}
}

// GetOp returns the opcode at position n in the code, or STOP if n is
// beyond the end of the code (spec §9: out-of-bounds reads of code are
// implicitly zero/STOP, matching the teacher's Contract.GetOp).
func (c *ExecutionContext) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// CodeSize returns the length of the executing code.
func (c *ExecutionContext) CodeSize() uint64 {
	return uint64(len(c.Code))
}

// CallDataSize returns the length of the call data.
func (c *ExecutionContext) CallDataSize() uint64 {
	return uint64(len(c.CallData))
}

// validJumpdest reports whether dest is both within code bounds and a
// JUMPDEST byte that was not skipped as a PUSH immediate during analysis
// (spec §4.6 "JUMP/JUMPI ... fails InvalidJump unless the target byte in
// code is a JUMPDEST and the target is not inside a PUSH immediate").
func (c *ExecutionContext) validJumpdest(dest *Word) bool {
	if !dest.IsUint64() {
		return false
	}
	udest := dest.Uint64()
	if udest >= uint64(len(c.Code)) {
		return false
	}
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	return c.isCode(udest)
}

// isCode reports whether pos is an opcode byte, as opposed to a PUSH
// immediate, per the jumpdest analysis.
func (c *ExecutionContext) isCode(pos uint64) bool {
	if c.jumpdests == nil {
		c.analyzeJumpdests()
	}
	return c.jumpdests[pos]
}

// analyzeJumpdests scans the code once, recording every JUMPDEST byte
// that is not itself inside a PUSH's immediate data (spec §9 "Jumpdest
// analysis"), grounded on the teacher's Contract.analyzeJumpdests.
func (c *ExecutionContext) analyzeJumpdests() {
	c.jumpdests = make(map[uint64]bool)
	for i := uint64(0); i < uint64(len(c.Code)); i++ {
		op := OpCode(c.Code[i])
		if op == JUMPDEST {
			c.jumpdests[i] = true
		}
		if op.IsPush() {
			i += uint64(op.PushSize())
		}
	}
}
