package vm

import (
	"errors"

	"github.com/ferrovm/evmcore/log"
)

// EVM is the execution environment a single frame runs against: a
// state database collaborator and the fixed jump table this core
// dispatches through (spec §1 "no fork selection, one fixed opcode
// set"). Grounded on the teacher's EVM struct (interpreter.go), trimmed
// of everything that exists only to support nested CALL/CREATE
// dispatch (depth, precompiles, Config.MaxCallDepth) since that is out
// of scope here.
type EVM struct {
	StateDB   StateDB
	jumpTable JumpTable

	// Logger, if non-nil, receives one Step call per dispatched opcode
	// and one Fault call if the frame aborts with an error (spec §6:
	// "EVM accepts an optional log.Logger ... emits DEBUG-level step
	// traces"). Left nil, tracing costs nothing beyond the nil check.
	Logger *log.Logger
}

// NewEVM returns an EVM wired to db and the single jump table this core
// exposes. Step tracing is off until the caller sets evm.Logger.
func NewEVM(db StateDB) *EVM {
	return &EVM{StateDB: db, jumpTable: NewJumpTable()}
}

// Run executes ctx.Code against ctx and gasLimit to completion,
// dispatching one opcode at a time: validate stack shape and the
// static-call guard, charge constant then dynamic gas, resize memory,
// execute, and advance pc — grounded on the teacher's EVM.Run loop but
// without the nested Call/CallCode/DelegateCall/StaticCall dispatch,
// which is out of scope for this core (spec §1).
func (evm *EVM) Run(ctx *ExecutionContext, gasLimit uint64) (Result, error) {
	var (
		pc    uint64
		stack = NewStack()
		mem   = NewMemory()
		gas   = NewGasMeter(gasLimit)
	)

	for {
		op := ctx.GetOp(pc)
		oper := evm.jumpTable[op]
		if oper == nil || oper.execute == nil {
			return evm.fail(gas, pc, op, &InvalidOpcodeError{Opcode: byte(op)})
		}

		sLen := stack.Len()
		if sLen < oper.minStack {
			return evm.fail(gas, pc, op, ErrStackUnderflow)
		}
		if sLen > oper.maxStack {
			return evm.fail(gas, pc, op, ErrStackOverflow)
		}

		// Static-call guard (spec I6): a state-mutating opcode must fail
		// before it touches anything when the frame is read-only.
		if oper.writes && ctx.IsStatic {
			return evm.fail(gas, pc, op, ErrStaticCallViolation)
		}

		if oper.constantGas > 0 {
			if err := gas.Consume(oper.constantGas); err != nil {
				return evm.fail(gas, pc, op, err)
			}
		}

		var memorySize uint64
		if oper.memorySize != nil {
			size, err := oper.memorySize(stack)
			if err != nil {
				return evm.fail(gas, pc, op, err)
			}
			memorySize = alignWords(size)
		}

		if oper.dynamicGas != nil {
			cost, err := oper.dynamicGas(evm, ctx, stack, mem, memorySize)
			if err != nil {
				return evm.fail(gas, pc, op, err)
			}
			if err := gas.Consume(cost); err != nil {
				return evm.fail(gas, pc, op, err)
			}
		}

		if memorySize > 0 {
			mem.Resize(memorySize)
		}

		if evm.Logger != nil {
			evm.Logger.Step(pc, op.String(), gas.Remaining(), stack.Len(), mem.Len())
		}

		ret, err := oper.execute(&pc, evm, ctx, gas, mem, stack)

		if err != nil {
			var revert *revertError
			if errors.As(err, &revert) {
				return Result{Success: false, GasUsed: gas.Finalize(), ReturnData: revert.data, Logs: evm.StateDB.Logs()}, err
			}
			var halt *haltError
			if errors.As(err, &halt) {
				return Result{Success: true, GasUsed: gas.Finalize(), ReturnData: halt.returnData, Logs: evm.StateDB.Logs()}, nil
			}
			return evm.fail(gas, pc, op, err)
		}

		if oper.halts {
			return Result{Success: true, GasUsed: gas.Finalize(), ReturnData: ret, Logs: evm.StateDB.Logs()}, nil
		}
		if oper.jumps {
			continue
		}
		pc++
	}
}

// fail burns all remaining gas (spec §7 "burn on failure"), logs the
// fault if a Logger is attached, and reports a failed Result alongside
// the triggering error.
func (evm *EVM) fail(gas *GasMeter, pc uint64, op OpCode, err error) (Result, error) {
	if evm.Logger != nil {
		evm.Logger.Fault(pc, op.String(), err)
	}
	gas.remaining = 0
	return Result{Success: false, GasUsed: gas.Finalize(), Logs: evm.StateDB.Logs()}, err
}
