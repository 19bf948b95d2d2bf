package vm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error taxonomy in spec §7. Handlers return these
// (or a wrapping type below) and the dispatcher's Run loop translates them
// into a Result with Success=false, burning all remaining gas except for
// ExecutionReverted.
var (
	ErrStackOverflow       = errors.New("evm: stack overflow")
	ErrStackUnderflow      = errors.New("evm: stack underflow")
	ErrInvalidOpCode       = errors.New("evm: invalid opcode")
	ErrStaticCallViolation = errors.New("evm: state-modifying opcode in a static call")
	ErrExecutionReverted   = errors.New("evm: execution reverted")

	// errGasUintOverflow marks a memory offset/size operand too large to
	// represent as a uint64 byte count. Real bytecode can never afford
	// the gas such an offset would cost, so the dispatcher treats it the
	// same as running out of gas.
	errGasUintOverflow = errors.New("evm: gas uint64 overflow")
)

// OutOfGasError carries the gas that remained at the moment consumption
// failed (spec §7: "OutOfGas — carries the remaining gas at the moment of
// failure").
type OutOfGasError struct {
	Remaining uint64
}

func (e *OutOfGasError) Error() string {
	return fmt.Sprintf("evm: out of gas (remaining %d)", e.Remaining)
}

// Is allows errors.Is(err, ErrOutOfGas) to match any *OutOfGasError.
func (e *OutOfGasError) Is(target error) bool {
	return target == ErrOutOfGas
}

// ErrOutOfGas is the comparison sentinel for OutOfGasError; use
// errors.Is(err, ErrOutOfGas) rather than a type assertion.
var ErrOutOfGas = errors.New("evm: out of gas")

// InvalidJumpError names the destination that failed jumpdest validation
// (spec §7: "InvalidJump(target)"). It is also returned when a PUSHn's
// immediate bytes run past the end of code (Target is the offset of the
// first immediate byte) and when RETURNDATACOPY reads past the end of the
// return data (Target is the end offset of the requested range).
type InvalidJumpError struct {
	Target uint64
}

func (e *InvalidJumpError) Error() string {
	return fmt.Sprintf("evm: invalid jump destination %d", e.Target)
}

func (e *InvalidJumpError) Is(target error) bool {
	return target == ErrInvalidJump
}

// ErrInvalidJump is the comparison sentinel for InvalidJumpError.
var ErrInvalidJump = errors.New("evm: invalid jump destination")

// InvalidOpcodeError names the undefined byte encountered by the
// dispatcher (spec §7: "InvalidOpcode(byte)").
type InvalidOpcodeError struct {
	Opcode byte
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("evm: invalid opcode 0x%02x", e.Opcode)
}

func (e *InvalidOpcodeError) Is(target error) bool {
	return target == ErrInvalidOpCode
}
