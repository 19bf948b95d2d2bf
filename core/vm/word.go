package vm

import "github.com/holiman/uint256"

// Word is the universal 256-bit value type used by the stack, memory and
// storage. It is backed by github.com/holiman/uint256.Int, the fixed-width
// integer type go-ethereum's own interpreter is built on: Add/Sub/Mul
// already wrap modulo 2^256, Div/Mod already return zero for a zero
// divisor, AddMod/MulMod already carry enough internal precision that
// overflow in the intermediate sum/product cannot corrupt the result, and
// Sign/SDiv/SMod/Byte/SRsh already treat bit 255 as the two's-complement
// sign bit the way the signed opcodes require (spec §4.1, P5-P7).
type Word = uint256.Int

// NewWord returns a new zero-valued Word.
func NewWord() *Word { return new(uint256.Int) }

// WordFromUint64 returns a Word set to v.
func WordFromUint64(v uint64) *Word { return new(uint256.Int).SetUint64(v) }

// WordFromInt64 is a convenience constructor for tests that need a signed
// (two's-complement) literal.
func WordFromInt64(v int64) *Word {
	w := new(uint256.Int)
	if v < 0 {
		w.SetUint64(uint64(-v))
		w.Neg(w)
	} else {
		w.SetUint64(uint64(v))
	}
	return w
}
