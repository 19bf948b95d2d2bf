package vm

// Gas cost constants, grounded on the teacher's gas tier tables
// (pkg/core/vm/gas.go) but trimmed to this interpreter's flat,
// single-fork pricing (spec §4.4): no EIP-2929 cold/warm access lists,
// no Verkle witness costs, no per-hardfork variants.
const (
	GasZero    uint64 = 0
	GasBase    uint64 = 2
	GasVerylow uint64 = 3
	GasLow     uint64 = 5
	GasMid     uint64 = 8
	GasHigh    uint64 = 10
	GasExt     uint64 = 20

	GasSload  uint64 = 200   // flat SLOAD cost (spec §4.4)
	GasSstore uint64 = 20000 // flat SSTORE cost charged before the write (spec §4.4)

	// SstoreRefund is credited when an SSTORE transitions a slot from
	// non-zero to zero (spec §4.4 "SSTORE ... refund 15000 when the slot
	// becomes zero for a slot that was non-zero").
	SstoreRefund uint64 = 15000

	GasJumpdest uint64 = 1
	GasMemory   uint64 = 3 // per-word multiplier folded into Memory.ExpansionCost

	GasKeccak256     uint64 = 30
	GasKeccak256Word uint64 = 6

	GasLog      uint64 = 375
	GasLogTopic uint64 = 375
	GasLogData  uint64 = 8

	GasExpByte uint64 = 50 // per significant byte of the EXP exponent
)

// GasMeter tracks gas consumption and refund accrual for a single
// execution frame (spec §4.5). It never goes negative: Consume fails
// with an *OutOfGasError rather than allowing remaining to underflow.
//
// Grounded on the teacher's Contract.UseGas (pkg/core/vm/contract.go)
// for the consume-or-fail pattern, and StateDB.AddRefund/GetRefund for
// refund accrual, generalized into a single meter-then-mutate component
// that call sites consult before touching state (spec P3: "meter then
// mutate").
type GasMeter struct {
	initial   uint64
	remaining uint64
	refunds   uint64
}

// NewGasMeter returns a meter starting with limit gas available.
func NewGasMeter(limit uint64) *GasMeter {
	return &GasMeter{initial: limit, remaining: limit}
}

// Remaining reports the gas not yet consumed.
func (g *GasMeter) Remaining() uint64 {
	return g.remaining
}

// Consume charges cost gas. It fails with an *OutOfGasError carrying the
// gas that remained at the moment of failure, and leaves remaining
// unchanged on failure (spec §4.5, §7).
func (g *GasMeter) Consume(cost uint64) error {
	if cost > g.remaining {
		return &OutOfGasError{Remaining: g.remaining}
	}
	g.remaining -= cost
	return nil
}

// AddRefund accrues a refund credit (e.g. from an SSTORE clearing a
// slot). The pool saturates at the maximum uint64 rather than wrapping.
func (g *GasMeter) AddRefund(amount uint64) {
	if g.refunds+amount < g.refunds {
		g.refunds = ^uint64(0)
		return
	}
	g.refunds += amount
}

// SubRefund removes a previously accrued refund credit (e.g. undoing a
// clear within the same execution). It saturates at zero rather than
// underflowing.
func (g *GasMeter) SubRefund(amount uint64) {
	if amount > g.refunds {
		g.refunds = 0
		return
	}
	g.refunds -= amount
}

// Used reports the gas consumed so far, before any refund is applied.
func (g *GasMeter) Used() uint64 {
	return g.initial - g.remaining
}

// Finalize returns the gas actually spent after applying the refund cap
// (spec §4.5: "the refund pool... is capped at half of the gas used by
// the frame"). This is computed once, at frame completion, never
// mid-execution.
func (g *GasMeter) Finalize() uint64 {
	used := g.Used()
	maxRefund := used / 2
	refund := g.refunds
	if refund > maxRefund {
		refund = maxRefund
	}
	return used - refund
}

// gasMeterSnapshot captures the mutable fields of a GasMeter so a test
// can assert a failed sub-step left consumption untouched.
type gasMeterSnapshot struct {
	remaining uint64
	refunds   uint64
}

// Snapshot records the meter's current remaining/refund state (spec
// "SUPPLEMENTED FEATURES: GasMeter.Snapshot/Restore for tests"), a
// narrower counterpart to State.Snapshot for gas accounting alone.
func (g *GasMeter) Snapshot() gasMeterSnapshot {
	return gasMeterSnapshot{remaining: g.remaining, refunds: g.refunds}
}

// Restore resets the meter to a previously captured snapshot.
func (g *GasMeter) Restore(s gasMeterSnapshot) {
	g.remaining = s.remaining
	g.refunds = s.refunds
}
