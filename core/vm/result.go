package vm

import "github.com/ferrovm/evmcore/core/types"

// Result is what the embedder sees at the end of a frame (spec §6
// "Execution result"), grounded on the teacher's Call/Run convention
// (`ret []byte, err error` plus a `gasLeft uint64` at the call site) but
// flattened into one struct since this core has no nested Call to
// unwind across.
type Result struct {
	Success    bool
	GasUsed    uint64
	ReturnData []byte
	Logs       []types.Log
}
