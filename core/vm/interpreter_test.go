package vm

import (
	"errors"
	"testing"

	"github.com/ferrovm/evmcore/core/types"
)

// fakeStateDB is a minimal in-memory StateDB for interpreter tests, kept
// local to avoid core/vm importing core/state (which itself imports
// core/vm for the Word type).
type fakeStateDB struct {
	balances map[types.Address]*Word
	code     map[types.Address][]byte
	storage  map[types.Address]map[types.Hash]types.Hash
	logs     []types.Log
}

func newFakeStateDB() *fakeStateDB {
	return &fakeStateDB{
		balances: make(map[types.Address]*Word),
		code:     make(map[types.Address][]byte),
		storage:  make(map[types.Address]map[types.Hash]types.Hash),
	}
}

func (s *fakeStateDB) GetBalance(addr types.Address) *Word {
	if b, ok := s.balances[addr]; ok {
		return new(Word).Set(b)
	}
	return NewWord()
}
func (s *fakeStateDB) AddBalance(addr types.Address, amount *Word) {
	b := s.GetBalance(addr)
	b.Add(b, amount)
	s.balances[addr] = b
}
func (s *fakeStateDB) SubBalance(addr types.Address, amount *Word) error {
	b := s.GetBalance(addr)
	if b.Lt(amount) {
		return errors.New("insufficient balance")
	}
	b.Sub(b, amount)
	s.balances[addr] = b
	return nil
}
func (s *fakeStateDB) GetNonce(addr types.Address) uint64     { return 0 }
func (s *fakeStateDB) SetNonce(addr types.Address, n uint64)  {}
func (s *fakeStateDB) GetCode(addr types.Address) []byte      { return s.code[addr] }
func (s *fakeStateDB) SetCode(addr types.Address, code []byte) { s.code[addr] = code }
func (s *fakeStateDB) GetCodeHash(addr types.Address) types.Hash {
	return types.Hash{}
}
func (s *fakeStateDB) GetCodeSize(addr types.Address) int { return len(s.code[addr]) }
func (s *fakeStateDB) GetState(addr types.Address, key types.Hash) types.Hash {
	if m, ok := s.storage[addr]; ok {
		return m[key]
	}
	return types.Hash{}
}
func (s *fakeStateDB) SetState(addr types.Address, key types.Hash, value types.Hash) {
	m, ok := s.storage[addr]
	if !ok {
		m = make(map[types.Hash]types.Hash)
		s.storage[addr] = m
	}
	if value.IsZero() {
		delete(m, key)
		return
	}
	m[key] = value
}
func (s *fakeStateDB) Snapshot() int         { return 0 }
func (s *fakeStateDB) RevertToSnapshot(int)  {}
func (s *fakeStateDB) AddLog(l types.Log)    { s.logs = append(s.logs, l) }
func (s *fakeStateDB) Logs() []types.Log     { return s.logs }

func newTestContext(code []byte) *ExecutionContext {
	return NewExecutionContext(
		types.Address{1}, types.Address{2}, types.Address{2},
		NewWord(), nil, code, BlockContext{}, NewWord(),
	)
}

func runCode(t *testing.T, code []byte, gasLimit uint64) (Result, error) {
	t.Helper()
	evm := NewEVM(newFakeStateDB())
	return evm.Run(newTestContext(code), gasLimit)
}

// PUSH1 2 PUSH1 3 ADD PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN
func TestRunAddAndReturn(t *testing.T) {
	code := []byte{
		byte(PUSH1), 2,
		byte(PUSH1), 3,
		byte(ADD),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	res, err := runCode(t, code, 100000)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false")
	}
	want := WordFromUint64(5).Bytes32()
	if len(res.ReturnData) != 32 {
		t.Fatalf("ReturnData len = %d, want 32", len(res.ReturnData))
	}
	for i := range want {
		if res.ReturnData[i] != want[i] {
			t.Fatalf("ReturnData = %x, want %x", res.ReturnData, want[:])
		}
	}
}

// DIV by zero returns 0, not an error (spec P6).
func TestRunDivByZero(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0,
		byte(PUSH1), 5,
		byte(DIV),
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	res, err := runCode(t, code, 100000)
	if err != nil || !res.Success {
		t.Fatalf("Run = %+v, %v", res, err)
	}
	for _, b := range res.ReturnData {
		if b != 0 {
			t.Fatalf("ReturnData = %x, want all zero", res.ReturnData)
		}
	}
}

// SUB wraps around modulo 2^256 rather than erroring on underflow.
func TestRunSubUnderflowWraps(t *testing.T) {
	code := []byte{
		byte(PUSH1), 1,
		byte(PUSH1), 0,
		byte(SUB), // 0 - 1 = 2^256 - 1
		byte(PUSH1), 0,
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	res, err := runCode(t, code, 100000)
	if err != nil || !res.Success {
		t.Fatalf("Run = %+v, %v", res, err)
	}
	for _, b := range res.ReturnData {
		if b != 0xff {
			t.Fatalf("ReturnData = %x, want all 0xff", res.ReturnData)
		}
	}
}

// PUSH2 with only one immediate byte left in the code fails InvalidJump
// rather than zero-padding (spec's explicit resolution of the Open
// Question on truncated PUSH immediates).
func TestRunPushOffEndOfCodeFails(t *testing.T) {
	code := []byte{byte(PUSH2), 0xaa}
	res, err := runCode(t, code, 100000)
	if err == nil {
		t.Fatalf("Run succeeded, want InvalidJump")
	}
	if !errors.Is(err, ErrInvalidJump) {
		t.Errorf("err = %v, want ErrInvalidJump", err)
	}
	if res.Success {
		t.Errorf("Success = true, want false")
	}
	if res.GasUsed != 100000 {
		t.Errorf("GasUsed = %d, want all gas burned (100000)", res.GasUsed)
	}
}

// JUMP to a byte that is inside a PUSH32 immediate fails InvalidJump
// even though that byte's value happens to equal JUMPDEST (0x5b).
func TestRunJumpIntoPushImmediateFails(t *testing.T) {
	code := []byte{
		byte(PUSH1), 4, // target = 4, the first immediate byte of the PUSH32 below
		byte(JUMP),
		byte(PUSH32), 0x5b, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	_, err := runCode(t, code, 100000)
	if !errors.Is(err, ErrInvalidJump) {
		t.Errorf("err = %v, want ErrInvalidJump", err)
	}
}

// REVERT surfaces its data and preserves remaining gas rather than
// burning it (spec §7 "REVERT preserves remaining gas").
func TestRunRevertPreservesGas(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0xff,
		byte(PUSH1), 0,
		byte(MSTORE8),
		byte(PUSH1), 1,
		byte(PUSH1), 0,
		byte(REVERT),
	}
	res, err := runCode(t, code, 100000)
	if !errors.Is(err, ErrExecutionReverted) {
		t.Fatalf("err = %v, want ErrExecutionReverted", err)
	}
	if res.Success {
		t.Errorf("Success = true, want false")
	}
	if len(res.ReturnData) != 1 || res.ReturnData[0] != 0xff {
		t.Errorf("ReturnData = %x, want [0xff]", res.ReturnData)
	}
	if res.GasUsed >= 100000 {
		t.Errorf("GasUsed = %d, want less than the full limit (gas preserved)", res.GasUsed)
	}
}

// A static call rejects SSTORE before any mutation happens (spec I6).
func TestRunStaticCallRejectsSstore(t *testing.T) {
	code := []byte{
		byte(PUSH1), 1,
		byte(PUSH1), 0,
		byte(SSTORE),
	}
	evm := NewEVM(newFakeStateDB())
	ctx := newTestContext(code)
	ctx.IsStatic = true
	res, err := evm.Run(ctx, 100000)
	if !errors.Is(err, ErrStaticCallViolation) {
		t.Fatalf("err = %v, want ErrStaticCallViolation", err)
	}
	if res.Success {
		t.Errorf("Success = true, want false")
	}
}

// ADDMOD carries enough intermediate precision that (MAX+MAX) mod 7
// does not silently overflow modulo 2^256 before the modulo is taken
// (spec P7, scenario 3).
func TestRunAddmodOverflowingIntermediate(t *testing.T) {
	code := []byte{
		byte(PUSH1), 7,
		byte(PUSH32),
	}
	maxWord := make([]byte, 32)
	for i := range maxWord {
		maxWord[i] = 0xff
	}
	code = append(code, maxWord...)
	code = append(code, byte(PUSH32))
	code = append(code, maxWord...)
	code = append(code, byte(ADDMOD))
	code = append(code, byte(PUSH1), 0, byte(MSTORE), byte(PUSH1), 32, byte(PUSH1), 0, byte(RETURN))

	res, err := runCode(t, code, 1000000)
	if err != nil || !res.Success {
		t.Fatalf("Run = %+v, %v", res, err)
	}
	// (MAX + MAX) mod 7: 2^256 = 2 mod 7, so MAX = 2^256-1 = 1 mod 7 and
	// (1+1) mod 7 = 2. Truncating the sum to 2^256 first would give
	// (2^256-2) mod 7 = 0 instead.
	got := new(Word).SetBytes32(res.ReturnData)
	if got.Uint64() != 2 {
		t.Errorf("ADDMOD result = %s, want 2", got.String())
	}
}
