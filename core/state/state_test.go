package state

import (
	"errors"
	"testing"

	"github.com/ferrovm/evmcore/core/types"
	"github.com/ferrovm/evmcore/core/vm"
)

func addr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func TestGetBalanceImplicitlyCreatesAccount(t *testing.T) {
	s := New()
	bal := s.GetBalance(addr(1))
	if !bal.IsZero() {
		t.Errorf("GetBalance on untouched account = %v, want zero", bal)
	}
}

func TestAddSubBalance(t *testing.T) {
	s := New()
	a := addr(1)
	s.AddBalance(a, vm.WordFromUint64(100))
	if err := s.SubBalance(a, vm.WordFromUint64(40)); err != nil {
		t.Fatalf("SubBalance: %v", err)
	}
	if s.GetBalance(a).Uint64() != 60 {
		t.Errorf("GetBalance = %d, want 60", s.GetBalance(a).Uint64())
	}
}

func TestSubBalanceInsufficientFunds(t *testing.T) {
	s := New()
	a := addr(1)
	s.AddBalance(a, vm.WordFromUint64(10))
	err := s.SubBalance(a, vm.WordFromUint64(20))
	if err == nil {
		t.Fatal("SubBalance over balance: want error")
	}
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("errors.Is(err, ErrInsufficientBalance) = false")
	}
	if s.GetBalance(a).Uint64() != 10 {
		t.Errorf("balance mutated on failure: %d, want 10", s.GetBalance(a).Uint64())
	}
}

func TestNonce(t *testing.T) {
	s := New()
	a := addr(1)
	if s.GetNonce(a) != 0 {
		t.Errorf("GetNonce on untouched account = %d, want 0", s.GetNonce(a))
	}
	s.SetNonce(a, 7)
	if s.GetNonce(a) != 7 {
		t.Errorf("GetNonce = %d, want 7", s.GetNonce(a))
	}
}

func TestSetCodeHashesWithKeccak256(t *testing.T) {
	s := New()
	a := addr(1)
	code := []byte{0x60, 0x01}
	s.SetCode(a, code)
	if len(s.GetCode(a)) != 2 {
		t.Errorf("GetCode length = %d, want 2", len(s.GetCode(a)))
	}
	if s.GetCodeHash(a).IsZero() {
		t.Errorf("GetCodeHash = zero, want a real hash")
	}
}

func TestSetCodeEmptyLeavesZeroHash(t *testing.T) {
	s := New()
	a := addr(1)
	s.SetCode(a, nil)
	if !s.GetCodeHash(a).IsZero() {
		t.Errorf("GetCodeHash for empty code = %v, want zero", s.GetCodeHash(a))
	}
}

func TestStorageZeroElision(t *testing.T) {
	s := New()
	a := addr(1)
	key := types.HexToHash("0x2a")
	s.SetState(a, key, types.HexToHash("0x64"))
	if s.StorageLen(a) != 1 {
		t.Fatalf("StorageLen after write = %d, want 1", s.StorageLen(a))
	}
	s.SetState(a, key, types.Hash{})
	if s.StorageLen(a) != 0 {
		t.Errorf("StorageLen after zero write = %d, want 0", s.StorageLen(a))
	}
	if s.GetState(a, key) != (types.Hash{}) {
		t.Errorf("GetState after zero write = %v, want zero", s.GetState(a, key))
	}
}

func TestSnapshotRevert(t *testing.T) {
	s := New()
	a := addr(1)
	s.AddBalance(a, vm.WordFromUint64(100))

	id := s.Snapshot()
	s.AddBalance(a, vm.WordFromUint64(50))
	if s.GetBalance(a).Uint64() != 150 {
		t.Fatalf("balance after second add = %d, want 150", s.GetBalance(a).Uint64())
	}

	s.RevertToSnapshot(id)
	if s.GetBalance(a).Uint64() != 100 {
		t.Errorf("balance after revert = %d, want 100", s.GetBalance(a).Uint64())
	}
}

func TestSnapshotRevertIsDeepCopy(t *testing.T) {
	s := New()
	a := addr(1)
	key := types.HexToHash("0x1")
	s.SetState(a, key, types.HexToHash("0x1"))

	id := s.Snapshot()
	s.SetState(a, key, types.HexToHash("0x2"))
	s.RevertToSnapshot(id)

	if got := s.GetState(a, key); got != types.HexToHash("0x1") {
		t.Errorf("GetState after revert = %v, want 0x1", got)
	}
}

func TestAddLog(t *testing.T) {
	s := New()
	s.AddLog(types.Log{Address: addr(1)})
	if len(s.Logs()) != 1 {
		t.Errorf("Logs() length = %d, want 1", len(s.Logs()))
	}
}
