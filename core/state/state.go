package state

import (
	"github.com/ferrovm/evmcore/core/types"
	"github.com/ferrovm/evmcore/core/vm"
	"github.com/ferrovm/evmcore/crypto"
)

// object is the internal account + code + storage triple kept per
// address, grounded on the teacher's stateObject (pkg/core/state/
// memory_statedb.go) but trimmed to this spec's flat model: no
// dirty/committed storage split, no journal, no access list, no
// self-destruct bookkeeping.
type object struct {
	account Account
	code    []byte
	storage Storage
}

func newObject() *object {
	return &object{account: *newAccount(), storage: newStorage()}
}

func (o *object) clone() *object {
	code := make([]byte, len(o.code))
	copy(code, o.code)
	return &object{
		account: *o.account.clone(),
		code:    code,
		storage: o.storage.clone(),
	}
}

// State is the interpreter's world-state collaborator (spec §4.7): an
// Address -> Account map plus per-account Storage and code, with
// deep-copy snapshot/revert. Code is kept per address next to its hash;
// there is no separate store keyed by code hash, so identical code set
// at two addresses is held twice. It implements vm.StateDB.
type State struct {
	objects   map[types.Address]*object
	logs      []types.Log
	snapshots []map[types.Address]*object
}

// New returns an empty world state.
func New() *State {
	return &State{objects: make(map[types.Address]*object)}
}

func (s *State) getOrCreate(addr types.Address) *object {
	if obj, ok := s.objects[addr]; ok {
		return obj
	}
	obj := newObject()
	s.objects[addr] = obj
	return obj
}

// GetBalance returns addr's balance, implicitly creating a zero-valued
// account on first touch (spec §4.7).
func (s *State) GetBalance(addr types.Address) *vm.Word {
	return new(vm.Word).Set(s.getOrCreate(addr).account.Balance)
}

// AddBalance credits amount to addr's balance.
func (s *State) AddBalance(addr types.Address, amount *vm.Word) {
	obj := s.getOrCreate(addr)
	obj.account.Balance.Add(obj.account.Balance, amount)
}

// SubBalance debits amount from addr's balance. Fails with an
// *InsufficientBalanceError, leaving the balance unchanged, if the
// account does not hold enough (spec §7 "InsufficientBalance").
func (s *State) SubBalance(addr types.Address, amount *vm.Word) error {
	obj := s.getOrCreate(addr)
	if obj.account.Balance.Lt(amount) {
		return &InsufficientBalanceError{
			Required:  new(vm.Word).Set(amount),
			Available: new(vm.Word).Set(obj.account.Balance),
		}
	}
	obj.account.Balance.Sub(obj.account.Balance, amount)
	return nil
}

// GetNonce returns addr's nonce (0 for an untouched account).
func (s *State) GetNonce(addr types.Address) uint64 {
	return s.getOrCreate(addr).account.Nonce
}

// SetNonce sets addr's nonce.
func (s *State) SetNonce(addr types.Address, nonce uint64) {
	s.getOrCreate(addr).account.Nonce = nonce
}

// GetCode returns the code stored at addr, or nil if none was set.
func (s *State) GetCode(addr types.Address) []byte {
	return s.getOrCreate(addr).code
}

// GetCodeSize returns len(GetCode(addr)) without copying the code.
func (s *State) GetCodeSize(addr types.Address) int {
	return len(s.getOrCreate(addr).code)
}

// SetCode installs code at addr and records its Keccak-256 hash as the
// account's code hash (spec §4.7 "set_code(addr, bytes) computes the
// hash... and inserts the code if non-empty"; spec §9 corrects the
// teacher lineage's truncated-prefix hash to a full Keccak-256).
func (s *State) SetCode(addr types.Address, code []byte) {
	obj := s.getOrCreate(addr)
	obj.code = code
	if len(code) == 0 {
		obj.account.CodeHash = types.Hash{}
		return
	}
	obj.account.CodeHash = crypto.Keccak256Hash(code)
}

// GetCodeHash returns the code hash recorded for addr.
func (s *State) GetCodeHash(addr types.Address) types.Hash {
	return s.getOrCreate(addr).account.CodeHash
}

// GetState reads a storage slot, zero if never written or last written
// as zero.
func (s *State) GetState(addr types.Address, key types.Hash) types.Hash {
	return s.getOrCreate(addr).storage.Load(key)
}

// SetState writes a storage slot, erasing it when value is zero (spec
// §4.4 zero-elision).
func (s *State) SetState(addr types.Address, key types.Hash, value types.Hash) {
	s.getOrCreate(addr).storage.Store(key, value)
}

// StorageLen reports the number of non-zero slots addr currently holds;
// a test convenience for spec P8/scenario 7.
func (s *State) StorageLen(addr types.Address) int {
	return s.getOrCreate(addr).storage.Len()
}

// Snapshot captures the entire state by deep copy and returns an opaque
// id that RevertToSnapshot can restore later (spec §4.7 "Snapshot = deep
// copy of accounts + per-account storage").
func (s *State) Snapshot() int {
	snap := make(map[types.Address]*object, len(s.objects))
	for addr, obj := range s.objects {
		snap[addr] = obj.clone()
	}
	s.snapshots = append(s.snapshots, snap)
	return len(s.snapshots) - 1
}

// RevertToSnapshot restores the state captured by Snapshot() id,
// discarding everything recorded since.
func (s *State) RevertToSnapshot(id int) {
	s.objects = s.snapshots[id]
	s.snapshots = s.snapshots[:id]
}

// AddLog appends a log record emitted by LOG0..LOG4 (spec §4.6).
func (s *State) AddLog(l types.Log) {
	s.logs = append(s.logs, l)
}

// Logs returns every log record emitted so far.
func (s *State) Logs() []types.Log {
	return s.logs
}
