package state

import "github.com/ferrovm/evmcore/core/types"

// Storage is a single account's persistent key-value store. A slot
// holding the zero value is indistinguishable from an absent slot and is
// never actually stored (spec §4.4 "zero-elision": "store(key, 0) erases
// the key rather than recording it").
type Storage map[types.Hash]types.Hash

func newStorage() Storage {
	return make(Storage)
}

// Load returns the value at key, or the zero Hash if the slot was never
// written or was last written as zero.
func (s Storage) Load(key types.Hash) types.Hash {
	return s[key]
}

// Store writes value at key, deleting the slot entirely when value is
// zero so Len reflects only non-zero slots (spec P8, scenario 7).
func (s Storage) Store(key, value types.Hash) {
	if value.IsZero() {
		delete(s, key)
		return
	}
	s[key] = value
}

// Len reports the number of non-zero slots.
func (s Storage) Len() int {
	return len(s)
}

func (s Storage) clone() Storage {
	out := make(Storage, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
