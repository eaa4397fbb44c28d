// Copyright 2024 The gprism Authors
// This file is part of the gprism library.
//
// The gprism library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gprism library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gprism library. If not, see <http://www.gnu.org/licenses/>.

// Package state implements the journaled world state over a prismdb backend.
package state

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/types"
	"github.com/prism-network/gprism/prismdb"
)

// Database keys are "b" + address for balances and "s" + address + slot for
// storage words; values are 32-byte big-endian words.
var (
	balancePrefix = []byte("b")
	storagePrefix = []byte("s")
)

type storageKey struct {
	addr common.Address
	slot common.Hash
}

// StateDB holds the mutable world state: per-account balances, per-account
// storage slots and the event log journal of the current execution. All
// mutations are journaled so the whole state can be reverted to a snapshot.
type StateDB struct {
	backing prismdb.KeyValueReader // nil for a fresh in-memory state

	balances map[common.Address]*big.Int
	storage  map[storageKey]common.Hash
	logs     []*types.Log

	journal        *journal
	nextRevisionID int
	revisions      []revision
}

type revision struct {
	id           int
	journalIndex int
}

// New creates a state database over an optional backing store. Reads fall
// through to the backing store on cache miss; Commit writes dirty entries back.
func New(backing prismdb.KeyValueReader) *StateDB {
	return &StateDB{
		backing:  backing,
		balances: make(map[common.Address]*big.Int),
		storage:  make(map[storageKey]common.Hash),
		journal:  newJournal(),
	}
}

// GetBalance retrieves the balance of the given address, or zero if the
// account does not exist.
func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if b, ok := s.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	b := s.loadBalance(addr)
	s.balances[addr] = b
	return new(big.Int).Set(b)
}

// AddBalance adds amount to the balance of addr.
func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	cur := s.GetBalance(addr)
	s.setBalance(addr, new(big.Int).Add(cur, amount))
}

// SubBalance subtracts amount from the balance of addr. The caller is
// responsible for checking sufficiency; a negative result is clamped to zero.
func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	cur := s.GetBalance(addr)
	next := new(big.Int).Sub(cur, amount)
	if next.Sign() < 0 {
		next = new(big.Int)
	}
	s.setBalance(addr, next)
}

func (s *StateDB) setBalance(addr common.Address, amount *big.Int) {
	prev := s.GetBalance(addr)
	s.journal.append(balanceChange{account: addr, prev: prev})
	s.balances[addr] = amount
}

// GetState retrieves a storage word from the given account.
func (s *StateDB) GetState(addr common.Address, slot common.Hash) common.Hash {
	key := storageKey{addr, slot}
	if v, ok := s.storage[key]; ok {
		return v
	}
	v := s.loadStorage(addr, slot)
	s.storage[key] = v
	return v
}

// SetState stores a storage word under the given account.
func (s *StateDB) SetState(addr common.Address, slot common.Hash, value common.Hash) {
	prev := s.GetState(addr, slot)
	s.journal.append(storageChange{account: addr, slot: slot, prev: prev})
	s.storage[storageKey{addr, slot}] = value
}

// AddLog appends an event record to the current execution's log journal.
func (s *StateDB) AddLog(l *types.Log) {
	s.journal.append(addLogChange{})
	l.Index = uint(len(s.logs))
	s.logs = append(s.logs, l)
}

// Logs returns the event records accumulated so far.
func (s *StateDB) Logs() []*types.Log {
	return s.logs
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.revisions = append(s.revisions, revision{id, s.journal.length()})
	return id
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (s *StateDB) RevertToSnapshot(revid int) {
	// Find the snapshot in the stack of valid snapshots.
	idx := -1
	for i, rev := range s.revisions {
		if rev.id == revid {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic("revision id cannot be reverted")
	}
	s.journal.revert(s, s.revisions[idx].journalIndex)
	s.revisions = s.revisions[:idx]
}

// Commit writes all cached balances and storage words to the given store.
// Logs are execution-scoped and are not persisted here.
func (s *StateDB) Commit(db prismdb.KeyValueWriter) error {
	for addr, bal := range s.balances {
		word := balanceWord(bal)
		if err := db.Put(balanceKey(addr), word[:]); err != nil {
			return err
		}
	}
	for key, value := range s.storage {
		if err := db.Put(slotKey(key.addr, key.slot), value.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (s *StateDB) loadBalance(addr common.Address) *big.Int {
	if s.backing == nil {
		return new(big.Int)
	}
	raw, err := s.backing.Get(balanceKey(addr))
	if err != nil || len(raw) == 0 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(raw)
}

func (s *StateDB) loadStorage(addr common.Address, slot common.Hash) common.Hash {
	if s.backing == nil {
		return common.Hash{}
	}
	raw, err := s.backing.Get(slotKey(addr, slot))
	if err != nil {
		return common.Hash{}
	}
	return common.BytesToHash(raw)
}

func balanceKey(addr common.Address) []byte {
	return append(append([]byte{}, balancePrefix...), addr.Bytes()...)
}

func slotKey(addr common.Address, slot common.Hash) []byte {
	key := append(append([]byte{}, storagePrefix...), addr.Bytes()...)
	return append(key, slot.Bytes()...)
}

// balanceWord encodes a balance as a fixed 32-byte big-endian word. Balances
// never exceed 2^256-1; larger values are a protocol violation upstream.
func balanceWord(b *big.Int) [32]byte {
	word, _ := uint256.FromBig(b)
	if word == nil {
		word = new(uint256.Int)
	}
	return word.Bytes32()
}
