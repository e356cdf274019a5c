// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package storage implements typed contract storage on top of the state
// database. Values live in 32 byte slots of a single account; mappings and
// arrays derive their slots by hashing, byte strings are split in chunks.
package storage

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Store gives typed access to the storage of one account.
type Store struct {
	db   *state.StateDB
	addr common.Address
}

// New returns a store bound to the storage of addr.
func New(db *state.StateDB, addr common.Address) *Store {
	return &Store{db: db, addr: addr}
}

// Address returns the account backing the store.
func (s *Store) Address() common.Address {
	return s.addr
}

// Slot derives the storage key of a named variable. Extra keys select an
// entry of a mapping, e.g. Slot("balance", AddressKey(a), Uint8Key(id)).
func Slot(name string, keys ...[]byte) common.Hash {
	parts := make([][]byte, 0, len(keys)+1)
	parts = append(parts, []byte(name))
	parts = append(parts, keys...)
	return crypto.Keccak256Hash(parts...)
}

// AddressKey encodes an address as a mapping key.
func AddressKey(addr common.Address) []byte {
	return addr.Bytes()
}

// Uint64Key encodes an integer as a mapping key.
func Uint64Key(n uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], n)
	return key[:]
}

// Uint8Key encodes a small enum value as a mapping key.
func Uint8Key(n uint8) []byte {
	return []byte{n}
}

// offset returns the slot i positions after base.
func offset(base common.Hash, i uint64) common.Hash {
	pos := new(uint256.Int).SetBytes32(base[:])
	pos.AddUint64(pos, i)
	return common.Hash(pos.Bytes32())
}

func (s *Store) GetWord(slot common.Hash) common.Hash {
	return s.db.GetState(s.addr, slot)
}

func (s *Store) SetWord(slot common.Hash, value common.Hash) {
	s.db.SetState(s.addr, slot, value)
}

func (s *Store) GetUint(slot common.Hash) *uint256.Int {
	word := s.GetWord(slot)
	return new(uint256.Int).SetBytes32(word[:])
}

func (s *Store) SetUint(slot common.Hash, value *uint256.Int) {
	s.SetWord(slot, common.Hash(value.Bytes32()))
}

// GetBig reads a slot as an unsigned big integer.
func (s *Store) GetBig(slot common.Hash) *big.Int {
	return s.GetWord(slot).Big()
}

// SetBig stores a non-negative integer of at most 256 bits.
func (s *Store) SetBig(slot common.Hash, value *big.Int) {
	s.SetWord(slot, common.BigToHash(value))
}

func (s *Store) GetUint64(slot common.Hash) uint64 {
	return s.GetUint(slot).Uint64()
}

func (s *Store) SetUint64(slot common.Hash, value uint64) {
	s.SetUint(slot, new(uint256.Int).SetUint64(value))
}

func (s *Store) GetAddress(slot common.Hash) common.Address {
	return common.BytesToAddress(s.GetWord(slot).Bytes())
}

func (s *Store) SetAddress(slot common.Hash, addr common.Address) {
	s.SetWord(slot, common.BytesToHash(addr.Bytes()))
}

func (s *Store) GetBool(slot common.Hash) bool {
	return s.GetWord(slot) != (common.Hash{})
}

func (s *Store) SetBool(slot common.Hash, value bool) {
	var word common.Hash
	if value {
		word[common.HashLength-1] = 1
	}
	s.SetWord(slot, word)
}

// GetBytes reads a byte string written by SetBytes. The slot holds the
// length, the content is stored in consecutive slots starting at
// keccak(slot).
func (s *Store) GetBytes(slot common.Hash) []byte {
	size := s.GetUint64(slot)
	if size == 0 {
		return nil
	}
	var (
		base = crypto.Keccak256Hash(slot[:])
		out  = make([]byte, 0, size)
	)
	for i := uint64(0); uint64(len(out)) < size; i++ {
		word := s.GetWord(offset(base, i))
		need := size - uint64(len(out))
		if need > common.HashLength {
			need = common.HashLength
		}
		out = append(out, word[:need]...)
	}
	return out
}

// SetBytes stores a byte string, clearing chunks of a longer previous value.
func (s *Store) SetBytes(slot common.Hash, data []byte) {
	var (
		base      = crypto.Keccak256Hash(slot[:])
		oldChunks = chunks(s.GetUint64(slot))
		newChunks = chunks(uint64(len(data)))
	)
	for i := uint64(0); i < newChunks; i++ {
		var word common.Hash
		copy(word[:], data[i*common.HashLength:])
		s.SetWord(offset(base, i), word)
	}
	for i := newChunks; i < oldChunks; i++ {
		s.SetWord(offset(base, i), common.Hash{})
	}
	s.SetUint64(slot, uint64(len(data)))
}

func chunks(size uint64) uint64 {
	return (size + common.HashLength - 1) / common.HashLength
}

// PutRecord stores the RLP encoding of v at slot.
func (s *Store) PutRecord(slot common.Hash, v interface{}) error {
	enc, err := rlp.EncodeToBytes(v)
	if err != nil {
		return err
	}
	s.SetBytes(slot, enc)
	return nil
}

// GetRecord decodes the record at slot into v. It reports false if no
// record was stored.
func (s *Store) GetRecord(slot common.Hash, v interface{}) (bool, error) {
	enc := s.GetBytes(slot)
	if len(enc) == 0 {
		return false, nil
	}
	if err := rlp.DecodeBytes(enc, v); err != nil {
		return true, err
	}
	return true, nil
}

// Array is a dynamically sized list. The length sits in the array slot and
// element i in slot keccak(slot)+i.
type Array struct {
	store *Store
	slot  common.Hash
}

// Array returns the list rooted at slot.
func (s *Store) Array(slot common.Hash) *Array {
	return &Array{store: s, slot: slot}
}

func (a *Array) Len() uint64 {
	return a.store.GetUint64(a.slot)
}

// Slot returns the storage key of element i. It does not check bounds.
func (a *Array) Slot(i uint64) common.Hash {
	return offset(crypto.Keccak256Hash(a.slot[:]), i)
}

// Append grows the list by one and returns the slot of the new element.
func (a *Array) Append() common.Hash {
	n := a.Len()
	a.store.SetUint64(a.slot, n+1)
	return a.Slot(n)
}
