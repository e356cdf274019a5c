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

package core

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gofrs/flock"
	"github.com/holiman/uint256"
)

const (
	journalFile = "messages.rlp"
	lockFile    = "LOCK"
)

// ErrDatadirUsed is returned when another process holds the journal lock.
var ErrDatadirUsed = errors.New("datadir already used by another process")

// Journal entry kinds.
const (
	EntryMessage uint8 = iota
	EntryTimeShift
	EntryGenesis
)

// JournalEntry is one record of the message journal. For messages Time is
// the block timestamp, for time shifts the number of seconds added and for
// the genesis record the genesis timestamp.
type JournalEntry struct {
	Kind  uint8
	Time  uint64
	Hash  common.Hash
	From  common.Address
	To    *common.Address `rlp:"nil"`
	Code  string
	Value *big.Int
	Data  []byte
}

func newMessageEntry(msg *Message, hash common.Hash, timestamp uint64) *JournalEntry {
	return &JournalEntry{
		Kind:  EntryMessage,
		Time:  timestamp,
		Hash:  hash,
		From:  msg.From,
		To:    msg.To,
		Code:  msg.Code,
		Value: msg.value().ToBig(),
		Data:  msg.Data,
	}
}

func (e *JournalEntry) message() *Message {
	value, _ := uint256.FromBig(e.Value)
	return &Message{From: e.From, To: e.To, Code: e.Code, Value: value, Data: e.Data}
}

// Journal is an append-only file of executed messages inside a data
// directory. The directory is locked while the journal is open.
type Journal struct {
	path string
	lock *flock.Flock
	file *os.File
	size int64 // end of the last complete entry
}

// OpenJournal opens or creates the journal in dir.
func OpenJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(dir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock datadir: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDatadirUsed, dir)
	}
	path := filepath.Join(dir, journalFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		lock.Unlock()
		return nil, err
	}
	log.Info("Opened message journal", "path", path, "size", stat.Size())
	return &Journal{path: path, lock: lock, file: file, size: stat.Size()}, nil
}

// Entries reads every entry written so far. An incomplete trailing entry,
// left by a crash during Append, is truncated away.
func (j *Journal) Entries() ([]*JournalEntry, error) {
	blob, err := os.ReadFile(j.path)
	if err != nil {
		return nil, err
	}
	var (
		entries []*JournalEntry
		offset  int
	)
	for offset < len(blob) {
		_, _, rest, err := rlp.Split(blob[offset:])
		if err != nil {
			if err := j.truncate(int64(offset)); err != nil {
				return nil, err
			}
			log.Warn("Truncated torn journal tail", "entries", len(entries), "offset", offset, "dropped", len(blob)-offset, "err", err)
			break
		}
		end := len(blob) - len(rest)
		entry := new(JournalEntry)
		if err := rlp.DecodeBytes(blob[offset:end], entry); err != nil {
			return nil, fmt.Errorf("journal entry %d: %w", len(entries), err)
		}
		entries = append(entries, entry)
		offset = end
	}
	return entries, nil
}

// Append writes an entry and syncs it to disk. On failure the file is cut
// back to the previous entry.
func (j *Journal) Append(entry *JournalEntry) error {
	enc, err := rlp.EncodeToBytes(entry)
	if err != nil {
		return err
	}
	if _, err = j.file.Write(enc); err == nil {
		err = j.file.Sync()
	}
	if err != nil {
		if terr := j.truncate(j.size); terr != nil {
			log.Error("Failed to roll back journal", "size", j.size, "err", terr)
		}
		return err
	}
	j.size += int64(len(enc))
	return nil
}

func (j *Journal) truncate(size int64) error {
	if err := j.file.Truncate(size); err != nil {
		return fmt.Errorf("truncate journal: %w", err)
	}
	j.size = size
	return nil
}

// Close closes the file and releases the directory lock.
func (j *Journal) Close() error {
	err := j.file.Close()
	if uerr := j.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}
