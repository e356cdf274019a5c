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

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Message is an unsigned call or deployment from an account.
type Message struct {
	From common.Address

	// To is the called account. A nil To deploys Code.
	To   *common.Address
	Code string

	Value *uint256.Int
	Data  []byte
}

func (m *Message) value() *uint256.Int {
	if m.Value == nil {
		return new(uint256.Int)
	}
	return m.Value
}

// ExecutionResult is the outcome of executing a message.
type ExecutionResult struct {
	ReturnData      []byte
	Err             error
	ContractAddress common.Address
}

// Failed reports whether execution aborted.
func (r *ExecutionResult) Failed() bool {
	return r.Err != nil
}

// Unwrap returns the execution error.
func (r *ExecutionResult) Unwrap() error {
	return r.Err
}

// Revert returns the revert data of a reverted execution.
func (r *ExecutionResult) Revert() []byte {
	var revert *RevertError
	if errors.As(r.Err, &revert) {
		return revert.Data()
	}
	return nil
}
