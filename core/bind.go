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
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// BoundContract packs calls to a deployed contract and runs them on a
// chain as the given sender.
type BoundContract struct {
	chain   *Chain
	address common.Address
	abi     *abi.ABI
}

// NewBoundContract binds the contract at address.
func NewBoundContract(chain *Chain, address common.Address, contractABI *abi.ABI) *BoundContract {
	return &BoundContract{chain: chain, address: address, abi: contractABI}
}

// DeployContract deploys code with ABI packed constructor arguments.
func DeployContract(chain *Chain, from common.Address, code string, contractABI *abi.ABI, args ...interface{}) (*BoundContract, *types.Receipt, error) {
	input, err := contractABI.Pack("", args...)
	if err != nil {
		return nil, nil, err
	}
	receipt, result, err := chain.Transact(&Message{From: from, Code: code, Data: input})
	if err != nil {
		return nil, nil, err
	}
	if result.Failed() {
		return nil, receipt, fmt.Errorf("deploy %s: %w", code, result.Err)
	}
	return NewBoundContract(chain, receipt.ContractAddress, contractABI), receipt, nil
}

// Address returns the bound contract address.
func (b *BoundContract) Address() common.Address {
	return b.address
}

// ABI returns the interface of the bound contract.
func (b *BoundContract) ABI() *abi.ABI {
	return b.abi
}

// Call invokes a method read-only and unpacks its outputs.
func (b *BoundContract) Call(from common.Address, method string, args ...interface{}) ([]interface{}, error) {
	input, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	result, err := b.chain.Call(&Message{From: from, To: &b.address, Data: input})
	if err != nil {
		return nil, err
	}
	if result.Failed() {
		return nil, result.Err
	}
	return b.abi.Unpack(method, result.ReturnData)
}

// Transact sends a state changing call. A reverted call returns the mined
// receipt together with the revert error.
func (b *BoundContract) Transact(from common.Address, value *uint256.Int, method string, args ...interface{}) (*types.Receipt, error) {
	input, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	receipt, result, err := b.chain.Transact(&Message{From: from, To: &b.address, Value: value, Data: input})
	if err != nil {
		return nil, err
	}
	return receipt, result.Err
}
