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

// Package api exposes the chain, token and DAO over JSON-RPC. Dev accounts
// are unlocked: transacting methods sign with the key of the from account.
package api

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mccoysc/nftdao/genesis"
)

// ErrUnknownAccount is returned when asked to sign for a non-dev account.
var ErrUnknownAccount = errors.New("unknown account")

// Backend signs and submits transactions on behalf of the dev accounts.
type Backend struct {
	deployment *genesis.Deployment
	mu         sync.Mutex // nonce assignment
}

// NewBackend creates a backend for a committed deployment.
func NewBackend(d *genesis.Deployment) *Backend {
	return &Backend{deployment: d}
}

// Deployment returns the served deployment.
func (b *Backend) Deployment() *genesis.Deployment {
	return b.deployment
}

// send signs a legacy transaction from a dev account and executes it. A
// reverted execution returns its mined receipt and the revert error.
func (b *Backend) send(from, to common.Address, value *big.Int, data []byte) (*types.Receipt, error) {
	key, ok := b.deployment.Key(from)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, from.Hex())
	}
	chain := b.deployment.Chain

	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := types.SignNewTx(key, chain.Signer(), &types.LegacyTx{
		Nonce: chain.Nonce(from),
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, err
	}
	receipt, result, err := chain.SendTransaction(tx)
	if err != nil {
		return nil, err
	}
	if result.Failed() {
		log.Debug("Transaction reverted", "hash", tx.Hash(), "from", from, "err", result.Err)
		return receipt, result.Err
	}
	return receipt, nil
}

// transact packs a method call and sends it to contract.
func (b *Backend) transact(from, contract common.Address, contractABI *abi.ABI, value *big.Int, method string, args ...interface{}) (*ReceiptResult, error) {
	input, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	receipt, err := b.send(from, contract, value, input)
	if err != nil {
		return nil, err
	}
	return newReceiptResult(receipt), nil
}
