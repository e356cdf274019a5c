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

package api

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
)

// ChainAPI provides host level methods under the chain namespace
type ChainAPI struct {
	b *Backend
}

// NewChainAPI creates a new chain API
func NewChainAPI(b *Backend) *ChainAPI {
	return &ChainAPI{b: b}
}

// ContractInfo describes a deployed contract
type ContractInfo struct {
	Address common.Address `json:"address"`
	Code    string         `json:"code"`
}

// Accounts returns the unlocked dev accounts
func (api *ChainAPI) Accounts() []common.Address {
	return api.b.deployment.Accounts
}

// GetBalance returns the ether balance of an account
func (api *ChainAPI) GetBalance(address common.Address) *hexutil.Big {
	return (*hexutil.Big)(api.b.deployment.Chain.Balance(address).ToBig())
}

// BlockNumber returns the head block number
func (api *ChainAPI) BlockNumber() hexutil.Uint64 {
	return hexutil.Uint64(api.b.deployment.Chain.Head().Number.Uint64())
}

// HeadTime returns the timestamp of the head block
func (api *ChainAPI) HeadTime() hexutil.Uint64 {
	return hexutil.Uint64(api.b.deployment.Chain.Head().Time)
}

// IncreaseTime moves the time of future blocks forward and returns the
// accumulated offset
func (api *ChainAPI) IncreaseTime(seconds hexutil.Uint64) (hexutil.Uint64, error) {
	offset, err := api.b.deployment.Chain.IncreaseTime(uint64(seconds))
	return hexutil.Uint64(offset), err
}

// SendRawTransaction executes a signed, RLP encoded transaction
func (api *ChainAPI) SendRawTransaction(input hexutil.Bytes) (*ReceiptResult, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(input); err != nil {
		return nil, err
	}
	receipt, result, err := api.b.deployment.Chain.SendTransaction(tx)
	if err != nil {
		return nil, err
	}
	if result.Failed() {
		log.Debug("Raw transaction reverted", "hash", tx.Hash(), "err", result.Err)
		return nil, result.Err
	}
	return newReceiptResult(receipt), nil
}

// GetReceipt returns the receipt of a mined transaction, or nil
func (api *ChainAPI) GetReceipt(hash common.Hash) *ReceiptResult {
	receipt := api.b.deployment.Chain.Receipt(hash)
	if receipt == nil {
		return nil
	}
	return newReceiptResult(receipt)
}

// Contracts lists the deployed contracts
func (api *ChainAPI) Contracts() []ContractInfo {
	chain := api.b.deployment.Chain
	addrs := chain.Contracts()
	infos := make([]ContractInfo, 0, len(addrs))
	for _, addr := range addrs {
		if code := chain.ContractAt(addr); code != nil {
			infos = append(infos, ContractInfo{Address: addr, Code: code.Name()})
		}
	}
	return infos
}
