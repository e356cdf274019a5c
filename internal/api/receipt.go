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
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mccoysc/nftdao/governance"
	"github.com/mccoysc/nftdao/token"
)

// ReceiptResult summarises a mined transaction
type ReceiptResult struct {
	TxHash          common.Hash     `json:"transactionHash"`
	BlockNumber     hexutil.Uint64  `json:"blockNumber"`
	Status          hexutil.Uint64  `json:"status"`
	ContractAddress *common.Address `json:"contractAddress,omitempty"`
	Events          []string        `json:"events"`
	ProposalID      *hexutil.Uint64 `json:"proposalId,omitempty"`
	Outcome         string          `json:"outcome,omitempty"`
}

// eventABIs are searched in order when naming logs.
var eventABIs = []*abi.ABI{&token.ABI, &governance.ABI}

func newReceiptResult(r *types.Receipt) *ReceiptResult {
	res := &ReceiptResult{
		TxHash:      r.TxHash,
		BlockNumber: hexutil.Uint64(r.BlockNumber.Uint64()),
		Status:      hexutil.Uint64(r.Status),
		Events:      make([]string, 0, len(r.Logs)),
	}
	if r.ContractAddress != (common.Address{}) {
		addr := r.ContractAddress
		res.ContractAddress = &addr
	}
	for _, l := range r.Logs {
		res.Events = append(res.Events, eventName(l))
	}
	if id, err := governance.ProposalIDFromReceipt(r); err == nil {
		pid := hexutil.Uint64(id)
		res.ProposalID = &pid
	}
	if status, err := governance.OutcomeFromReceipt(r); err == nil {
		res.Outcome = status.String()
	}
	return res
}

func eventName(l *types.Log) string {
	if len(l.Topics) == 0 {
		return "anonymous"
	}
	for _, contractABI := range eventABIs {
		if ev, err := contractABI.EventByID(l.Topics[0]); err == nil {
			return ev.Name
		}
	}
	return l.Topics[0].Hex()
}
