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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mccoysc/nftdao/governance"
)

// DAOAPI provides governance methods under the dao namespace
type DAOAPI struct {
	b *Backend
}

// NewDAOAPI creates a new governance API
func NewDAOAPI(b *Backend) *DAOAPI {
	return &DAOAPI{b: b}
}

// ProposalResult is the RPC view of a proposal
type ProposalResult struct {
	ID           hexutil.Uint64 `json:"id"`
	ItemType     string         `json:"itemType"`
	Recipient    common.Address `json:"recipient"`
	Proposer     common.Address `json:"proposer"`
	Description  string         `json:"description"`
	CreatedAt    hexutil.Uint64 `json:"createdAt"`
	Deadline     hexutil.Uint64 `json:"deadline"`
	ForVotes     *hexutil.Big   `json:"forVotes"`
	AgainstVotes *hexutil.Big   `json:"againstVotes"`
	Status       string         `json:"status"`
}

func (api *DAOAPI) client() *governance.Client {
	return api.b.deployment.DAO
}

func (api *DAOAPI) transact(from common.Address, value *big.Int, method string, args ...interface{}) (*ReceiptResult, error) {
	return api.b.transact(from, api.client().Address(), &governance.ABI, value, method, args...)
}

// StakeNFT moves amount tokens of an item type from the sender into the DAO.
// The DAO must be approved as operator beforehand.
func (api *DAOAPI) StakeNFT(from common.Address, item uint8, amount hexutil.Big) (*ReceiptResult, error) {
	return api.transact(from, nil, "stakeNFT", item, (*big.Int)(&amount))
}

// UnstakeNFT returns staked tokens to the sender
func (api *DAOAPI) UnstakeNFT(from common.Address, item uint8, amount hexutil.Big) (*ReceiptResult, error) {
	return api.transact(from, nil, "unstakeNFT", item, (*big.Int)(&amount))
}

// Donate adds value wei to the treasury of an item type
func (api *DAOAPI) Donate(from common.Address, item uint8, value hexutil.Big) (*ReceiptResult, error) {
	return api.transact(from, (*big.Int)(&value), "donate", item)
}

// AddProposal creates a proposal. The result carries the new proposal id.
func (api *DAOAPI) AddProposal(from common.Address, item uint8, recipient common.Address, description string) (*ReceiptResult, error) {
	return api.transact(from, nil, "addProposal", item, recipient, description)
}

// Vote casts the staked weight of the sender on a proposal
func (api *DAOAPI) Vote(from common.Address, id hexutil.Uint64, vote uint8) (*ReceiptResult, error) {
	return api.transact(from, nil, "vote", new(big.Int).SetUint64(uint64(id)), vote)
}

// FinishProposal settles a proposal after its deadline. The result carries
// the outcome.
func (api *DAOAPI) FinishProposal(from common.Address, id hexutil.Uint64) (*ReceiptResult, error) {
	return api.transact(from, nil, "finishProposal", new(big.Int).SetUint64(uint64(id)))
}

// GetProposal returns a proposal by id
func (api *DAOAPI) GetProposal(id hexutil.Uint64) (*ProposalResult, error) {
	p, err := api.client().GetProposal(uint64(id))
	if err != nil {
		return nil, err
	}
	return &ProposalResult{
		ID:           hexutil.Uint64(p.ID),
		ItemType:     p.ItemType.String(),
		Recipient:    p.Recipient,
		Proposer:     p.Proposer,
		Description:  p.Description,
		CreatedAt:    hexutil.Uint64(p.CreatedAt),
		Deadline:     hexutil.Uint64(p.Deadline),
		ForVotes:     (*hexutil.Big)(p.ForVotes),
		AgainstVotes: (*hexutil.Big)(p.AgainstVotes),
		Status:       p.Status.String(),
	}, nil
}

// ProposalCount returns the number of proposals created
func (api *DAOAPI) ProposalCount() (hexutil.Uint64, error) {
	n, err := api.client().ProposalCount()
	return hexutil.Uint64(n), err
}

// StakedBalance returns the tokens account has staked for an item type
func (api *DAOAPI) StakedBalance(account common.Address, item uint8) (*hexutil.Big, error) {
	staked, err := api.client().StakedBalance(account, governance.ItemType(item))
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(staked), nil
}

// Treasury returns the wei held for an item type
func (api *DAOAPI) Treasury(item uint8) (*hexutil.Big, error) {
	balance, err := api.client().Treasury(governance.ItemType(item))
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(balance), nil
}

// HasVoted reports whether account voted on a proposal
func (api *DAOAPI) HasVoted(id hexutil.Uint64, account common.Address) (bool, error) {
	return api.client().HasVoted(uint64(id), account)
}
