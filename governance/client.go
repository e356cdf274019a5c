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

package governance

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/core"
)

// ErrEventNotFound is returned when a receipt lacks an expected event.
var ErrEventNotFound = errors.New("event not found in receipt")

// Client is a Go binding of a deployed DAO contract.
type Client struct {
	contract *core.BoundContract
}

// NewClient binds the DAO contract at address.
func NewClient(chain *core.Chain, address common.Address) *Client {
	return &Client{contract: core.NewBoundContract(chain, address, &ABI)}
}

// Deploy deploys a DAO governing the NFT contract at nft.
func Deploy(chain *core.Chain, from common.Address, nft common.Address, config *Config) (*Client, *types.Receipt, error) {
	contract, receipt, err := core.DeployContract(chain, from, CodeName, &ABI,
		new(big.Int).SetUint64(config.ProposalPeriod), nft, new(big.Int).SetUint64(config.QuorumPercent))
	if err != nil {
		return nil, receipt, err
	}
	return &Client{contract: contract}, receipt, nil
}

// Address returns the contract address.
func (c *Client) Address() common.Address {
	return c.contract.Address()
}

func (c *Client) StakeNFT(from common.Address, item ItemType, amount *big.Int) (*types.Receipt, error) {
	return c.contract.Transact(from, nil, "stakeNFT", uint8(item), amount)
}

func (c *Client) UnstakeNFT(from common.Address, item ItemType, amount *big.Int) (*types.Receipt, error) {
	return c.contract.Transact(from, nil, "unstakeNFT", uint8(item), amount)
}

func (c *Client) Donate(from common.Address, item ItemType, value *uint256.Int) (*types.Receipt, error) {
	return c.contract.Transact(from, value, "donate", uint8(item))
}

// AddProposal creates a proposal and returns its id.
func (c *Client) AddProposal(from common.Address, item ItemType, recipient common.Address, description string) (uint64, *types.Receipt, error) {
	receipt, err := c.contract.Transact(from, nil, "addProposal", uint8(item), recipient, description)
	if err != nil {
		return 0, receipt, err
	}
	id, err := ProposalIDFromReceipt(receipt)
	return id, receipt, err
}

func (c *Client) Vote(from common.Address, id uint64, voteType VoteType) (*types.Receipt, error) {
	return c.contract.Transact(from, nil, "vote", new(big.Int).SetUint64(id), uint8(voteType))
}

// FinishProposal settles a proposal and returns its outcome.
func (c *Client) FinishProposal(from common.Address, id uint64) (ProposalStatus, *types.Receipt, error) {
	receipt, err := c.contract.Transact(from, nil, "finishProposal", new(big.Int).SetUint64(id))
	if err != nil {
		return ProposalStatusOpen, receipt, err
	}
	status, err := OutcomeFromReceipt(receipt)
	return status, receipt, err
}

func (c *Client) ProposalCount() (uint64, error) {
	out, err := c.contract.Call(common.Address{}, "proposalCount")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

func (c *Client) GetProposal(id uint64) (*Proposal, error) {
	out, err := c.contract.Call(common.Address{}, "getProposal", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	return &Proposal{
		ID:           id,
		ItemType:     ItemType(out[0].(uint8)),
		Recipient:    out[1].(common.Address),
		Proposer:     out[2].(common.Address),
		Description:  out[3].(string),
		CreatedAt:    out[4].(*big.Int).Uint64(),
		Deadline:     out[5].(*big.Int).Uint64(),
		ForVotes:     out[6].(*big.Int),
		AgainstVotes: out[7].(*big.Int),
		Status:       ProposalStatus(out[8].(uint8)),
	}, nil
}

func (c *Client) HasVoted(id uint64, account common.Address) (bool, error) {
	out, err := c.contract.Call(account, "hasVoted", new(big.Int).SetUint64(id), account)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

func (c *Client) StakedBalance(account common.Address, item ItemType) (*big.Int, error) {
	out, err := c.contract.Call(account, "stakedBalance", account, uint8(item))
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (c *Client) LockCount(account common.Address, item ItemType) (uint64, error) {
	out, err := c.contract.Call(account, "lockCount", account, uint8(item))
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

func (c *Client) Treasury(item ItemType) (*big.Int, error) {
	out, err := c.contract.Call(common.Address{}, "treasury", uint8(item))
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (c *Client) ProposalPeriod() (uint64, error) {
	out, err := c.contract.Call(common.Address{}, "proposalPeriod")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

// ProposalIDFromReceipt extracts the id from a ProposalCreated log.
func ProposalIDFromReceipt(receipt *types.Receipt) (uint64, error) {
	ev := ABI.Events["ProposalCreated"]
	for _, l := range receipt.Logs {
		if len(l.Topics) > 1 && l.Topics[0] == ev.ID {
			return l.Topics[1].Big().Uint64(), nil
		}
	}
	return 0, ErrEventNotFound
}

// OutcomeFromReceipt reports which settlement event a receipt carries.
func OutcomeFromReceipt(receipt *types.Receipt) (ProposalStatus, error) {
	for _, l := range receipt.Logs {
		if len(l.Topics) == 0 {
			continue
		}
		switch l.Topics[0] {
		case ABI.Events["ProposalSucceeded"].ID:
			return ProposalStatusSucceeded, nil
		case ABI.Events["ProposalRejected"].ID:
			return ProposalStatusRejected, nil
		}
	}
	return ProposalStatusOpen, ErrEventNotFound
}
