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

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mccoysc/nftdao/core"
)

// Client is a Go binding of a deployed NFT contract.
type Client struct {
	contract *core.BoundContract
}

// NewClient binds the NFT contract at address.
func NewClient(chain *core.Chain, address common.Address) *Client {
	return &Client{contract: core.NewBoundContract(chain, address, &ABI)}
}

// Deploy deploys a new NFT contract owned by from.
func Deploy(chain *core.Chain, from common.Address, initialSupply *big.Int) (*Client, *types.Receipt, error) {
	contract, receipt, err := core.DeployContract(chain, from, CodeName, &ABI, initialSupply)
	if err != nil {
		return nil, receipt, err
	}
	return &Client{contract: contract}, receipt, nil
}

// Address returns the contract address.
func (c *Client) Address() common.Address {
	return c.contract.Address()
}

func (c *Client) BalanceOf(account common.Address, id uint8) (*big.Int, error) {
	out, err := c.contract.Call(account, "balanceOf", account, big.NewInt(int64(id)))
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (c *Client) BalanceOfBatch(accounts []common.Address, ids []*big.Int) ([]*big.Int, error) {
	out, err := c.contract.Call(common.Address{}, "balanceOfBatch", accounts, ids)
	if err != nil {
		return nil, err
	}
	return out[0].([]*big.Int), nil
}

func (c *Client) IsApprovedForAll(account, operator common.Address) (bool, error) {
	out, err := c.contract.Call(account, "isApprovedForAll", account, operator)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

func (c *Client) TotalSupply(id uint8) (*big.Int, error) {
	out, err := c.contract.Call(common.Address{}, "totalSupply", big.NewInt(int64(id)))
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (c *Client) Owner() (common.Address, error) {
	out, err := c.contract.Call(common.Address{}, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

func (c *Client) SetApprovalForAll(from, operator common.Address, approved bool) (*types.Receipt, error) {
	return c.contract.Transact(from, nil, "setApprovalForAll", operator, approved)
}

func (c *Client) SafeTransferFrom(sender, from, to common.Address, id uint8, amount *big.Int, data []byte) (*types.Receipt, error) {
	if data == nil {
		data = []byte{}
	}
	return c.contract.Transact(sender, nil, "safeTransferFrom", from, to, big.NewInt(int64(id)), amount, data)
}

func (c *Client) SafeBatchTransferFrom(sender, from, to common.Address, ids, amounts []*big.Int, data []byte) (*types.Receipt, error) {
	if data == nil {
		data = []byte{}
	}
	return c.contract.Transact(sender, nil, "safeBatchTransferFrom", from, to, ids, amounts, data)
}

func (c *Client) Mint(sender, to common.Address, id uint8, amount *big.Int) (*types.Receipt, error) {
	return c.contract.Transact(sender, nil, "mint", to, big.NewInt(int64(id)), amount)
}
