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
	"github.com/mccoysc/nftdao/token"
)

// NFTAPI provides token methods under the nft namespace
type NFTAPI struct {
	b *Backend
}

// NewNFTAPI creates a new token API
func NewNFTAPI(b *Backend) *NFTAPI {
	return &NFTAPI{b: b}
}

func (api *NFTAPI) client() *token.Client {
	return api.b.deployment.NFT
}

// BalanceOf returns the balance of account for item type id
func (api *NFTAPI) BalanceOf(account common.Address, id uint8) (*hexutil.Big, error) {
	balance, err := api.client().BalanceOf(account, id)
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(balance), nil
}

// IsApprovedForAll reports whether operator may move the tokens of account
func (api *NFTAPI) IsApprovedForAll(account, operator common.Address) (bool, error) {
	return api.client().IsApprovedForAll(account, operator)
}

// TotalSupply returns the minted supply of item type id
func (api *NFTAPI) TotalSupply(id uint8) (*hexutil.Big, error) {
	supply, err := api.client().TotalSupply(id)
	if err != nil {
		return nil, err
	}
	return (*hexutil.Big)(supply), nil
}

// SetApprovalForAll grants or revokes operator rights over the tokens of from
func (api *NFTAPI) SetApprovalForAll(from, operator common.Address, approved bool) (*ReceiptResult, error) {
	return api.b.transact(from, api.client().Address(), &token.ABI, nil, "setApprovalForAll", operator, approved)
}

// SafeTransferFrom moves amount tokens of item type id from the sender to to
func (api *NFTAPI) SafeTransferFrom(from, to common.Address, id uint8, amount hexutil.Big) (*ReceiptResult, error) {
	return api.b.transact(from, api.client().Address(), &token.ABI, nil, "safeTransferFrom",
		from, to, big.NewInt(int64(id)), (*big.Int)(&amount), []byte{})
}
