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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mccoysc/nftdao/core"
	"github.com/mccoysc/nftdao/token"
)

// nftLedger calls the NFT contract through the host.
type nftLedger struct {
	address common.Address
}

// NewTokenLedger returns a ledger calling the NFT contract at address.
func NewTokenLedger(address common.Address) TokenLedger {
	return &nftLedger{address: address}
}

func (l *nftLedger) TotalSupply(ctx *core.Context, item ItemType) (*big.Int, error) {
	input, err := token.ABI.Pack("totalSupply", big.NewInt(int64(item)))
	if err != nil {
		return nil, err
	}
	ret, err := ctx.Call(l.address, input, nil)
	if err != nil {
		return nil, err
	}
	out, err := token.ABI.Unpack("totalSupply", ret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return out[0].(*big.Int), nil
}

func (l *nftLedger) Transfer(ctx *core.Context, from, to common.Address, item ItemType, amount *big.Int) error {
	input, err := token.ABI.Pack("safeTransferFrom", from, to, big.NewInt(int64(item)), amount, []byte{})
	if err != nil {
		return err
	}
	_, err = ctx.Call(l.address, input, nil)
	return err
}
