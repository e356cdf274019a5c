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
	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/core"
)

// donate credits the value sent with the call to the treasury of item.
func (d *DAO) donate(ctx *core.Context, state daoState, item ItemType) error {
	if !item.Valid() {
		return ErrInvalidItemType
	}
	if ctx.Value.IsZero() {
		return ErrZeroDonation
	}
	amount := ctx.Value.ToBig()
	state.setTreasury(item, new(big.Int).Add(state.treasury(item), amount))

	return ctx.EmitEvent(ABI.Events["Donated"], ctx.Caller, uint8(item), amount)
}

// payout empties the treasury of item into recipient and returns the
// amount paid.
func (d *DAO) payout(ctx *core.Context, state daoState, item ItemType, recipient common.Address) (*big.Int, error) {
	amount := state.treasury(item)
	if amount.Sign() == 0 {
		return amount, nil
	}
	value, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, core.NewRevert("treasury overflow")
	}
	state.setTreasury(item, new(big.Int))
	if err := ctx.Transfer(recipient, value); err != nil {
		return nil, err
	}
	return amount, nil
}
