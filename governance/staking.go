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

	"github.com/mccoysc/nftdao/core"
)

// stake pulls amount tokens of item from the caller into the DAO. The
// caller must have approved the DAO as operator on the NFT contract.
func (d *DAO) stake(ctx *core.Context, state daoState, ledger TokenLedger, item ItemType, amount *big.Int) error {
	if !item.Valid() {
		return ErrInvalidItemType
	}
	if amount.Sign() == 0 {
		return ErrZeroAmount
	}
	if err := ledger.Transfer(ctx, ctx.Caller, ctx.Self, item, amount); err != nil {
		return err
	}
	staked := new(big.Int).Add(state.stake(ctx.Caller, item), amount)
	state.setStake(ctx.Caller, item, staked)

	return ctx.EmitEvent(ABI.Events["Staked"], ctx.Caller, uint8(item), amount)
}

// unstake returns staked tokens to the caller. Stakes backing a vote on an
// unfinished proposal stay locked.
func (d *DAO) unstake(ctx *core.Context, state daoState, ledger TokenLedger, item ItemType, amount *big.Int) error {
	if !item.Valid() {
		return ErrInvalidItemType
	}
	if amount.Sign() == 0 {
		return ErrZeroAmount
	}
	// Check active votes
	if state.locks(ctx.Caller, item) > 0 {
		return ErrTooEarly
	}
	staked := state.stake(ctx.Caller, item)
	if staked.Cmp(amount) < 0 {
		return ErrNotEnoughStaked
	}
	state.setStake(ctx.Caller, item, new(big.Int).Sub(staked, amount))

	if err := ledger.Transfer(ctx, ctx.Self, ctx.Caller, item, amount); err != nil {
		return err
	}
	return ctx.EmitEvent(ABI.Events["Unstaked"], ctx.Caller, uint8(item), amount)
}
