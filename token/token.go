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

// Package token implements the NFT ledger: a multi token contract with one
// fungible balance pool per item type.
package token

import (
	"bytes"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mccoysc/nftdao/core"
	"github.com/mccoysc/nftdao/storage"
)

// CodeName identifies the NFT contract code.
const CodeName = "NFT"

// ItemTypes is the number of item types (GOLD, SILVER, BRONZE).
const ItemTypes = 3

// DefaultInitialSupply is minted to the deployer for every item type.
const DefaultInitialSupply = 20

// Storage layout.
const (
	ownerVar    = "owner"
	supplyVar   = "supply"
	balanceVar  = "balance"
	approvalVar = "approval"
)

// NFT is the token contract code.
type NFT struct{}

// New returns the contract code.
func New() *NFT {
	return &NFT{}
}

func (t *NFT) Name() string {
	return CodeName
}

// Construct makes the deployer the owner and mints the initial supply of
// every item type to it.
func (t *NFT) Construct(ctx *core.Context, input []byte) error {
	args, err := ABI.Constructor.Inputs.Unpack(input)
	if err != nil {
		return core.NewRevert("invalid constructor arguments")
	}
	supply := args[0].(*big.Int)

	ctx.Storage().SetAddress(storage.Slot(ownerVar), ctx.Caller)
	for id := int64(0); id < ItemTypes; id++ {
		if err := t.mint(ctx, ctx.Caller, big.NewInt(id), supply); err != nil {
			return err
		}
	}
	return nil
}

func (t *NFT) Run(ctx *core.Context, input []byte) ([]byte, error) {
	method, args, err := core.UnpackCall(&ABI, ctx, input)
	if err != nil {
		return nil, err
	}
	store := ctx.Storage()

	switch method.Name {
	case "balanceOf":
		return method.Outputs.Pack(balanceOf(store, args[0].(common.Address), args[1].(*big.Int)))

	case "balanceOfBatch":
		accounts, ids := args[0].([]common.Address), args[1].([]*big.Int)
		if len(accounts) != len(ids) {
			return nil, ErrLengthMismatch
		}
		balances := make([]*big.Int, len(accounts))
		for i := range accounts {
			balances[i] = balanceOf(store, accounts[i], ids[i])
		}
		return method.Outputs.Pack(balances)

	case "setApprovalForAll":
		operator, approved := args[0].(common.Address), args[1].(bool)
		if operator == ctx.Caller {
			return nil, ErrApproveSelf
		}
		store.SetBool(approvalSlot(ctx.Caller, operator), approved)
		return nil, ctx.EmitEvent(ABI.Events["ApprovalForAll"], ctx.Caller, operator, approved)

	case "isApprovedForAll":
		return method.Outputs.Pack(store.GetBool(approvalSlot(args[0].(common.Address), args[1].(common.Address))))

	case "safeTransferFrom":
		var (
			from, to = args[0].(common.Address), args[1].(common.Address)
			id       = args[2].(*big.Int)
			amount   = args[3].(*big.Int)
			data     = args[4].([]byte)
		)
		if err := t.checkOperator(ctx, from); err != nil {
			return nil, err
		}
		if to == (common.Address{}) {
			return nil, ErrTransferToZero
		}
		if err := move(store, from, to, id, amount); err != nil {
			return nil, err
		}
		if err := ctx.EmitEvent(ABI.Events["TransferSingle"], ctx.Caller, from, to, id, amount); err != nil {
			return nil, err
		}
		return nil, acceptSingle(ctx, ctx.Caller, from, to, id, amount, data)

	case "safeBatchTransferFrom":
		var (
			from, to = args[0].(common.Address), args[1].(common.Address)
			ids      = args[2].([]*big.Int)
			amounts  = args[3].([]*big.Int)
			data     = args[4].([]byte)
		)
		if len(ids) != len(amounts) {
			return nil, ErrAmountsMismatch
		}
		if err := t.checkOperator(ctx, from); err != nil {
			return nil, err
		}
		if to == (common.Address{}) {
			return nil, ErrTransferToZero
		}
		for i := range ids {
			if err := move(store, from, to, ids[i], amounts[i]); err != nil {
				return nil, err
			}
		}
		if err := ctx.EmitEvent(ABI.Events["TransferBatch"], ctx.Caller, from, to, ids, amounts); err != nil {
			return nil, err
		}
		return nil, acceptBatch(ctx, ctx.Caller, from, to, ids, amounts, data)

	case "mint":
		if store.GetAddress(storage.Slot(ownerVar)) != ctx.Caller {
			return nil, ErrNotOwner
		}
		return nil, t.mint(ctx, args[0].(common.Address), args[1].(*big.Int), args[2].(*big.Int))

	case "totalSupply":
		return method.Outputs.Pack(store.GetBig(supplySlot(args[0].(*big.Int))))

	case "owner":
		return method.Outputs.Pack(store.GetAddress(storage.Slot(ownerVar)))
	}
	return nil, core.ErrUnknownSelector
}

func (t *NFT) checkOperator(ctx *core.Context, from common.Address) error {
	if from == ctx.Caller || ctx.Storage().GetBool(approvalSlot(from, ctx.Caller)) {
		return nil
	}
	return ErrNotApproved
}

func (t *NFT) mint(ctx *core.Context, to common.Address, id, amount *big.Int) error {
	if to == (common.Address{}) {
		return ErrMintToZero
	}
	if !id.IsInt64() || id.Int64() < 0 || id.Int64() >= ItemTypes {
		return ErrInvalidItemType
	}
	store := ctx.Storage()
	// Balances never exceed the supply, so bounding the supply bounds them too.
	supply := new(big.Int).Add(store.GetBig(supplySlot(id)), amount)
	if supply.BitLen() > 256 {
		return ErrSupplyOverflow
	}
	store.SetBig(supplySlot(id), supply)
	store.SetBig(balanceSlot(to, id), new(big.Int).Add(balanceOf(store, to, id), amount))

	if err := ctx.EmitEvent(ABI.Events["TransferSingle"], ctx.Caller, common.Address{}, to, id, amount); err != nil {
		return err
	}
	return acceptSingle(ctx, ctx.Caller, common.Address{}, to, id, amount, nil)
}

func move(store *storage.Store, from, to common.Address, id, amount *big.Int) error {
	balance := balanceOf(store, from, id)
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	store.SetBig(balanceSlot(from, id), new(big.Int).Sub(balance, amount))
	store.SetBig(balanceSlot(to, id), new(big.Int).Add(balanceOf(store, to, id), amount))
	return nil
}

// acceptSingle asks a receiving contract to confirm a transfer.
func acceptSingle(ctx *core.Context, operator, from, to common.Address, id, amount *big.Int, data []byte) error {
	if !ctx.IsContract(to) {
		return nil
	}
	if data == nil {
		data = []byte{}
	}
	input, err := ReceiverABI.Pack("onERC1155Received", operator, from, id, amount, data)
	if err != nil {
		return err
	}
	return checkAcceptance(ctx, to, input, ReceivedSelector())
}

// acceptBatch is acceptSingle for batch transfers.
func acceptBatch(ctx *core.Context, operator, from, to common.Address, ids, amounts []*big.Int, data []byte) error {
	if !ctx.IsContract(to) {
		return nil
	}
	if data == nil {
		data = []byte{}
	}
	input, err := ReceiverABI.Pack("onERC1155BatchReceived", operator, from, ids, amounts, data)
	if err != nil {
		return err
	}
	return checkAcceptance(ctx, to, input, BatchReceivedSelector())
}

func checkAcceptance(ctx *core.Context, to common.Address, input []byte, want [4]byte) error {
	ret, err := ctx.Call(to, input, nil)
	if err != nil {
		if errors.Is(err, core.ErrUnknownSelector) || errors.Is(err, core.ErrMissingSelector) {
			return ErrNotReceiver
		}
		return err
	}
	if len(ret) < 4 || !bytes.Equal(ret[:4], want[:]) {
		return ErrRejected
	}
	return nil
}

func balanceOf(store *storage.Store, account common.Address, id *big.Int) *big.Int {
	return store.GetBig(balanceSlot(account, id))
}

func idKey(id *big.Int) []byte {
	return common.BigToHash(id).Bytes()
}

func supplySlot(id *big.Int) common.Hash {
	return storage.Slot(supplyVar, idKey(id))
}

func balanceSlot(account common.Address, id *big.Int) common.Hash {
	return storage.Slot(balanceVar, idKey(id), storage.AddressKey(account))
}

func approvalSlot(account, operator common.Address) common.Hash {
	return storage.Slot(approvalVar, storage.AddressKey(account), storage.AddressKey(operator))
}
