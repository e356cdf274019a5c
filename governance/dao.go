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

// Package governance implements the DAO contract: NFT holders stake item
// tokens for voting power, donate to per item treasuries and vote on
// proposals paying a treasury out to a recipient.
package governance

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mccoysc/nftdao/core"
	"github.com/mccoysc/nftdao/storage"
	"github.com/mccoysc/nftdao/token"
)

// CodeName identifies the DAO contract code.
const CodeName = "DAO"

// DAO is the governance contract code.
type DAO struct {
	newLedger LedgerFactory
}

// New returns the contract code talking to the NFT contract.
func New() *DAO {
	return &DAO{newLedger: NewTokenLedger}
}

// NewWithLedger returns contract code using a custom ledger binding.
func NewWithLedger(factory LedgerFactory) *DAO {
	return &DAO{newLedger: factory}
}

func (d *DAO) Name() string {
	return CodeName
}

// Construct stores the proposal period, NFT contract and quorum.
func (d *DAO) Construct(ctx *core.Context, input []byte) error {
	args, err := ABI.Constructor.Inputs.Unpack(input)
	if err != nil {
		return core.NewRevert("invalid constructor arguments")
	}
	var (
		period = args[0].(*big.Int)
		nft    = args[1].(common.Address)
		quorum = args[2].(*big.Int)
	)
	if period.Sign() == 0 || !period.IsUint64() || period.Uint64() > MaxProposalPeriod {
		return ErrInvalidPeriod
	}
	if quorum.Sign() == 0 || quorum.Cmp(big.NewInt(100)) > 0 {
		return ErrInvalidQuorum
	}
	if !ctx.IsContract(nft) {
		return ErrInvalidToken
	}
	store := ctx.Storage()
	store.SetBig(storage.Slot(periodVar), period)
	store.SetBig(storage.Slot(quorumVar), quorum)
	store.SetAddress(storage.Slot(nftVar), nft)
	return nil
}

func (d *DAO) Run(ctx *core.Context, input []byte) ([]byte, error) {
	method, args, err := core.UnpackCall(&ABI, ctx, input)
	if err != nil {
		return nil, err
	}
	var (
		state  = daoState{store: ctx.Storage()}
		ledger = d.newLedger(state.nft())
	)
	switch method.Name {
	case "stakeNFT":
		return nil, d.stake(ctx, state, ledger, ItemType(args[0].(uint8)), args[1].(*big.Int))

	case "unstakeNFT":
		return nil, d.unstake(ctx, state, ledger, ItemType(args[0].(uint8)), args[1].(*big.Int))

	case "donate":
		return nil, d.donate(ctx, state, ItemType(args[0].(uint8)))

	case "addProposal":
		id, err := d.addProposal(ctx, state, ItemType(args[0].(uint8)), args[1].(common.Address), args[2].(string))
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(new(big.Int).SetUint64(id))

	case "vote":
		return nil, d.vote(ctx, state, args[0].(*big.Int), VoteType(args[1].(uint8)))

	case "finishProposal":
		return nil, d.finishProposal(ctx, state, ledger, args[0].(*big.Int))

	case "proposalCount":
		return method.Outputs.Pack(new(big.Int).SetUint64(state.proposals().Len()))

	case "getProposal":
		p, err := state.proposal(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(
			uint8(p.ItemType), p.Recipient, p.Proposer, p.Description,
			new(big.Int).SetUint64(p.CreatedAt), new(big.Int).SetUint64(p.Deadline),
			p.ForVotes, p.AgainstVotes, uint8(p.Status),
		)

	case "hasVoted":
		id := args[0].(*big.Int)
		if !id.IsUint64() {
			return method.Outputs.Pack(false)
		}
		v, err := state.vote(id.Uint64(), args[1].(common.Address))
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(v != nil)

	case "stakedBalance":
		return method.Outputs.Pack(state.stake(args[0].(common.Address), ItemType(args[1].(uint8))))

	case "lockCount":
		return method.Outputs.Pack(new(big.Int).SetUint64(state.locks(args[0].(common.Address), ItemType(args[1].(uint8)))))

	case "treasury":
		return method.Outputs.Pack(state.treasury(ItemType(args[0].(uint8))))

	case "proposalPeriod":
		return method.Outputs.Pack(new(big.Int).SetUint64(state.period()))

	case "quorumPercent":
		return method.Outputs.Pack(new(big.Int).SetUint64(state.quorum()))

	case "nft":
		return method.Outputs.Pack(state.nft())

	case "onERC1155Received":
		if err := d.checkIncoming(ctx, state, args[0].(common.Address)); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(token.ReceivedSelector())

	case "onERC1155BatchReceived":
		if err := d.checkIncoming(ctx, state, args[0].(common.Address)); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(token.BatchReceivedSelector())
	}
	return nil, core.ErrUnknownSelector
}

// checkIncoming accepts NFT transfers only when the DAO itself is the
// operator.
func (d *DAO) checkIncoming(ctx *core.Context, state daoState, operator common.Address) error {
	if ctx.Caller != state.nft() || operator != ctx.Self {
		return ErrDirectTransfer
	}
	return nil
}
