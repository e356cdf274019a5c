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
)

// addProposal opens a proposal to pay the treasury of item to recipient.
// Anyone may propose.
func (d *DAO) addProposal(ctx *core.Context, state daoState, item ItemType, recipient common.Address, description string) (uint64, error) {
	if !item.Valid() {
		return 0, ErrInvalidItemType
	}
	if recipient == (common.Address{}) {
		return 0, ErrInvalidRecipient
	}
	deadline := ctx.Timestamp + state.period()
	if deadline < ctx.Timestamp {
		return 0, ErrDeadlineOverflow
	}
	proposal := &Proposal{
		ID:           state.proposals().Len(),
		ItemType:     item,
		Recipient:    recipient,
		Proposer:     ctx.Caller,
		Description:  description,
		CreatedAt:    ctx.Timestamp,
		Deadline:     deadline,
		ForVotes:     new(big.Int),
		AgainstVotes: new(big.Int),
		Status:       ProposalStatusOpen,
	}
	if err := state.putProposal(proposal); err != nil {
		return 0, err
	}
	err := ctx.EmitEvent(ABI.Events["ProposalCreated"],
		new(big.Int).SetUint64(proposal.ID), ctx.Caller,
		uint8(item), recipient, description, new(big.Int).SetUint64(proposal.Deadline))
	if err != nil {
		return 0, err
	}
	return proposal.ID, nil
}

// vote casts the caller's stake of the proposal's item type. The stake
// stays locked until the proposal is finished.
func (d *DAO) vote(ctx *core.Context, state daoState, id *big.Int, voteType VoteType) error {
	proposal, err := state.proposal(id)
	if err != nil {
		return err
	}
	if !voteType.Valid() {
		return ErrInvalidVoteType
	}
	// Check proposal status
	if proposal.Finished() {
		return ErrProposalFinished
	}
	if ctx.Timestamp >= proposal.Deadline {
		return ErrDeadlineReached
	}
	// Check if voter has already voted
	existing, err := state.vote(proposal.ID, ctx.Caller)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyVoted
	}
	weight := state.stake(ctx.Caller, proposal.ItemType)
	if weight.Sign() == 0 {
		return ErrNoVotingPower
	}

	// Record vote
	vote := &Vote{ProposalID: proposal.ID, Voter: ctx.Caller, Type: voteType, Weight: weight}
	if err := state.putVote(vote); err != nil {
		return err
	}
	state.setLocks(ctx.Caller, proposal.ItemType, state.locks(ctx.Caller, proposal.ItemType)+1)

	// Update vote counts
	if voteType == VoteFor {
		proposal.ForVotes = new(big.Int).Add(proposal.ForVotes, weight)
	} else {
		proposal.AgainstVotes = new(big.Int).Add(proposal.AgainstVotes, weight)
	}
	if err := state.putProposal(proposal); err != nil {
		return err
	}
	return ctx.EmitEvent(ABI.Events["Voted"], id, ctx.Caller, uint8(voteType), weight)
}

// finishProposal settles a proposal once its deadline has passed, pays
// out the treasury on success and releases the voters' stakes.
func (d *DAO) finishProposal(ctx *core.Context, state daoState, ledger TokenLedger, id *big.Int) error {
	proposal, err := state.proposal(id)
	if err != nil {
		return err
	}
	if proposal.Finished() {
		return ErrProposalFinished
	}
	if ctx.Timestamp < proposal.Deadline {
		return ErrTooEarly
	}
	supply, err := ledger.TotalSupply(ctx, proposal.ItemType)
	if err != nil {
		return err
	}
	proposal.Status = outcome(proposal.ForVotes, proposal.AgainstVotes, supply, state.quorum())
	if err := state.putProposal(proposal); err != nil {
		return err
	}

	// Release the stakes locked by this proposal
	voters := state.voters(proposal.ID)
	for i := uint64(0); i < voters.Len(); i++ {
		voter := state.store.GetAddress(voters.Slot(i))
		if n := state.locks(voter, proposal.ItemType); n > 0 {
			state.setLocks(voter, proposal.ItemType, n-1)
		}
	}

	if proposal.Status != ProposalStatusSucceeded {
		return ctx.EmitEvent(ABI.Events["ProposalRejected"], id)
	}
	amount, err := d.payout(ctx, state, proposal.ItemType, proposal.Recipient)
	if err != nil {
		return err
	}
	return ctx.EmitEvent(ABI.Events["ProposalSucceeded"], id, proposal.Recipient, amount)
}

// outcome decides a proposal. Turnout must reach quorum percent of the
// item supply and FOR must outweigh AGAINST.
func outcome(forVotes, againstVotes, supply *big.Int, quorumPercent uint64) ProposalStatus {
	turnout := new(big.Int).Add(forVotes, againstVotes)
	turnout.Mul(turnout, big.NewInt(100))
	required := new(big.Int).Mul(supply, new(big.Int).SetUint64(quorumPercent))

	if turnout.Cmp(required) >= 0 && forVotes.Cmp(againstVotes) > 0 {
		return ProposalStatusSucceeded
	}
	return ProposalStatusRejected
}
