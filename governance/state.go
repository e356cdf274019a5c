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
	"github.com/mccoysc/nftdao/storage"
)

// Storage layout of the DAO contract.
const (
	periodVar    = "proposalPeriod"
	quorumVar    = "quorumPercent"
	nftVar       = "nft"
	proposalsVar = "proposals"
	stakeVar     = "stake"
	lockVar      = "locks"
	voteVar      = "votes"
	votersVar    = "voters"
	treasuryVar  = "treasury"
)

// proposalRecord is the stored form of a Proposal.
type proposalRecord struct {
	ItemType     uint8
	Recipient    common.Address
	Proposer     common.Address
	Description  string
	CreatedAt    uint64
	Deadline     uint64
	ForVotes     *big.Int
	AgainstVotes *big.Int
	Status       uint8
}

// voteRecord is the stored form of a Vote.
type voteRecord struct {
	Type   uint8
	Weight *big.Int
}

// daoState wraps the contract storage with the DAO's variables.
type daoState struct {
	store *storage.Store
}

func (s daoState) period() uint64 {
	return s.store.GetUint64(storage.Slot(periodVar))
}

func (s daoState) quorum() uint64 {
	return s.store.GetUint64(storage.Slot(quorumVar))
}

func (s daoState) nft() common.Address {
	return s.store.GetAddress(storage.Slot(nftVar))
}

func (s daoState) proposals() *storage.Array {
	return s.store.Array(storage.Slot(proposalsVar))
}

// proposal loads a proposal, returning ErrProposalNotFound for unknown ids.
func (s daoState) proposal(id *big.Int) (*Proposal, error) {
	list := s.proposals()
	if !id.IsUint64() || id.Uint64() >= list.Len() {
		return nil, ErrProposalNotFound
	}
	var rec proposalRecord
	if _, err := s.store.GetRecord(list.Slot(id.Uint64()), &rec); err != nil {
		return nil, err
	}
	return &Proposal{
		ID:           id.Uint64(),
		ItemType:     ItemType(rec.ItemType),
		Recipient:    rec.Recipient,
		Proposer:     rec.Proposer,
		Description:  rec.Description,
		CreatedAt:    rec.CreatedAt,
		Deadline:     rec.Deadline,
		ForVotes:     rec.ForVotes,
		AgainstVotes: rec.AgainstVotes,
		Status:       ProposalStatus(rec.Status),
	}, nil
}

// putProposal stores p under its id. An id equal to the current count
// appends a new proposal.
func (s daoState) putProposal(p *Proposal) error {
	list := s.proposals()
	slot := list.Slot(p.ID)
	if p.ID == list.Len() {
		slot = list.Append()
	}
	return s.store.PutRecord(slot, &proposalRecord{
		ItemType:     uint8(p.ItemType),
		Recipient:    p.Recipient,
		Proposer:     p.Proposer,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		Deadline:     p.Deadline,
		ForVotes:     p.ForVotes,
		AgainstVotes: p.AgainstVotes,
		Status:       uint8(p.Status),
	})
}

func (s daoState) stake(account common.Address, item ItemType) *big.Int {
	return s.store.GetBig(storage.Slot(stakeVar, storage.AddressKey(account), storage.Uint8Key(uint8(item))))
}

func (s daoState) setStake(account common.Address, item ItemType, amount *big.Int) {
	s.store.SetBig(storage.Slot(stakeVar, storage.AddressKey(account), storage.Uint8Key(uint8(item))), amount)
}

// locks counts the unfinished proposals of an item type account voted on.
func (s daoState) locks(account common.Address, item ItemType) uint64 {
	return s.store.GetUint64(storage.Slot(lockVar, storage.AddressKey(account), storage.Uint8Key(uint8(item))))
}

func (s daoState) setLocks(account common.Address, item ItemType, n uint64) {
	s.store.SetUint64(storage.Slot(lockVar, storage.AddressKey(account), storage.Uint8Key(uint8(item))), n)
}

func (s daoState) vote(id uint64, voter common.Address) (*Vote, error) {
	var rec voteRecord
	found, err := s.store.GetRecord(storage.Slot(voteVar, storage.Uint64Key(id), storage.AddressKey(voter)), &rec)
	if err != nil || !found {
		return nil, err
	}
	return &Vote{ProposalID: id, Voter: voter, Type: VoteType(rec.Type), Weight: rec.Weight}, nil
}

// putVote records v and adds the voter to the proposal's voter list.
func (s daoState) putVote(v *Vote) error {
	slot := storage.Slot(voteVar, storage.Uint64Key(v.ProposalID), storage.AddressKey(v.Voter))
	if err := s.store.PutRecord(slot, &voteRecord{Type: uint8(v.Type), Weight: v.Weight}); err != nil {
		return err
	}
	s.store.SetAddress(s.voters(v.ProposalID).Append(), v.Voter)
	return nil
}

func (s daoState) voters(id uint64) *storage.Array {
	return s.store.Array(storage.Slot(votersVar, storage.Uint64Key(id)))
}

func (s daoState) treasury(item ItemType) *big.Int {
	return s.store.GetBig(storage.Slot(treasuryVar, storage.Uint8Key(uint8(item))))
}

func (s daoState) setTreasury(item ItemType, amount *big.Int) {
	s.store.SetBig(storage.Slot(treasuryVar, storage.Uint8Key(uint8(item))), amount)
}
