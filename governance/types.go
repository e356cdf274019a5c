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
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ItemType selects one of the NFT balance pools
type ItemType uint8

const (
	ItemGold   ItemType = 0x00 // GOLD
	ItemSilver ItemType = 0x01 // SILVER
	ItemBronze ItemType = 0x02 // BRONZE
)

// ItemTypes lists every item type in id order
var ItemTypes = []ItemType{ItemGold, ItemSilver, ItemBronze}

// Valid reports whether t names an existing item type
func (t ItemType) Valid() bool {
	return t <= ItemBronze
}

func (t ItemType) String() string {
	switch t {
	case ItemGold:
		return "GOLD"
	case ItemSilver:
		return "SILVER"
	case ItemBronze:
		return "BRONZE"
	}
	return fmt.Sprintf("ItemType(%d)", uint8(t))
}

// ParseItemType parses an item type name such as "gold".
func ParseItemType(s string) (ItemType, error) {
	for _, t := range ItemTypes {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown item type %q", s)
}

// VoteType is the side a vote is cast for
type VoteType uint8

const (
	VoteFor     VoteType = 0x00 // FOR
	VoteAgainst VoteType = 0x01 // AGAINST
)

// Valid reports whether v is FOR or AGAINST
func (v VoteType) Valid() bool {
	return v <= VoteAgainst
}

func (v VoteType) String() string {
	switch v {
	case VoteFor:
		return "FOR"
	case VoteAgainst:
		return "AGAINST"
	}
	return fmt.Sprintf("VoteType(%d)", uint8(v))
}

// ProposalStatus represents the status of a proposal
type ProposalStatus uint8

const (
	ProposalStatusOpen      ProposalStatus = 0x00 // accepting votes
	ProposalStatusSucceeded ProposalStatus = 0x01 // finished, treasury paid out
	ProposalStatusRejected  ProposalStatus = 0x02 // finished, nothing paid
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusOpen:
		return "Open"
	case ProposalStatusSucceeded:
		return "Succeeded"
	case ProposalStatusRejected:
		return "Rejected"
	}
	return fmt.Sprintf("ProposalStatus(%d)", uint8(s))
}

// Proposal represents a request to pay out the treasury of an item type
type Proposal struct {
	ID           uint64         // sequential id, starting at 0
	ItemType     ItemType       // pool whose stakers vote and whose treasury pays
	Recipient    common.Address // receives the treasury on success
	Proposer     common.Address // account that created the proposal
	Description  string         // free text
	CreatedAt    uint64         // block timestamp of creation
	Deadline     uint64         // votes are accepted strictly before this time
	ForVotes     *big.Int       // staked weight voting FOR
	AgainstVotes *big.Int       // staked weight voting AGAINST
	Status       ProposalStatus // outcome
}

// Finished reports whether the proposal has been finalized
func (p *Proposal) Finished() bool {
	return p.Status != ProposalStatusOpen
}

// Vote represents a vote on a proposal
type Vote struct {
	ProposalID uint64         // proposal voted on
	Voter      common.Address // voting account
	Type       VoteType       // FOR or AGAINST
	Weight     *big.Int       // stake counted for the vote
}

// MaxProposalPeriod is the longest proposal period a DAO accepts.
const MaxProposalPeriod uint64 = math.MaxInt64

// Config holds the deployment parameters of the DAO
type Config struct {
	ProposalPeriod uint64 // seconds between creation and deadline
	QuorumPercent  uint64 // share of the item supply that must vote
}

// DefaultConfig returns the default DAO configuration
func DefaultConfig() *Config {
	return &Config{
		ProposalPeriod: 60,
		QuorumPercent:  50,
	}
}
