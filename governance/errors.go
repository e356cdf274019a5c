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

import "github.com/mccoysc/nftdao/core"

// Proposal lifecycle errors
var (
	ErrTooEarly         = core.NewRevert("It's too early")
	ErrAlreadyVoted     = core.NewRevert("Already voted!")
	ErrProposalFinished = core.NewRevert("Proposal is finished")
	ErrDeadlineReached  = core.NewRevert("Proposal reached deadline")
	ErrNoVotingPower    = core.NewRevert("You have no voting power")
	ErrProposalNotFound = core.NewRevert("Proposal does not exist")
	ErrDeadlineOverflow = core.NewRevert("Proposal deadline overflow")
)

// Argument errors
var (
	ErrInvalidItemType  = core.NewRevert("Invalid item type")
	ErrInvalidVoteType  = core.NewRevert("Invalid vote type")
	ErrInvalidRecipient = core.NewRevert("Invalid recipient")
	ErrZeroAmount       = core.NewRevert("Amount must be positive")
	ErrZeroDonation     = core.NewRevert("Donation must be positive")
)

// Staking errors
var (
	ErrNotEnoughStaked = core.NewRevert("Not enough staked tokens")
	ErrDirectTransfer  = core.NewRevert("Direct transfers not accepted")
)

// Deployment errors
var (
	ErrInvalidPeriod = core.NewRevert("Invalid proposal period")
	ErrInvalidQuorum = core.NewRevert("Invalid quorum")
	ErrInvalidToken  = core.NewRevert("Invalid token contract")
)
