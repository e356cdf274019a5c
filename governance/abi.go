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
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABIJSON is the interface of the DAO contract.
const ABIJSON = `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"proposalPeriod","type":"uint256"},{"name":"nft","type":"address"},{"name":"quorumPercent","type":"uint256"}]},
	{"type":"function","name":"stakeNFT","stateMutability":"nonpayable","inputs":[{"name":"itemType","type":"uint8"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"unstakeNFT","stateMutability":"nonpayable","inputs":[{"name":"itemType","type":"uint8"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"donate","stateMutability":"payable","inputs":[{"name":"itemType","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"addProposal","stateMutability":"nonpayable","inputs":[{"name":"itemType","type":"uint8"},{"name":"recipient","type":"address"},{"name":"description","type":"string"}],"outputs":[{"name":"proposalId","type":"uint256"}]},
	{"type":"function","name":"vote","stateMutability":"nonpayable","inputs":[{"name":"proposalId","type":"uint256"},{"name":"voteType","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"finishProposal","stateMutability":"nonpayable","inputs":[{"name":"proposalId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"proposalCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getProposal","stateMutability":"view","inputs":[{"name":"proposalId","type":"uint256"}],"outputs":[
		{"name":"itemType","type":"uint8"},
		{"name":"recipient","type":"address"},
		{"name":"proposer","type":"address"},
		{"name":"description","type":"string"},
		{"name":"createdAt","type":"uint256"},
		{"name":"deadline","type":"uint256"},
		{"name":"forVotes","type":"uint256"},
		{"name":"againstVotes","type":"uint256"},
		{"name":"status","type":"uint8"}]},
	{"type":"function","name":"hasVoted","stateMutability":"view","inputs":[{"name":"proposalId","type":"uint256"},{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"stakedBalance","stateMutability":"view","inputs":[{"name":"account","type":"address"},{"name":"itemType","type":"uint8"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"lockCount","stateMutability":"view","inputs":[{"name":"account","type":"address"},{"name":"itemType","type":"uint8"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"treasury","stateMutability":"view","inputs":[{"name":"itemType","type":"uint8"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"proposalPeriod","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"quorumPercent","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"nft","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"onERC1155Received","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"from","type":"address"},{"name":"id","type":"uint256"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"}],"outputs":[{"name":"","type":"bytes4"}]},
	{"type":"function","name":"onERC1155BatchReceived","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"from","type":"address"},{"name":"ids","type":"uint256[]"},{"name":"values","type":"uint256[]"},{"name":"data","type":"bytes"}],"outputs":[{"name":"","type":"bytes4"}]},
	{"type":"event","name":"Staked","anonymous":false,"inputs":[{"name":"account","type":"address","indexed":true},{"name":"itemType","type":"uint8","indexed":true},{"name":"amount","type":"uint256","indexed":false}]},
	{"type":"event","name":"Unstaked","anonymous":false,"inputs":[{"name":"account","type":"address","indexed":true},{"name":"itemType","type":"uint8","indexed":true},{"name":"amount","type":"uint256","indexed":false}]},
	{"type":"event","name":"Donated","anonymous":false,"inputs":[{"name":"donor","type":"address","indexed":true},{"name":"itemType","type":"uint8","indexed":true},{"name":"amount","type":"uint256","indexed":false}]},
	{"type":"event","name":"ProposalCreated","anonymous":false,"inputs":[{"name":"proposalId","type":"uint256","indexed":true},{"name":"proposer","type":"address","indexed":true},{"name":"itemType","type":"uint8","indexed":false},{"name":"recipient","type":"address","indexed":false},{"name":"description","type":"string","indexed":false},{"name":"deadline","type":"uint256","indexed":false}]},
	{"type":"event","name":"Voted","anonymous":false,"inputs":[{"name":"proposalId","type":"uint256","indexed":true},{"name":"voter","type":"address","indexed":true},{"name":"voteType","type":"uint8","indexed":false},{"name":"weight","type":"uint256","indexed":false}]},
	{"type":"event","name":"ProposalSucceeded","anonymous":false,"inputs":[{"name":"proposalId","type":"uint256","indexed":true},{"name":"recipient","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}]},
	{"type":"event","name":"ProposalRejected","anonymous":false,"inputs":[{"name":"proposalId","type":"uint256","indexed":true}]}
]`

// ABI is the parsed DAO interface.
var ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(ABIJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()
