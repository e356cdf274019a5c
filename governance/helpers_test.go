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
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/core"
	"github.com/mccoysc/nftdao/token"
)

const (
	testPeriod = 60
	testSupply = token.DefaultInitialSupply
)

var (
	owner          = common.HexToAddress("0x1")
	regularUser    = common.HexToAddress("0x2")
	userToWithdraw = common.HexToAddress("0x3")
)

type testDAO struct {
	chain *core.Chain
	nft   *token.Client
	dao   *Client
}

func newTestDAO(t *testing.T, code *DAO) *testDAO {
	t.Helper()
	return newTestDAOAt(t, code, 1_700_000_000, testPeriod)
}

// newTestDAOAt deploys the contracts on a chain starting at genesisTime.
func newTestDAOAt(t *testing.T, code *DAO, genesisTime, period uint64) *testDAO {
	t.Helper()
	funds := uint256.NewInt(1_000_000_000)
	chain, err := core.NewChain(&core.Config{
		GenesisTime: genesisTime,
		Clock:       func() time.Time { return time.Unix(1_700_000_000, 0) },
		Alloc: map[common.Address]*uint256.Int{
			owner:          funds,
			regularUser:    funds,
			userToWithdraw: funds,
		},
		Codes: []core.Contract{token.New(), code},
	})
	if err != nil {
		t.Fatalf("Failed to create chain: %v", err)
	}
	nft, _, err := token.Deploy(chain, owner, big.NewInt(testSupply))
	if err != nil {
		t.Fatalf("Failed to deploy NFT: %v", err)
	}
	dao, _, err := Deploy(chain, owner, nft.Address(), &Config{ProposalPeriod: period, QuorumPercent: 50})
	if err != nil {
		t.Fatalf("Failed to deploy DAO: %v", err)
	}
	return &testDAO{chain: chain, nft: nft, dao: dao}
}

// stake approves the DAO, stakes amount and revokes the approval again.
func (e *testDAO) stake(t *testing.T, from common.Address, item ItemType, amount int64) {
	t.Helper()
	if _, err := e.nft.SetApprovalForAll(from, e.dao.Address(), true); err != nil {
		t.Fatalf("SetApprovalForAll failed: %v", err)
	}
	if _, err := e.dao.StakeNFT(from, item, big.NewInt(amount)); err != nil {
		t.Fatalf("StakeNFT failed: %v", err)
	}
	if _, err := e.nft.SetApprovalForAll(from, e.dao.Address(), false); err != nil {
		t.Fatalf("SetApprovalForAll failed: %v", err)
	}
}

func (e *testDAO) propose(t *testing.T) uint64 {
	t.Helper()
	id, _, err := e.dao.AddProposal(regularUser, ItemGold, userToWithdraw, "To a nice user")
	if err != nil {
		t.Fatalf("AddProposal failed: %v", err)
	}
	return id
}

func (e *testDAO) afterDeadline(t *testing.T) {
	t.Helper()
	if _, err := e.chain.IncreaseTime(testPeriod + 1); err != nil {
		t.Fatalf("IncreaseTime failed: %v", err)
	}
}

func (e *testDAO) advance(t *testing.T, seconds uint64) {
	t.Helper()
	if _, err := e.chain.IncreaseTime(seconds); err != nil {
		t.Fatalf("IncreaseTime failed: %v", err)
	}
}

func (e *testDAO) nftBalance(t *testing.T, account common.Address, item ItemType) int64 {
	t.Helper()
	b, err := e.nft.BalanceOf(account, uint8(item))
	if err != nil {
		t.Fatalf("BalanceOf failed: %v", err)
	}
	return b.Int64()
}
