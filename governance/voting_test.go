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

	"github.com/ethereum/go-ethereum/common"
	"github.com/mccoysc/nftdao/core"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name              string
		forVotes, against int64
		supply            int64
		quorum            uint64
		want              ProposalStatus
	}{
		{"quorum reached", 15, 0, 20, 50, ProposalStatusSucceeded},
		{"quorum missed", 5, 0, 20, 50, ProposalStatusRejected},
		{"exact quorum", 10, 0, 20, 50, ProposalStatusSucceeded},
		{"majority against", 4, 8, 20, 50, ProposalStatusRejected},
		{"tie", 6, 6, 20, 50, ProposalStatusRejected},
		{"against counts for turnout", 7, 3, 20, 50, ProposalStatusSucceeded},
		{"unanimous quorum", 19, 0, 20, 100, ProposalStatusRejected},
		{"no votes", 0, 0, 20, 50, ProposalStatusRejected},
		{"no supply", 0, 0, 0, 50, ProposalStatusRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outcome(big.NewInt(tt.forVotes), big.NewInt(tt.against), big.NewInt(tt.supply), tt.quorum)
			if got != tt.want {
				t.Errorf("outcome = %v, want %v", got, tt.want)
			}
		})
	}
}

// MockLedger is a TokenLedger with a configurable supply that records
// transfers instead of moving tokens.
type MockLedger struct {
	supply    map[ItemType]*big.Int
	transfers []mockTransfer
}

type mockTransfer struct {
	from, to common.Address
	item     ItemType
	amount   *big.Int
}

func NewMockLedger() *MockLedger {
	return &MockLedger{supply: make(map[ItemType]*big.Int)}
}

func (m *MockLedger) TotalSupply(ctx *core.Context, item ItemType) (*big.Int, error) {
	if s, ok := m.supply[item]; ok {
		return s, nil
	}
	return new(big.Int), nil
}

func (m *MockLedger) Transfer(ctx *core.Context, from, to common.Address, item ItemType, amount *big.Int) error {
	m.transfers = append(m.transfers, mockTransfer{from: from, to: to, item: item, amount: amount})
	return nil
}

func TestQuorumUsesLedgerSupply(t *testing.T) {
	ledger := NewMockLedger()
	env := newTestDAO(t, NewWithLedger(func(common.Address) TokenLedger { return ledger }))

	// Staking goes through the ledger binding.
	if _, err := env.dao.StakeNFT(owner, ItemBronze, big.NewInt(15)); err != nil {
		t.Fatalf("StakeNFT failed: %v", err)
	}
	if len(ledger.transfers) != 1 {
		t.Fatalf("ledger transfers = %d, want 1", len(ledger.transfers))
	}
	tr := ledger.transfers[0]
	if tr.from != owner || tr.to != env.dao.Address() || tr.item != ItemBronze || tr.amount.Int64() != 15 {
		t.Errorf("unexpected transfer %+v", tr)
	}

	// 15 of 1000 is far below quorum.
	ledger.supply[ItemBronze] = big.NewInt(1000)
	id, _, err := env.dao.AddProposal(regularUser, ItemBronze, userToWithdraw, "large supply")
	if err != nil {
		t.Fatalf("AddProposal failed: %v", err)
	}
	if _, err := env.dao.Vote(owner, id, VoteFor); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	env.afterDeadline(t)
	status, _, err := env.dao.FinishProposal(owner, id)
	if err != nil {
		t.Fatalf("FinishProposal failed: %v", err)
	}
	if status != ProposalStatusRejected {
		t.Errorf("status = %v, want Rejected", status)
	}
}
