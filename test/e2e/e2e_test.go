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

// Package e2e drives the node over HTTP JSON-RPC with the scenarios of the
// DAO test suite.
package e2e

import (
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/mccoysc/nftdao/genesis"
	"github.com/mccoysc/nftdao/internal/api"
	"github.com/stretchr/testify/require"
)

const (
	gold = 0

	voteFor     = 0
	voteAgainst = 1

	firstProposal  = hexutil.Uint64(0)
	initialSupply  = 20
	proposalPeriod = 60
)

type node struct {
	t      *testing.T
	client *rpc.Client
	dao    common.Address

	owner, regularUser, userToWithdraw common.Address
}

func newNode(t *testing.T) *node {
	t.Helper()
	g := genesis.DefaultGenesis()
	g.DevAccounts = 3
	g.InitialSupply = initialSupply
	g.ProposalPeriod = proposalPeriod
	g.Clock = func() time.Time { return time.Unix(1_700_000_000, 0) }

	d, err := g.Commit()
	require.NoError(t, err)
	t.Cleanup(func() { d.Chain.Close() })

	srv, err := api.NewServer(api.NewBackend(d), nil)
	require.NoError(t, err)
	t.Cleanup(srv.Stop)

	httpSrv := httptest.NewServer(srv)
	t.Cleanup(httpSrv.Close)

	client, err := rpc.Dial(httpSrv.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return &node{
		t:              t,
		client:         client,
		dao:            d.DAO.Address(),
		owner:          d.Accounts[0],
		regularUser:    d.Accounts[1],
		userToWithdraw: d.Accounts[2],
	}
}

func amount(n int64) *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(n))
}

// send calls a transacting method and returns its receipt summary.
func (n *node) send(method string, args ...interface{}) *api.ReceiptResult {
	n.t.Helper()
	var res api.ReceiptResult
	require.NoError(n.t, n.client.Call(&res, method, args...))
	return &res
}

// reverts checks that a transacting method fails with reason.
func (n *node) reverts(reason, method string, args ...interface{}) {
	n.t.Helper()
	var res api.ReceiptResult
	err := n.client.Call(&res, method, args...)
	require.Error(n.t, err)
	require.Equal(n.t, "execution reverted: "+reason, err.Error())
}

func (n *node) balance(account common.Address) *big.Int {
	n.t.Helper()
	var balance hexutil.Big
	require.NoError(n.t, n.client.Call(&balance, "chain_getBalance", account))
	return balance.ToInt()
}

// stake approves the DAO, stakes and revokes the approval again.
func (n *node) stake(from common.Address, sum int64) {
	n.t.Helper()
	n.send("nft_setApprovalForAll", from, n.dao, true)
	n.send("dao_stakeNFT", from, uint8(gold), amount(sum))
	n.send("nft_setApprovalForAll", from, n.dao, false)
}

func (n *node) propose() {
	n.t.Helper()
	res := n.send("dao_addProposal", n.regularUser, uint8(gold), n.userToWithdraw, "To a nice user")
	require.NotNil(n.t, res.ProposalID)
	require.Equal(n.t, firstProposal, *res.ProposalID)
}

func (n *node) passDeadline() {
	n.t.Helper()
	var offset hexutil.Uint64
	require.NoError(n.t, n.client.Call(&offset, "chain_increaseTime", hexutil.Uint64(proposalPeriod+1)))
}

func TestStaking(t *testing.T) {
	n := newNode(t)
	n.stake(n.owner, 10)

	var balance hexutil.Big
	require.NoError(t, n.client.Call(&balance, "nft_balanceOf", n.owner, uint8(gold)))
	require.Equal(t, int64(initialSupply-10), balance.ToInt().Int64())
}

func TestTreasuryTopUp(t *testing.T) {
	n := newNode(t)
	before := n.balance(n.owner)
	n.send("dao_donate", n.owner, uint8(gold), amount(10_000))
	require.True(t, n.balance(n.owner).Cmp(new(big.Int).Sub(before, big.NewInt(10_000))) <= 0)
}

func TestFinishBeforeDeadline(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.reverts("It's too early", "dao_finishProposal", n.owner, firstProposal)
}

func TestQuorumNotReached(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.stake(n.owner, 5)
	n.send("dao_vote", n.owner, firstProposal, uint8(voteFor))
	n.passDeadline()

	res := n.send("dao_finishProposal", n.owner, firstProposal)
	require.Contains(t, res.Events, "ProposalRejected")
}

func TestQuorumReached(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.send("dao_donate", n.owner, uint8(gold), amount(10_000))
	n.stake(n.owner, 15)
	n.send("dao_vote", n.owner, firstProposal, uint8(voteFor))
	n.passDeadline()

	before := n.balance(n.userToWithdraw)
	res := n.send("dao_finishProposal", n.owner, firstProposal)
	require.Contains(t, res.Events, "ProposalSucceeded")
	require.Equal(t, new(big.Int).Add(before, big.NewInt(10_000)), n.balance(n.userToWithdraw))
}

func TestRevote(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.stake(n.owner, 5)
	n.send("dao_vote", n.owner, firstProposal, uint8(voteAgainst))
	n.reverts("Already voted!", "dao_vote", n.owner, firstProposal, uint8(voteAgainst))
}

func TestUnstakeWithActiveProposal(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.send("nft_setApprovalForAll", n.owner, n.dao, true)
	n.send("dao_stakeNFT", n.owner, uint8(gold), amount(15))
	n.send("dao_vote", n.owner, firstProposal, uint8(voteFor))
	n.send("nft_setApprovalForAll", n.owner, n.dao, false)
	n.reverts("It's too early", "dao_unstakeNFT", n.owner, uint8(gold), amount(15))
}

func TestUnstakeWithoutProposal(t *testing.T) {
	n := newNode(t)
	n.stake(n.owner, 15)
	res := n.send("dao_unstakeNFT", n.owner, uint8(gold), amount(15))
	require.Contains(t, res.Events, "Unstaked")
}

func TestFinishedProposal(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.stake(n.owner, 5)
	n.send("dao_vote", n.owner, firstProposal, uint8(voteFor))
	n.passDeadline()
	n.send("dao_finishProposal", n.owner, firstProposal)

	n.reverts("Proposal is finished", "dao_finishProposal", n.owner, firstProposal)
	n.reverts("Proposal is finished", "dao_vote", n.owner, firstProposal, uint8(voteFor))
}

func TestVoteAfterDeadline(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.stake(n.owner, 5)
	n.send("dao_vote", n.owner, firstProposal, uint8(voteFor))
	n.passDeadline()
	n.reverts("Proposal reached deadline", "dao_vote", n.owner, firstProposal, uint8(voteFor))
}

func TestVoteWithoutPower(t *testing.T) {
	n := newNode(t)
	n.propose()
	n.reverts("You have no voting power", "dao_vote", n.owner, firstProposal, uint8(voteFor))
}
