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

package main

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/genesis"
	"github.com/mccoysc/nftdao/governance"
	"github.com/mccoysc/nftdao/internal/config"
	"github.com/urfave/cli/v2"
)

var (
	stepStyle    = color.New(color.FgCyan)
	successStyle = color.New(color.FgGreen, color.Bold)
	rejectStyle  = color.New(color.FgRed, color.Bold)
	valueStyle   = color.New(color.FgHiWhite)
)

var demoCommand = &cli.Command{
	Name:   "demo",
	Usage:  "run a succeeding and a rejected proposal against a fresh chain",
	Action: func(ctx *cli.Context) error { return runDemo(ctx.App.Writer, configFrom(ctx)) },
}

// demoAccounts is the number of dev accounts the scenario uses.
const demoAccounts = 4

type demo struct {
	w      io.Writer
	d      *genesis.Deployment
	period uint64
}

func runDemo(w io.Writer, cfg *config.Config) error {
	g, err := cfg.Genesis()
	if err != nil {
		return err
	}
	if g.DevAccounts < demoAccounts {
		g.DevAccounts = demoAccounts
	}
	d, err := g.Commit()
	if err != nil {
		return err
	}
	defer d.Chain.Close()

	s := &demo{w: w, d: d, period: g.ProposalPeriod}
	s.step("NFT deployed at %s, DAO deployed at %s", valueStyle.Sprint(d.NFT.Address().Hex()), valueStyle.Sprint(d.DAO.Address().Hex()))

	supply := new(big.Int).SetUint64(g.InitialSupply)
	// A stake of three quarters of the supply meets any quorum up to 75%.
	large := new(big.Int).Div(new(big.Int).Mul(supply, big.NewInt(3)), big.NewInt(4))
	if large.Sign() == 0 {
		large = supply
	}
	if err := s.proposal(governance.ItemGold, d.Accounts[1], large, d.Accounts[2]); err != nil {
		return err
	}
	// A single token stays below the quorum.
	return s.proposal(governance.ItemSilver, d.Accounts[1], big.NewInt(1), d.Accounts[3])
}

func (s *demo) step(format string, args ...interface{}) {
	stepStyle.Fprint(s.w, "==> ")
	fmt.Fprintf(s.w, format+"\n", args...)
}

// proposal stakes amount tokens for voter, funds the treasury and runs a
// proposal paying recipient through to its outcome.
func (s *demo) proposal(item governance.ItemType, voter common.Address, amount *big.Int, recipient common.Address) error {
	var (
		owner    = s.d.Owner()
		nft, dao = s.d.NFT, s.d.DAO
		donation = uint256.NewInt(10_000)
	)
	if _, err := nft.SafeTransferFrom(owner, owner, voter, uint8(item), amount, nil); err != nil {
		return fmt.Errorf("transfer %s: %w", item, err)
	}
	if _, err := nft.SetApprovalForAll(voter, dao.Address(), true); err != nil {
		return err
	}
	if _, err := dao.StakeNFT(voter, item, amount); err != nil {
		return fmt.Errorf("stake %s: %w", item, err)
	}
	s.step("%s staked %s %s tokens", voter.Hex(), valueStyle.Sprint(amount), item)

	if _, err := dao.Donate(owner, item, donation); err != nil {
		return fmt.Errorf("donate: %w", err)
	}
	s.step("Donated %s wei to the %s treasury", valueStyle.Sprint(donation), item)

	id, _, err := dao.AddProposal(owner, item, recipient, fmt.Sprintf("pay the %s treasury to %s", item, recipient.Hex()))
	if err != nil {
		return fmt.Errorf("add proposal: %w", err)
	}
	if _, err := dao.Vote(voter, id, governance.VoteFor); err != nil {
		return fmt.Errorf("vote: %w", err)
	}
	s.step("Proposal %d created and voted FOR", id)

	if _, err := s.d.Chain.IncreaseTime(s.period + 1); err != nil {
		return err
	}
	before := s.d.Chain.Balance(recipient)
	status, _, err := dao.FinishProposal(owner, id)
	if err != nil {
		return fmt.Errorf("finish proposal: %w", err)
	}
	paid := new(uint256.Int).Sub(s.d.Chain.Balance(recipient), before)

	style := rejectStyle
	if status == governance.ProposalStatusSucceeded {
		style = successStyle
	}
	s.step("Proposal %d %s, recipient received %s wei", id, style.Sprint(status), valueStyle.Sprint(paid))
	return nil
}
