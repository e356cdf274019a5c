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

// Package genesis sets up a chain with funded dev accounts and the NFT and
// DAO contracts deployed at predictable addresses.
package genesis

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/core"
	"github.com/mccoysc/nftdao/governance"
	"github.com/mccoysc/nftdao/token"
)

// ErrNoAccounts is returned for a genesis without dev accounts.
var ErrNoAccounts = errors.New("genesis needs at least one dev account")

// Genesis holds the chain bootstrap configuration
type Genesis struct {
	ChainID   *big.Int
	Timestamp uint64 // zero takes the clock

	// DevAccounts is the number of funded, unlocked accounts. The first
	// one owns and deploys the contracts.
	DevAccounts int
	DevBalance  *uint256.Int
	DevSeed     []byte // empty uses DefaultDevSeed

	InitialSupply  uint64 // per item type, minted to the owner
	ProposalPeriod uint64 // seconds
	QuorumPercent  uint64

	Clock   func() time.Time
	Journal *core.Journal
}

// DefaultGenesis returns the default genesis configuration
func DefaultGenesis() *Genesis {
	return &Genesis{
		ChainID:        core.DefaultChainID,
		DevAccounts:    10,
		DevBalance:     new(uint256.Int).Mul(uint256.NewInt(10_000), uint256.NewInt(1e18)), // 10000 ether
		InitialSupply:  token.DefaultInitialSupply,
		ProposalPeriod: governance.DefaultConfig().ProposalPeriod,
		QuorumPercent:  governance.DefaultConfig().QuorumPercent,
	}
}

// Deployment is a chain together with its accounts and contracts.
type Deployment struct {
	Chain    *core.Chain
	Keys     []*ecdsa.PrivateKey
	Accounts []common.Address
	NFT      *token.Client
	DAO      *governance.Client
}

// Owner returns the account owning the contracts.
func (d *Deployment) Owner() common.Address {
	return d.Accounts[0]
}

// Key returns the private key of a dev account.
func (d *Deployment) Key(addr common.Address) (*ecdsa.PrivateKey, bool) {
	for i, a := range d.Accounts {
		if a == addr {
			return d.Keys[i], true
		}
	}
	return nil, false
}

// Commit creates the chain and deploys the contracts. With a journal the
// recorded history is replayed first and deployments found there are kept.
func (g *Genesis) Commit() (*Deployment, error) {
	if g.DevAccounts < 1 {
		return nil, ErrNoAccounts
	}
	seed := g.DevSeed
	if len(seed) == 0 {
		seed = []byte(DefaultDevSeed)
	}
	keys, err := DevKeys(seed, g.DevAccounts)
	if err != nil {
		return nil, err
	}
	var (
		accounts = make([]common.Address, len(keys))
		alloc    = make(map[common.Address]*uint256.Int, len(keys))
		balance  = new(uint256.Int)
	)
	if g.DevBalance != nil {
		balance.Set(g.DevBalance)
	}
	for i, key := range keys {
		accounts[i] = crypto.PubkeyToAddress(key.PublicKey)
		alloc[accounts[i]] = new(uint256.Int).Set(balance)
	}
	chain, err := core.NewChain(&core.Config{
		ChainID:     g.ChainID,
		GenesisTime: g.Timestamp,
		Alloc:       alloc,
		Codes:       []core.Contract{token.New(), governance.New()},
		Clock:       g.Clock,
		Journal:     g.Journal,
	})
	if err != nil {
		return nil, err
	}
	d := &Deployment{Chain: chain, Keys: keys, Accounts: accounts}
	if err := g.deploy(d); err != nil {
		chain.Close()
		return nil, err
	}
	log.Info("Genesis committed", "owner", d.Owner(), "nft", d.NFT.Address(), "dao", d.DAO.Address())
	return d, nil
}

func (g *Genesis) deploy(d *Deployment) error {
	var (
		owner   = d.Owner()
		nftAddr = PredictNFTAddress(owner)
		daoAddr = PredictDAOAddress(owner)
	)
	if d.Chain.ContractAt(nftAddr) != nil {
		d.NFT = token.NewClient(d.Chain, nftAddr)
	} else {
		nft, _, err := token.Deploy(d.Chain, owner, new(big.Int).SetUint64(g.InitialSupply))
		if err != nil {
			return fmt.Errorf("deploy NFT: %w", err)
		}
		if nft.Address() != nftAddr {
			return fmt.Errorf("NFT deployed at %s, want %s", nft.Address().Hex(), nftAddr.Hex())
		}
		d.NFT = nft
	}
	if d.Chain.ContractAt(daoAddr) != nil {
		d.DAO = governance.NewClient(d.Chain, daoAddr)
		return nil
	}
	config := &governance.Config{ProposalPeriod: g.ProposalPeriod, QuorumPercent: g.QuorumPercent}
	dao, _, err := governance.Deploy(d.Chain, owner, nftAddr, config)
	if err != nil {
		return fmt.Errorf("deploy DAO: %w", err)
	}
	if dao.Address() != daoAddr {
		return fmt.Errorf("DAO deployed at %s, want %s", dao.Address().Hex(), daoAddr.Hex())
	}
	d.DAO = dao
	return nil
}
