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

// TokenLedger is the part of the NFT contract the DAO depends on.
type TokenLedger interface {
	// TotalSupply returns the amount of an item type in existence
	TotalSupply(ctx *core.Context, item ItemType) (*big.Int, error)

	// Transfer moves tokens between holders with the DAO as operator
	Transfer(ctx *core.Context, from, to common.Address, item ItemType, amount *big.Int) error
}

// LedgerFactory binds a TokenLedger to the NFT contract at an address.
type LedgerFactory func(nft common.Address) TokenLedger
