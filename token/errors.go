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

package token

import "github.com/mccoysc/nftdao/core"

var (
	ErrLengthMismatch      = core.NewRevert("ERC1155: accounts and ids length mismatch")
	ErrAmountsMismatch     = core.NewRevert("ERC1155: ids and amounts length mismatch")
	ErrApproveSelf         = core.NewRevert("ERC1155: setting approval status for self")
	ErrNotApproved         = core.NewRevert("ERC1155: caller is not token owner or approved")
	ErrTransferToZero      = core.NewRevert("ERC1155: transfer to the zero address")
	ErrMintToZero          = core.NewRevert("ERC1155: mint to the zero address")
	ErrInsufficientBalance = core.NewRevert("ERC1155: insufficient balance for transfer")
	ErrSupplyOverflow      = core.NewRevert("ERC1155: supply overflow")
	ErrNotReceiver         = core.NewRevert("ERC1155: transfer to non-ERC1155Receiver implementer")
	ErrRejected            = core.NewRevert("ERC1155: ERC1155Receiver rejected tokens")
	ErrNotOwner            = core.NewRevert("Ownable: caller is not the owner")
	ErrInvalidItemType     = core.NewRevert("Invalid item type")
)
