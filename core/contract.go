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

package core

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/storage"
)

// maxCallDepth bounds nested contract calls.
const maxCallDepth = 1024

// Contract is native contract code. One instance serves every account
// deployed with it, so implementations keep their state in storage.
type Contract interface {
	// Name identifies the code in deployments and journals.
	Name() string

	// Run executes a call with ABI encoded input.
	Run(ctx *Context, input []byte) ([]byte, error)
}

// Constructor is implemented by contracts that initialise their storage on
// deployment.
type Constructor interface {
	Construct(ctx *Context, input []byte) error
}

// Context is the execution environment of one contract frame.
type Context struct {
	// Caller is the account that invoked this frame.
	Caller common.Address

	// Origin is the sender of the enclosing message.
	Origin common.Address

	// Self is the account whose code is running.
	Self common.Address

	// Value is the native amount transferred into this frame.
	Value *uint256.Int

	BlockNumber uint64
	Timestamp   uint64

	// ReadOnly is set for calls whose effects are discarded.
	ReadOnly bool

	env   *env
	depth int
}

// env is shared by all frames of a message.
type env struct {
	chain *Chain
	state *state.StateDB
	logs  []*types.Log
}

// Storage returns the storage of the executing contract.
func (c *Context) Storage() *storage.Store {
	return storage.New(c.env.state, c.Self)
}

// BalanceOf returns the native balance of addr.
func (c *Context) BalanceOf(addr common.Address) *uint256.Int {
	return c.env.state.GetBalance(addr)
}

// IsContract reports whether addr runs code.
func (c *Context) IsContract(addr common.Address) bool {
	return c.env.chain.contracts[addr] != nil
}

// Transfer moves native funds from the executing contract to addr
// without running code at the destination.
func (c *Context) Transfer(to common.Address, amount *uint256.Int) error {
	return transfer(c.env.state, c.Self, to, amount)
}

// Call invokes the contract at addr with the executing contract as caller.
// A failing callee has its effects rolled back and its error returned.
func (c *Context) Call(to common.Address, input []byte, value *uint256.Int) ([]byte, error) {
	frame := &Context{
		Caller:      c.Self,
		Origin:      c.Origin,
		Self:        to,
		Value:       value,
		BlockNumber: c.BlockNumber,
		Timestamp:   c.Timestamp,
		ReadOnly:    c.ReadOnly,
		env:         c.env,
		depth:       c.depth + 1,
	}
	return c.env.chain.run(frame, input)
}

// EmitLog appends a log entry for the executing contract.
func (c *Context) EmitLog(topics []common.Hash, data []byte) {
	c.env.logs = append(c.env.logs, &types.Log{
		Address:     c.Self,
		Topics:      topics,
		Data:        data,
		BlockNumber: c.BlockNumber,
	})
}

// EmitEvent logs ev with args in declaration order. Indexed arguments
// become topics, the rest is ABI encoded into the log data.
func (c *Context) EmitEvent(ev abi.Event, args ...interface{}) error {
	if len(args) != len(ev.Inputs) {
		return fmt.Errorf("event %s: have %d arguments, want %d", ev.Name, len(args), len(ev.Inputs))
	}
	var (
		topics = []common.Hash{ev.ID}
		values []interface{}
	)
	for i, input := range ev.Inputs {
		if !input.Indexed {
			values = append(values, args[i])
			continue
		}
		topic, err := topicOf(args[i])
		if err != nil {
			return fmt.Errorf("event %s: %w", ev.Name, err)
		}
		topics = append(topics, topic)
	}
	data, err := ev.Inputs.NonIndexed().Pack(values...)
	if err != nil {
		return fmt.Errorf("event %s: %w", ev.Name, err)
	}
	c.EmitLog(topics, data)
	return nil
}

func topicOf(v interface{}) (common.Hash, error) {
	switch v := v.(type) {
	case common.Address:
		return common.BytesToHash(v.Bytes()), nil
	case common.Hash:
		return v, nil
	case *big.Int:
		return common.BigToHash(v), nil
	case uint8:
		return common.BigToHash(new(big.Int).SetUint64(uint64(v))), nil
	case uint64:
		return common.BigToHash(new(big.Int).SetUint64(v)), nil
	case bool:
		if v {
			return common.BigToHash(common.Big1), nil
		}
		return common.Hash{}, nil
	}
	return common.Hash{}, fmt.Errorf("unsupported indexed argument type %T", v)
}

// UnpackCall resolves the method addressed by input and decodes its
// arguments. Value sent to a non-payable method is rejected.
func UnpackCall(contractABI *abi.ABI, ctx *Context, input []byte) (*abi.Method, []interface{}, error) {
	if len(input) < 4 {
		return nil, nil, ErrMissingSelector
	}
	method, err := contractABI.MethodById(input[:4])
	if err != nil {
		return nil, nil, ErrUnknownSelector
	}
	if !method.IsPayable() && !ctx.Value.IsZero() {
		return nil, nil, ErrNonPayable
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, nil, Revertf("invalid arguments for %s", method.Name)
	}
	return method, args, nil
}

func transfer(db *state.StateDB, from, to common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	db.SubBalance(from, amount, tracingTransfer)
	db.AddBalance(to, amount, tracingTransfer)
	return nil
}
