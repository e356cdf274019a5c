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
	"crypto/ecdsa"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/storage"
)

const counterABIJSON = `[
	{"type":"constructor","inputs":[{"name":"start","type":"uint256"}]},
	{"type":"function","name":"increment","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"get","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"incrementAndRevert","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"callOther","inputs":[{"name":"target","type":"address"},{"name":"failAfter","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"deposit","inputs":[],"outputs":[],"stateMutability":"payable"},
	{"type":"function","name":"withdraw","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"event","name":"Incremented","inputs":[{"name":"by","type":"address","indexed":true},{"name":"count","type":"uint256","indexed":false}],"anonymous":false}
]`

var (
	counterABI, _ = abi.JSON(strings.NewReader(counterABIJSON))
	errBoom       = NewRevert("boom")
	errAfterCall  = NewRevert("after call")
)

// counter is a small contract exercising storage, logs, value and nested
// calls.
type counter struct{}

func (counter) Name() string { return "Counter" }

func (counter) Construct(ctx *Context, input []byte) error {
	args, err := counterABI.Constructor.Inputs.Unpack(input)
	if err != nil {
		return err
	}
	ctx.Storage().SetBig(storage.Slot("count"), args[0].(*big.Int))
	return nil
}

func (c counter) Run(ctx *Context, input []byte) ([]byte, error) {
	method, args, err := UnpackCall(&counterABI, ctx, input)
	if err != nil {
		return nil, err
	}
	slot := storage.Slot("count")
	switch method.Name {
	case "increment":
		return nil, c.increment(ctx)
	case "get":
		return method.Outputs.Pack(ctx.Storage().GetBig(slot))
	case "incrementAndRevert":
		if err := c.increment(ctx); err != nil {
			return nil, err
		}
		return nil, errBoom
	case "callOther":
		data, _ := counterABI.Pack("increment")
		if _, err := ctx.Call(args[0].(common.Address), data, nil); err != nil {
			return nil, err
		}
		if args[1].(bool) {
			return nil, errAfterCall
		}
		return nil, nil
	case "deposit":
		return nil, nil
	case "withdraw":
		amount, _ := uint256.FromBig(args[1].(*big.Int))
		return nil, ctx.Transfer(args[0].(common.Address), amount)
	}
	return nil, ErrUnknownSelector
}

func (counter) increment(ctx *Context) error {
	slot := storage.Slot("count")
	count := new(big.Int).Add(ctx.Storage().GetBig(slot), common.Big1)
	ctx.Storage().SetBig(slot, count)
	return ctx.EmitEvent(counterABI.Events["Incremented"], ctx.Caller, count)
}

// fixedClock returns a clock that never advances, so block times only move
// through the parent rule and IncreaseTime.
func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

type testEnv struct {
	chain *Chain
	key   *ecdsa.PrivateKey
	from  common.Address
}

func newTestEnv(t *testing.T, journal *Journal) *testEnv {
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte("core test key")))
	if err != nil {
		t.Fatalf("Failed to derive key: %v", err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)
	chain, err := NewChain(&Config{
		GenesisTime: 1000,
		Alloc:       map[common.Address]*uint256.Int{from: uint256.NewInt(1_000_000)},
		Codes:       []Contract{counter{}},
		Clock:       fixedClock(1000),
		Journal:     journal,
	})
	if err != nil {
		t.Fatalf("Failed to create chain: %v", err)
	}
	return &testEnv{chain: chain, key: key, from: from}
}

func (e *testEnv) deploy(t *testing.T, start int64) common.Address {
	input, err := counterABI.Pack("", big.NewInt(start))
	if err != nil {
		t.Fatalf("Failed to pack constructor: %v", err)
	}
	receipt, result, err := e.chain.Transact(&Message{From: e.from, Code: "Counter", Data: input})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if result.Failed() {
		t.Fatalf("Constructor reverted: %v", result.Err)
	}
	return receipt.ContractAddress
}

func (e *testEnv) send(t *testing.T, to common.Address, value uint64, method string, args ...interface{}) *ExecutionResult {
	data, err := counterABI.Pack(method, args...)
	if err != nil {
		t.Fatalf("Failed to pack %s: %v", method, err)
	}
	_, result, err := e.chain.Transact(&Message{From: e.from, To: &to, Value: uint256.NewInt(value), Data: data})
	if err != nil {
		t.Fatalf("Transact %s failed: %v", method, err)
	}
	return result
}

func (e *testEnv) count(t *testing.T, addr common.Address) int64 {
	data, _ := counterABI.Pack("get")
	result, err := e.chain.Call(&Message{From: e.from, To: &addr, Data: data})
	if err != nil || result.Failed() {
		t.Fatalf("get failed: %v %v", err, result)
	}
	out, err := counterABI.Unpack("get", result.ReturnData)
	if err != nil {
		t.Fatalf("Failed to unpack get: %v", err)
	}
	return out[0].(*big.Int).Int64()
}
