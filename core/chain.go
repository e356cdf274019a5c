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

// Package core implements a single node execution host for native
// contracts. Every message is executed atomically in its own block on top
// of a go-ethereum state database.
package core

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/triedb"
	"github.com/holiman/uint256"
)

const tracingTransfer = tracing.BalanceChangeTransfer

// DefaultChainID is used when the configuration leaves the chain id unset.
var DefaultChainID = big.NewInt(31337)

// Config holds the parameters of a chain.
type Config struct {
	ChainID *big.Int

	// GenesisTime is the timestamp of block 0. Zero takes the clock.
	GenesisTime uint64

	// Alloc credits native funds in the genesis state.
	Alloc map[common.Address]*uint256.Int

	// Codes lists the contract implementations that can be deployed.
	Codes []Contract

	// Clock returns the wall clock. Defaults to time.Now.
	Clock func() time.Time

	// Journal persists executed messages. Existing entries are replayed
	// when the chain is created.
	Journal *Journal
}

// Chain executes messages sequentially against a state database.
type Chain struct {
	mu sync.Mutex

	chainID *big.Int
	signer  types.Signer
	clock   func() time.Time
	offset  uint64
	floor   uint64 // earliest timestamp of the next block

	state     *state.StateDB
	head      *types.Header
	codes     map[string]Contract
	contracts map[common.Address]Contract
	nonces    map[common.Address]uint64
	receipts  map[common.Hash]*types.Receipt

	journal   *Journal
	replaying bool
	logFeed   event.Feed
}

// NewChain creates a chain from its genesis configuration and replays the
// journal if one is configured.
func NewChain(cfg *Config) (*Chain, error) {
	chainID := cfg.ChainID
	if chainID == nil {
		chainID = DefaultChainID
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	db := rawdb.NewMemoryDatabase()
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabase(triedb.NewDatabase(db, nil), nil))
	if err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}
	for addr, amount := range cfg.Alloc {
		statedb.AddBalance(addr, amount, tracing.BalanceIncreaseGenesisBalance)
	}
	genesisTime := cfg.GenesisTime
	if genesisTime == 0 {
		genesisTime = uint64(clock().Unix())
	}
	var entries []*JournalEntry
	if cfg.Journal != nil {
		if entries, err = cfg.Journal.Entries(); err != nil {
			return nil, err
		}
		if genesisTime, err = journalGenesis(cfg.Journal, entries, genesisTime); err != nil {
			return nil, err
		}
	}
	c := &Chain{
		chainID:   new(big.Int).Set(chainID),
		signer:    types.LatestSignerForChainID(chainID),
		clock:     clock,
		state:     statedb,
		codes:     make(map[string]Contract),
		contracts: make(map[common.Address]Contract),
		nonces:    make(map[common.Address]uint64),
		receipts:  make(map[common.Hash]*types.Receipt),
	}
	c.head = &types.Header{
		Number:     new(big.Int),
		Time:       genesisTime,
		Difficulty: new(big.Int),
		Root:       statedb.IntermediateRoot(false),
	}
	for _, code := range cfg.Codes {
		c.codes[code.Name()] = code
	}
	if cfg.Journal != nil {
		if err := c.replay(entries); err != nil {
			return nil, err
		}
		c.journal = cfg.Journal
	}
	log.Info("Initialised chain", "chainid", chainID, "number", c.head.Number, "root", c.head.Root)
	return c, nil
}

// ChainID returns the chain id used by the transaction signer.
func (c *Chain) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Signer returns the signer accepted by SendTransaction.
func (c *Chain) Signer() types.Signer {
	return c.signer
}

// Head returns the latest block header.
func (c *Chain) Head() *types.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.CopyHeader(c.head)
}

// Balance returns the native balance of addr.
func (c *Chain) Balance(addr common.Address) *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(uint256.Int).Set(c.state.GetBalance(addr))
}

// Nonce returns the number of messages sent by addr.
func (c *Chain) Nonce(addr common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[addr]
}

// ContractAt returns the code deployed at addr, or nil.
func (c *Chain) ContractAt(addr common.Address) Contract {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contracts[addr]
}

// Contracts lists the deployed contracts by address.
func (c *Chain) Contracts() []common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	addrs := make([]common.Address, 0, len(c.contracts))
	for addr := range c.contracts {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Cmp(addrs[j]) < 0 })
	return addrs
}

// Receipt returns the receipt of an executed message.
func (c *Chain) Receipt(hash common.Hash) *types.Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipts[hash]
}

// SubscribeLogs delivers the logs of every successful message.
func (c *Chain) SubscribeLogs(ch chan<- []*types.Log) event.Subscription {
	return c.logFeed.Subscribe(ch)
}

// IncreaseTime moves the clock of future blocks forward and returns the
// accumulated offset. The next block is at least seconds after the head.
func (c *Chain) IncreaseTime(seconds uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.journal != nil {
		if err := c.journal.Append(&JournalEntry{Kind: EntryTimeShift, Time: seconds}); err != nil {
			return c.offset, err
		}
	}
	c.shiftTime(seconds)
	log.Debug("Increased chain time", "seconds", seconds, "offset", c.offset)
	return c.offset, nil
}

// shiftTime adds seconds to the clock offset and makes sure the next block
// is at least that far after the head.
func (c *Chain) shiftTime(seconds uint64) {
	c.offset += seconds
	if t := c.head.Time + seconds; t > c.floor {
		c.floor = t
	}
}

// Close releases the journal.
func (c *Chain) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.journal == nil {
		return nil
	}
	err := c.journal.Close()
	c.journal = nil
	return err
}

// Transact executes msg in a new block. Execution failures are reported
// through the result and a failed receipt; the returned error signals a
// message that could not be executed at all.
func (c *Chain) Transact(msg *Message) (*types.Receipt, *ExecutionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transact(msg, common.Hash{}, 0)
}

// SendTransaction executes a signed transaction.
func (c *Chain) SendTransaction(tx *types.Transaction) (*types.Receipt, *ExecutionResult, error) {
	from, err := types.Sender(c.signer, tx)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid transaction: %w", err)
	}
	if tx.To() == nil {
		return nil, nil, ErrContractCreation
	}
	value, overflow := uint256.FromBig(tx.Value())
	if overflow {
		return nil, nil, ErrInsufficientFunds
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	switch nonce := c.nonces[from]; {
	case tx.Nonce() < nonce:
		return nil, nil, fmt.Errorf("%w: address %s, tx: %d state: %d", ErrNonceTooLow, from.Hex(), tx.Nonce(), nonce)
	case tx.Nonce() > nonce:
		return nil, nil, fmt.Errorf("%w: address %s, tx: %d state: %d", ErrNonceTooHigh, from.Hex(), tx.Nonce(), nonce)
	}
	msg := &Message{From: from, To: tx.To(), Value: value, Data: tx.Data()}
	return c.transact(msg, tx.Hash(), 0)
}

// Call executes msg against the head state and discards its effects.
func (c *Chain) Call(msg *Message) (*ExecutionResult, error) {
	if msg.To == nil {
		return nil, ErrReadOnlyDeployment
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state.Snapshot()
	defer c.state.RevertToSnapshot(snap)

	value := msg.value()
	if c.state.GetBalance(msg.From).Cmp(value) < 0 {
		return nil, ErrInsufficientFunds
	}
	frame := &Context{
		Caller:      msg.From,
		Origin:      msg.From,
		Self:        *msg.To,
		Value:       value,
		BlockNumber: c.head.Number.Uint64() + 1,
		Timestamp:   c.nextTime(),
		ReadOnly:    true,
		env:         &env{chain: c, state: c.state},
	}
	ret, err := c.run(frame, msg.Data)
	return &ExecutionResult{ReturnData: ret, Err: err}, nil
}

func (c *Chain) nextTime() uint64 {
	now := uint64(c.clock().Unix()) + c.offset
	if now < c.floor {
		now = c.floor
	}
	if now <= c.head.Time {
		now = c.head.Time + 1
	}
	return now
}

// transact executes msg in a new block. A non-zero timestamp forces the
// block time, which is how journal entries are replayed.
func (c *Chain) transact(msg *Message, hash common.Hash, timestamp uint64) (*types.Receipt, *ExecutionResult, error) {
	code, err := c.checkMessage(msg)
	if err != nil {
		return nil, nil, err
	}
	if timestamp == 0 {
		timestamp = c.nextTime()
	} else if timestamp <= c.head.Time {
		return nil, nil, fmt.Errorf("%w: %d <= %d", ErrTimestampTooOld, timestamp, c.head.Time)
	}
	nonce := c.nonces[msg.From]
	if hash == (common.Hash{}) {
		hash = msg.hash(nonce)
	}
	header := &types.Header{
		ParentHash: c.head.Hash(),
		Number:     new(big.Int).Add(c.head.Number, common.Big1),
		Time:       timestamp,
		Difficulty: new(big.Int),
	}
	var (
		value  = msg.value()
		env    = &env{chain: c, state: c.state}
		result = new(ExecutionResult)
		snap   = c.state.Snapshot()
	)
	frame := &Context{
		Caller:      msg.From,
		Origin:      msg.From,
		Value:       value,
		BlockNumber: header.Number.Uint64(),
		Timestamp:   header.Time,
		env:         env,
	}
	if msg.To == nil {
		frame.Self = crypto.CreateAddress(msg.From, nonce)
		result.ContractAddress = frame.Self
		result.Err = c.create(frame, code, msg.Data)
	} else {
		frame.Self = *msg.To
		result.ReturnData, result.Err = c.run(frame, msg.Data)
	}
	// A message that cannot be journaled is rolled back and never sealed.
	if c.journal != nil && !c.replaying {
		if err := c.journal.Append(newMessageEntry(msg, hash, timestamp)); err != nil {
			c.state.RevertToSnapshot(snap)
			if msg.To == nil && !result.Failed() {
				delete(c.contracts, frame.Self)
			}
			log.Error("Failed to journal message", "hash", hash, "err", err)
			return nil, nil, fmt.Errorf("journal message: %w", err)
		}
	}
	c.nonces[msg.From] = nonce + 1
	header.Root = c.state.IntermediateRoot(false)

	receipt := &types.Receipt{
		Type:        types.LegacyTxType,
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		BlockHash:   header.Hash(),
		BlockNumber: new(big.Int).Set(header.Number),
		Logs:        []*types.Log{},
	}
	if result.Failed() {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		receipt.ContractAddress = result.ContractAddress
		receipt.Logs = env.logs
		for i, l := range receipt.Logs {
			l.TxHash = hash
			l.BlockHash = receipt.BlockHash
			l.Index = uint(i)
		}
	}
	c.head = header
	c.receipts[hash] = receipt

	if result.Failed() {
		log.Debug("Message reverted", "hash", hash, "number", header.Number, "err", result.Err)
	} else {
		log.Debug("Executed message", "hash", hash, "number", header.Number, "logs", len(receipt.Logs))
	}
	if len(receipt.Logs) > 0 && !c.replaying {
		c.logFeed.Send(receipt.Logs)
	}
	return receipt, result, nil
}

// checkMessage validates the parts of msg that decide whether it can be
// executed at all.
func (c *Chain) checkMessage(msg *Message) (Contract, error) {
	if c.state.GetBalance(msg.From).Cmp(msg.value()) < 0 {
		return nil, fmt.Errorf("%w: address %s", ErrInsufficientFunds, msg.From.Hex())
	}
	if msg.To != nil {
		return nil, nil
	}
	code, ok := c.codes[msg.Code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCode, msg.Code)
	}
	return code, nil
}

// create deploys code at frame.Self and runs its constructor.
func (c *Chain) create(frame *Context, code Contract, input []byte) error {
	if c.contracts[frame.Self] != nil {
		return ErrContractExists
	}
	snap := c.state.Snapshot()
	c.state.CreateAccount(frame.Self)
	c.contracts[frame.Self] = code

	err := transfer(c.state, frame.Caller, frame.Self, frame.Value)
	if ctor, ok := code.(Constructor); ok && err == nil {
		err = ctor.Construct(frame, input)
	}
	if err != nil {
		c.state.RevertToSnapshot(snap)
		delete(c.contracts, frame.Self)
		frame.env.logs = frame.env.logs[:0]
		return err
	}
	log.Info("Deployed contract", "code", code.Name(), "address", frame.Self)
	return nil
}

// run executes a call frame, rolling back its state changes and logs if
// it fails.
func (c *Chain) run(frame *Context, input []byte) ([]byte, error) {
	if frame.depth > maxCallDepth {
		return nil, ErrDepth
	}
	if frame.Value == nil {
		frame.Value = new(uint256.Int)
	}
	var (
		snap  = c.state.Snapshot()
		nlogs = len(frame.env.logs)
	)
	ret, err := c.execute(frame, input)
	if err != nil {
		c.state.RevertToSnapshot(snap)
		frame.env.logs = frame.env.logs[:nlogs]
		return nil, err
	}
	return ret, nil
}

func (c *Chain) execute(frame *Context, input []byte) ([]byte, error) {
	if err := transfer(c.state, frame.Caller, frame.Self, frame.Value); err != nil {
		return nil, err
	}
	code := c.contracts[frame.Self]
	if code == nil {
		return nil, nil
	}
	return code.Run(frame, input)
}

// replay re-executes the entries of a journal.
func (c *Chain) replay(entries []*JournalEntry) error {
	c.replaying = true
	defer func() { c.replaying = false }()

	for i, entry := range entries {
		switch entry.Kind {
		case EntryGenesis:
		case EntryTimeShift:
			c.shiftTime(entry.Time)
		case EntryMessage:
			if _, _, err := c.transact(entry.message(), entry.Hash, entry.Time); err != nil {
				return fmt.Errorf("replay journal entry %d: %w", i, err)
			}
		default:
			return fmt.Errorf("replay journal entry %d: unknown kind %d", i, entry.Kind)
		}
	}
	if len(entries) > 0 {
		log.Info("Replayed journal", "entries", len(entries), "number", c.head.Number, "root", c.head.Root)
	}
	return nil
}

// journalGenesis returns the genesis time recorded in a journal. A new
// journal records t.
func journalGenesis(j *Journal, entries []*JournalEntry, t uint64) (uint64, error) {
	if len(entries) == 0 {
		return t, j.Append(&JournalEntry{Kind: EntryGenesis, Time: t})
	}
	if entries[0].Kind == EntryGenesis {
		return entries[0].Time, nil
	}
	return t, nil
}

// hashData is hashed to identify unsigned messages.
type hashData struct {
	From  common.Address
	Nonce uint64
	To    *common.Address `rlp:"nil"`
	Code  string
	Value *big.Int
	Data  []byte
}

func (m *Message) hash(nonce uint64) common.Hash {
	enc, _ := rlp.EncodeToBytes(&hashData{
		From:  m.From,
		Nonce: nonce,
		To:    m.To,
		Code:  m.Code,
		Value: m.value().ToBig(),
		Data:  m.Data,
	})
	return crypto.Keccak256Hash(enc)
}
