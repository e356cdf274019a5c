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

// Package config loads the node configuration. Values are layered with
// increasing priority: defaults, TOML file, environment, command line.
package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/mccoysc/nftdao/core"
	"github.com/mccoysc/nftdao/genesis"
	"github.com/mccoysc/nftdao/governance"
	"github.com/mccoysc/nftdao/token"
	"github.com/pelletier/go-toml/v2"
)

// Environment overrides.
const (
	EnvHTTPAddr       = "NFTDAO_HTTP_ADDR"
	EnvDataDir        = "NFTDAO_DATADIR"
	EnvProposalPeriod = "NFTDAO_PROPOSAL_PERIOD"
	EnvVerbosity      = "NFTDAO_VERBOSITY"
)

// Config is the complete node configuration
type Config struct {
	Chain ChainConfig `toml:"chain"`
	NFT   NFTConfig   `toml:"nft"`
	DAO   DAOConfig   `toml:"dao"`
	RPC   RPCConfig   `toml:"rpc"`
	Log   LogConfig   `toml:"log"`
}

// ChainConfig configures the execution host
type ChainConfig struct {
	ChainID     uint64 `toml:"chain_id"`
	GenesisTime uint64 `toml:"genesis_time"` // unix seconds, 0 = start time
	DevAccounts int    `toml:"dev_accounts"`
	DevBalance  string `toml:"dev_balance"` // wei, decimal
	DevSeed     string `toml:"dev_seed"`    // dev account key derivation
	DataDir     string `toml:"datadir"`     // empty keeps state in memory
}

// NFTConfig configures the token contract
type NFTConfig struct {
	InitialSupply uint64 `toml:"initial_supply"`
}

// DAOConfig configures the governance contract
type DAOConfig struct {
	ProposalPeriod uint64 `toml:"proposal_period"` // seconds
	QuorumPercent  uint64 `toml:"quorum_percent"`
}

// RPCConfig configures the JSON-RPC endpoint
type RPCConfig struct {
	HTTPAddr   string   `toml:"http_addr"`
	Namespaces []string `toml:"namespaces"`
	RateLimit  float64  `toml:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst  int      `toml:"rate_burst"`
}

// LogConfig configures logging
type LogConfig struct {
	Verbosity int  `toml:"verbosity"` // 0-5, geth levels
	NoColor   bool `toml:"no_color"`
}

// Default returns the default configuration
func Default() *Config {
	dao := governance.DefaultConfig()
	return &Config{
		Chain: ChainConfig{
			ChainID:     core.DefaultChainID.Uint64(),
			DevAccounts: 10,
			DevBalance:  "10000000000000000000000", // 10000 ether
			DevSeed:     genesis.DefaultDevSeed,
		},
		NFT: NFTConfig{InitialSupply: token.DefaultInitialSupply},
		DAO: DAOConfig{
			ProposalPeriod: dao.ProposalPeriod,
			QuorumPercent:  dao.QuorumPercent,
		},
		RPC: RPCConfig{
			HTTPAddr:   "127.0.0.1:8545",
			Namespaces: []string{"chain", "nft", "dao"},
			RateBurst:  100,
		},
		Log: LogConfig{Verbosity: 3},
	}
}

// Load reads the configuration file at path on top of the defaults and
// applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from the environment
func applyEnv(cfg *Config) error {
	cfg.RPC.HTTPAddr = getEnvOrDefault(EnvHTTPAddr, cfg.RPC.HTTPAddr)
	cfg.Chain.DataDir = getEnvOrDefault(EnvDataDir, cfg.Chain.DataDir)

	if v := os.Getenv(EnvProposalPeriod); v != "" {
		period, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvProposalPeriod, v, err)
		}
		cfg.DAO.ProposalPeriod = period
	}
	if v := os.Getenv(EnvVerbosity); v != "" {
		verbosity, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerbosity, v, err)
		}
		cfg.Log.Verbosity = verbosity
	}
	return nil
}

// getEnvOrDefault retrieves an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Genesis converts the chain and contract settings into a genesis configuration.
func (c *Config) Genesis() (*genesis.Genesis, error) {
	balance, err := devBalance(c.Chain.DevBalance)
	if err != nil {
		return nil, err
	}
	return &genesis.Genesis{
		ChainID:        new(big.Int).SetUint64(c.Chain.ChainID),
		Timestamp:      c.Chain.GenesisTime,
		DevAccounts:    c.Chain.DevAccounts,
		DevBalance:     balance,
		DevSeed:        []byte(c.Chain.DevSeed),
		InitialSupply:  c.NFT.InitialSupply,
		ProposalPeriod: c.DAO.ProposalPeriod,
		QuorumPercent:  c.DAO.QuorumPercent,
	}, nil
}

func devBalance(s string) (*uint256.Int, error) {
	balance, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid dev_balance %q: %w", s, err)
	}
	return balance, nil
}
