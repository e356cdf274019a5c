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

package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[chain]
chain_id = 1337
dev_accounts = 3

[dao]
proposal_period = 120
quorum_percent = 75

[rpc]
namespaces = ["dao"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Chain.ChainID != 1337 || cfg.Chain.DevAccounts != 3 {
		t.Errorf("chain section not applied: %+v", cfg.Chain)
	}
	if cfg.DAO.ProposalPeriod != 120 || cfg.DAO.QuorumPercent != 75 {
		t.Errorf("dao section not applied: %+v", cfg.DAO)
	}
	if len(cfg.RPC.Namespaces) != 1 || cfg.RPC.Namespaces[0] != "dao" {
		t.Errorf("namespaces = %v", cfg.RPC.Namespaces)
	}
	// Untouched settings keep their defaults.
	if cfg.NFT.InitialSupply != Default().NFT.InitialSupply {
		t.Errorf("initial supply = %d", cfg.NFT.InitialSupply)
	}
	if cfg.RPC.HTTPAddr != Default().RPC.HTTPAddr {
		t.Errorf("http addr = %q", cfg.RPC.HTTPAddr)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "[dao]\nquorum = 10\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		t.Fatalf("unexpected error type %T: %v", err, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvHTTPAddr, "0.0.0.0:9000")
	t.Setenv(EnvDataDir, "/tmp/nftdao")
	t.Setenv(EnvProposalPeriod, "30")

	path := writeConfig(t, "[dao]\nproposal_period = 120\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RPC.HTTPAddr != "0.0.0.0:9000" {
		t.Errorf("http addr = %q", cfg.RPC.HTTPAddr)
	}
	if cfg.Chain.DataDir != "/tmp/nftdao" {
		t.Errorf("datadir = %q", cfg.Chain.DataDir)
	}
	if cfg.DAO.ProposalPeriod != 30 {
		t.Errorf("proposal period = %d, env should win over file", cfg.DAO.ProposalPeriod)
	}
}

func TestEnvInvalidPeriod(t *testing.T) {
	t.Setenv(EnvProposalPeriod, "soon")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), EnvProposalPeriod) {
		t.Fatalf("expected %s error, got %v", EnvProposalPeriod, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero quorum", func(c *Config) { c.DAO.QuorumPercent = 0 }, ErrInvalidQuorum},
		{"quorum above 100", func(c *Config) { c.DAO.QuorumPercent = 101 }, ErrInvalidQuorum},
		{"full quorum", func(c *Config) { c.DAO.QuorumPercent = 100 }, nil},
		{"zero period", func(c *Config) { c.DAO.ProposalPeriod = 0 }, ErrInvalidPeriod},
		{"period above max", func(c *Config) { c.DAO.ProposalPeriod = math.MaxUint64 }, ErrInvalidPeriod},
		{"max period", func(c *Config) { c.DAO.ProposalPeriod = math.MaxInt64 }, nil},
		{"no accounts", func(c *Config) { c.Chain.DevAccounts = 0 }, ErrNoDevAccounts},
		{"zero chain id", func(c *Config) { c.Chain.ChainID = 0 }, ErrInvalidChainID},
		{"unknown namespace", func(c *Config) { c.RPC.Namespaces = []string{"eth"} }, ErrUnknownNamespace},
		{"no http addr", func(c *Config) { c.RPC.HTTPAddr = "" }, ErrMissingHTTPAddress},
		{"verbosity", func(c *Config) { c.Log.Verbosity = 9 }, ErrInvalidVerbosity},
		{"negative rate", func(c *Config) { c.RPC.RateLimit = -1 }, ErrInvalidRateLimit},
		{"rate without burst", func(c *Config) { c.RPC.RateLimit, c.RPC.RateBurst = 10, 0 }, ErrInvalidRateLimit},
		{"rate with burst", func(c *Config) { c.RPC.RateLimit = 10 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := Validate(cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateBalance(t *testing.T) {
	cfg := Default()
	cfg.Chain.DevBalance = "lots"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for malformed balance")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.DAO.QuorumPercent = 42

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, string(data))
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("dumped config does not load: %v", err)
	}
	if loaded.DAO.QuorumPercent != 42 {
		t.Errorf("quorum = %d", loaded.DAO.QuorumPercent)
	}
}

func TestGenesis(t *testing.T) {
	cfg := Default()
	cfg.Chain.DevBalance = "1000"
	g, err := cfg.Genesis()
	if err != nil {
		t.Fatal(err)
	}
	if g.DevBalance.Uint64() != 1000 {
		t.Errorf("dev balance = %s", g.DevBalance)
	}
	if g.ChainID.Uint64() != cfg.Chain.ChainID {
		t.Errorf("chain id = %s", g.ChainID)
	}
	if g.ProposalPeriod != cfg.DAO.ProposalPeriod || g.QuorumPercent != cfg.DAO.QuorumPercent {
		t.Errorf("dao settings not carried: %+v", g)
	}
}
