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
	"fmt"

	"github.com/mccoysc/nftdao/governance"
)

// Validation errors
var (
	ErrInvalidQuorum      = errors.New("quorum_percent must be within 1..100")
	ErrInvalidPeriod      = errors.New("proposal_period must be within 1..9223372036854775807")
	ErrNoDevAccounts      = errors.New("dev_accounts must be at least 1")
	ErrInvalidChainID     = errors.New("chain_id must be positive")
	ErrInvalidVerbosity   = errors.New("verbosity must be within 0..5")
	ErrUnknownNamespace   = errors.New("unknown rpc namespace")
	ErrMissingHTTPAddress = errors.New("http_addr must be set")
	ErrInvalidRateLimit   = errors.New("rate_limit must not be negative and rate_burst must be positive")
)

// knownNamespaces are the API namespaces the node can serve.
var knownNamespaces = map[string]bool{"chain": true, "nft": true, "dao": true}

// Validate checks the configuration for consistency
func Validate(cfg *Config) error {
	if cfg.Chain.ChainID == 0 {
		return ErrInvalidChainID
	}
	if cfg.Chain.DevAccounts < 1 {
		return ErrNoDevAccounts
	}
	if _, err := devBalance(cfg.Chain.DevBalance); err != nil {
		return err
	}
	if cfg.DAO.ProposalPeriod == 0 || cfg.DAO.ProposalPeriod > governance.MaxProposalPeriod {
		return fmt.Errorf("%w: %d", ErrInvalidPeriod, cfg.DAO.ProposalPeriod)
	}
	if cfg.DAO.QuorumPercent == 0 || cfg.DAO.QuorumPercent > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidQuorum, cfg.DAO.QuorumPercent)
	}
	if cfg.RPC.HTTPAddr == "" {
		return ErrMissingHTTPAddress
	}
	if cfg.RPC.RateLimit < 0 || (cfg.RPC.RateLimit > 0 && cfg.RPC.RateBurst < 1) {
		return ErrInvalidRateLimit
	}
	for _, ns := range cfg.RPC.Namespaces {
		if !knownNamespaces[ns] {
			return fmt.Errorf("%w: %q", ErrUnknownNamespace, ns)
		}
	}
	if cfg.Log.Verbosity < 0 || cfg.Log.Verbosity > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidVerbosity, cfg.Log.Verbosity)
	}
	return nil
}
