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

package api

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// APIs returns the services offered by the node
func APIs(b *Backend) []rpc.API {
	return []rpc.API{
		{Namespace: "chain", Service: NewChainAPI(b)},
		{Namespace: "nft", Service: NewNFTAPI(b)},
		{Namespace: "dao", Service: NewDAOAPI(b)},
	}
}

// NewServer creates an RPC server exposing the given namespaces. An empty
// list exposes all of them.
func NewServer(b *Backend, namespaces []string) (*rpc.Server, error) {
	enabled := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		enabled[ns] = true
	}
	srv := rpc.NewServer()
	for _, api := range APIs(b) {
		if len(enabled) > 0 && !enabled[api.Namespace] {
			continue
		}
		if err := srv.RegisterName(api.Namespace, api.Service); err != nil {
			srv.Stop()
			return nil, fmt.Errorf("register %s api: %w", api.Namespace, err)
		}
	}
	return srv, nil
}
