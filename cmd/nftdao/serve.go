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

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mccoysc/nftdao/core"
	"github.com/mccoysc/nftdao/genesis"
	"github.com/mccoysc/nftdao/internal/api"
	"github.com/mccoysc/nftdao/internal/config"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "run the chain and serve JSON-RPC over HTTP",
	Action: serve,
}

func serve(ctx *cli.Context) error {
	sigctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := configFrom(ctx)
	d, err := openDeployment(cfg)
	if err != nil {
		return err
	}
	defer d.Chain.Close()

	listener, err := net.Listen("tcp", cfg.RPC.HTTPAddr)
	if err != nil {
		return err
	}
	return runServer(sigctx, listener, d, cfg.RPC)
}

// openDeployment replays the journal in the data directory, if any, and
// commits the genesis deployment.
func openDeployment(cfg *config.Config) (*genesis.Deployment, error) {
	g, err := cfg.Genesis()
	if err != nil {
		return nil, err
	}
	if cfg.Chain.DataDir != "" {
		journal, err := core.OpenJournal(cfg.Chain.DataDir)
		if err != nil {
			return nil, err
		}
		g.Journal = journal
	}
	d, err := g.Commit()
	if err != nil {
		if g.Journal != nil {
			g.Journal.Close()
		}
		return nil, err
	}
	return d, nil
}

// runServer serves the APIs on listener until ctx is cancelled.
func runServer(ctx context.Context, listener net.Listener, d *genesis.Deployment, cfg config.RPCConfig) error {
	rpcServer, err := api.NewServer(api.NewBackend(d), cfg.Namespaces)
	if err != nil {
		return err
	}
	defer rpcServer.Stop()

	httpServer := &http.Server{
		Handler:           api.RateLimit(rpcServer, cfg.RateLimit, cfg.RateBurst),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server started", "endpoint", "http://"+listener.Addr().String(), "namespaces", cfg.Namespaces)
		if err := httpServer.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("HTTP server stopping")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
