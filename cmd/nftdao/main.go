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

// nftdao runs a development chain hosting the NFT ledger and its staking DAO.
package main

import (
	"fmt"
	"os"

	"github.com/mccoysc/nftdao/internal/config"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func newApp() *cli.App {
	return &cli.App{
		Name:  "nftdao",
		Usage: "development chain for the NFT staking DAO",
		Flags: []cli.Flag{
			configFileFlag,
			verbosityFlag,
			noColorFlag,
			httpAddrFlag,
			dataDirFlag,
		},
		Commands: []*cli.Command{
			serveCommand,
			demoCommand,
			dumpConfigCommand,
		},
		Before: func(ctx *cli.Context) error {
			cfg, err := makeConfig(ctx)
			if err != nil {
				return err
			}
			setupLogging(ctx.App.ErrWriter, cfg.Log)
			ctx.App.Metadata = map[string]interface{}{configKey: cfg}
			return nil
		},
	}
}

// configFrom returns the configuration prepared before the command ran.
func configFrom(ctx *cli.Context) *config.Config {
	return ctx.App.Metadata[configKey].(*config.Config)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
