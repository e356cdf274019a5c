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
	"github.com/mccoysc/nftdao/internal/config"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "log.nocolor",
		Usage: "disable colored terminal output",
	}
	httpAddrFlag = &cli.StringFlag{
		Name:  "http.addr",
		Usage: "JSON-RPC listen address",
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "directory for the message journal (empty keeps state in memory)",
	}
)

// makeConfig loads the configuration file and applies command line flags,
// which take precedence over the file and the environment.
func makeConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(configFileFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(noColorFlag.Name) {
		cfg.Log.NoColor = ctx.Bool(noColorFlag.Name)
	}
	if ctx.IsSet(httpAddrFlag.Name) {
		cfg.RPC.HTTPAddr = ctx.String(httpAddrFlag.Name)
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.Chain.DataDir = ctx.String(dataDirFlag.Name)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
