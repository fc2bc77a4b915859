// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dbFlag = cli.StringFlag{
		Name:  "db",
		Usage: "path to the contract-storage history database",
	}
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "path to the JSON file listing accounts and tokens",
	}
	outDirFlag = cli.StringFlag{
		Name:  "out-dir",
		Value: ".",
		Usage: "directory for result files",
	}
	csvFlag = cli.BoolFlag{
		Name:  "csv",
		Usage: "write results to token_map.csv",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "write results to token_map.json",
	}
	sqliteFlag = cli.BoolFlag{
		Name:  "sqlite",
		Usage: "write results to token_map.db",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: int(log15.LvlInfo),
		Usage: "log verbosity (0-4)",
	}
)
