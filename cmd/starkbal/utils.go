// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/starkbal/starkbal/stark"
)

type addressList struct {
	Accounts []stark.Felt `json:"accounts"`
	Tokens   []stark.Felt `json:"tokens"`
}

func loadAddresses(path string) (*addressList, error) {
	if path == "" {
		return nil, fmt.Errorf("missing required flag --%s", inputFlag.Name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read address list")
	}
	var list addressList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "parse address list")
	}
	return &list, nil
}

func initLogger(ctx *cli.Context) {
	logLevel := ctx.Int(verbosityFlag.Name)
	log15.Root().SetHandler(log15.LvlFilterHandler(log15.Lvl(logLevel), log15.StderrHandler))
}
