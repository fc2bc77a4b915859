// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/starkbal/starkbal/balance"
	"github.com/starkbal/starkbal/export"
	"github.com/starkbal/starkbal/storagedb"
)

var (
	version   string
	gitCommit string
	log       = log15.New()
)

func fullVersion() string {
	if version == "" {
		return "dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "Starkbal",
		Usage:   "resolve token balances from a contract-storage history database",
		Flags: []cli.Flag{
			dbFlag,
			inputFlag,
			outDirFlag,
			csvFlag,
			jsonFlag,
			sqliteFlag,
			verbosityFlag,
		},
		Action: resolveAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveAction(ctx *cli.Context) error {
	initLogger(ctx)

	addresses, err := loadAddresses(ctx.String(inputFlag.Name))
	if err != nil {
		return err
	}
	log.Info("loaded address list",
		"accounts", len(addresses.Accounts),
		"tokens", len(addresses.Tokens),
	)

	db, err := openStorageDB(ctx.String(dbFlag.Name))
	if err != nil {
		return err
	}
	defer db.Close()

	resolver := balance.NewResolver(db, balance.BalancesSelector)
	start := time.Now()
	set, err := resolver.Resolve(context.Background(), addresses.Accounts, addresses.Tokens)
	if err != nil {
		return err
	}
	for _, token := range addresses.Tokens {
		log.Info("token summary", "token", token, "balances", len(set[token]))
	}
	log.Info("balances resolved", "elapsed", time.Since(start))

	opts := &export.Options{
		CSV:    ctx.Bool(csvFlag.Name),
		JSON:   ctx.Bool(jsonFlag.Name),
		SQLite: ctx.Bool(sqliteFlag.Name),
		Dir:    ctx.String(outDirFlag.Name),
	}
	if !opts.HasAny() {
		log.Warn("no output format selected, use --csv, --json or --sqlite")
		return nil
	}

	start = time.Now()
	if err := export.Write(set, opts); err != nil {
		return err
	}
	log.Info("results written", "dir", opts.Dir, "elapsed", time.Since(start))
	return nil
}

func openStorageDB(path string) (*storagedb.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("missing required flag --%s", dbFlag.Name)
	}
	return storagedb.New(path)
}
