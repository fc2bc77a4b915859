// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package export writes resolved balance sets to their external
// representations: CSV, JSON and a row-store database.
package export

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/starkbal/starkbal/balance"
	"github.com/starkbal/starkbal/co"
	"github.com/starkbal/starkbal/stark"
)

// Options selects the output formats and their destination directory.
type Options struct {
	CSV    bool
	JSON   bool
	SQLite bool
	Dir    string
}

// HasAny returns true if at least one output format is selected.
func (o *Options) HasAny() bool {
	return o.CSV || o.JSON || o.SQLite
}

// a flattened (token, account, balance) output row; token and account
// as padded hex, balance in decimal
type row [3]string

// Write emits the result set in every selected format. The selected
// writers run concurrently since they target distinct files.
func Write(set balance.ResultSet, opts *Options) error {
	rows := flatten(set)

	var group errgroup.Group
	if opts.CSV {
		group.Go(func() error {
			err := writeCSV(rows, filepath.Join(opts.Dir, "token_map.csv"))
			return errors.Wrap(err, "write csv")
		})
	}
	if opts.JSON {
		group.Go(func() error {
			err := writeJSON(set, filepath.Join(opts.Dir, "token_map.json"))
			return errors.Wrap(err, "write json")
		})
	}
	if opts.SQLite {
		group.Go(func() error {
			err := writeSQLite(rows, filepath.Join(opts.Dir, "token_map.db"))
			return errors.Wrap(err, "write sqlite")
		})
	}
	return group.Wait()
}

// flatten formats all rows up front, one token per worker, so the
// writers only move bytes. Tokens and accounts are sorted to keep the
// output stable across runs.
func flatten(set balance.ResultSet) []row {
	tokens := make([]stark.Felt, 0, len(set))
	for token := range set {
		tokens = append(tokens, token)
	}
	slices.SortFunc(tokens, stark.Felt.Cmp)

	perToken := make([][]row, len(tokens))
	<-co.Parallel(func(queue chan<- func()) {
		for i, token := range tokens {
			queue <- func() {
				balances := set[token]
				accounts := make([]stark.Felt, 0, len(balances))
				for account := range balances {
					accounts = append(accounts, account)
				}
				slices.SortFunc(accounts, stark.Felt.Cmp)

				rows := make([]row, 0, len(accounts))
				for _, account := range accounts {
					rows = append(rows, row{
						token.String(),
						account.String(),
						balances[account].Big().String(),
					})
				}
				perToken[i] = rows
			}
		}
	})

	var all []row
	for _, rows := range perToken {
		all = append(all, rows...)
	}
	return all
}

func writeCSV(rows []row, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Token", "Account", "Balance"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r[:]); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(set balance.ResultSet, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}

func writeSQLite(rows []row, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(
		`create table if not exists token_map (
			token text not null,
			account text not null,
			balance text not null
		);`,
	); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO token_map(token, account, balance) VALUES (?, ?, ?);")
	if err != nil {
		tx.Rollback()
		return err
	}
	for _, r := range rows {
		if _, err := stmt.Exec(r[0], r[1], r[2]); err != nil {
			stmt.Close()
			tx.Rollback()
			return err
		}
	}
	stmt.Close()
	return tx.Commit()
}
