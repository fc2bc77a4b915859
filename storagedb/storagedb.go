// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package storagedb provides read access to a contract-storage history
// database: for every (contract, slot) pair it records each value ever
// written together with the block number of the write.
package storagedb

import (
	"context"
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Record is the authoritative row for one storage slot of a contract:
// the value as of the highest block number on record. Slot and Value
// are raw hex strings as stored; the history may contain rows that do
// not decode into field elements and interpreting them is up to the
// caller.
type Record struct {
	Contract    []byte
	Slot        string
	Value       string
	BlockNumber int64
}

// Update is a single storage write, used to populate the history.
type Update struct {
	Contract    []byte
	Slot        []byte
	Value       []byte
	BlockNumber int64
}

// DB wraps a storage-history database. The underlying connection is
// exclusively owned and limited to one, so queries are serialized.
type DB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open the storage db at given path.
func New(path string) (storageDB *DB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if storageDB == nil {
			db.Close()
		}
	}()
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(storageTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &DB{
		path,
		db,
		driverVer,
		newStmtCache(db),
	}, nil
}

// NewMem create a storage db in ram.
func NewMem() (*DB, error) {
	return New(":memory:")
}

// Close close the storage db.
func (db *DB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *DB) Path() string {
	return db.path
}

// latest-write-wins: MAX(block_number) per (contract, slot) group picks
// the value written at the highest block.
const latestValuesQuery = `SELECT
	hex(sa.storage_address),
	hex(su.storage_value),
	MAX(su.block_number)
FROM storage_updates su
	JOIN storage_addresses sa ON sa.id = su.storage_address_id
	JOIN contract_addresses ca ON ca.id = su.contract_address_id
WHERE ca.contract_address = ?
GROUP BY su.contract_address_id, su.storage_address_id`

// LatestValues returns one record per storage slot ever written under
// the given contract, each carrying the value as of the highest block
// number recorded for that slot.
func (db *DB) LatestValues(ctx context.Context, contract []byte) ([]*Record, error) {
	stmt, err := db.stmtCache.Prepare(latestValuesQuery)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, contract)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			slot        string
			value       string
			blockNumber int64
		)
		if err := rows.Scan(&slot, &value, &blockNumber); err != nil {
			return nil, err
		}
		records = append(records, &Record{
			Contract:    contract,
			Slot:        slot,
			Value:       value,
			BlockNumber: blockNumber,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert appends storage writes to the history in one transaction,
// registering dictionary entries as needed. The balance resolver never
// writes; this exists for ingestion and fixtures.
func (db *DB) Insert(updates []*Update) error {
	return db.execInTx(func(tx *sql.Tx) error {
		for _, u := range updates {
			contractID, err := dictionaryID(tx, "contract_addresses", "contract_address", u.Contract)
			if err != nil {
				return err
			}
			slotID, err := dictionaryID(tx, "storage_addresses", "storage_address", u.Slot)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				"INSERT INTO storage_updates(contract_address_id, storage_address_id, storage_value, block_number) VALUES (?, ?, ?, ?);",
				contractID,
				slotID,
				u.Value,
				u.BlockNumber,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *DB) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func dictionaryID(tx *sql.Tx, table, column string, address []byte) (int64, error) {
	if _, err := tx.Exec(
		"INSERT OR IGNORE INTO "+table+"("+column+") VALUES (?);", address,
	); err != nil {
		return 0, err
	}
	var id int64
	err := tx.QueryRow(
		"SELECT id FROM "+table+" WHERE "+column+" = ?;", address,
	).Scan(&id)
	return id, err
}
