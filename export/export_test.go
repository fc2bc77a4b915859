// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package export

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkbal/starkbal/balance"
	"github.com/starkbal/starkbal/stark"
)

func testSet() balance.ResultSet {
	return balance.ResultSet{
		stark.MustParseFelt("0x71"): {
			stark.MustParseFelt("0xaa"): stark.MustParseFelt("0x96"),
			stark.MustParseFelt("0xab"): stark.MustParseFelt("0x64"),
		},
		stark.MustParseFelt("0x72"): {
			stark.MustParseFelt("0xaa"): stark.MustParseFelt("0x1"),
		},
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{CSV: true, JSON: true, SQLite: true, Dir: dir}
	require.True(t, opts.HasAny())
	require.NoError(t, Write(testSet(), opts))

	// csv: header plus one sorted row per (token, account)
	file, err := os.Open(filepath.Join(dir, "token_map.csv"))
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Token", "Account", "Balance"}, records[0])
	assert.Equal(t, []string{
		stark.MustParseFelt("0x71").String(),
		stark.MustParseFelt("0xaa").String(),
		"150",
	}, records[1])
	assert.Equal(t, "100", records[2][2])
	assert.Equal(t, stark.MustParseFelt("0x72").String(), records[3][0])

	// json round-trips to the same result set
	data, err := os.ReadFile(filepath.Join(dir, "token_map.json"))
	require.NoError(t, err)
	var decoded balance.ResultSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, testSet(), decoded)

	// sqlite holds all flattened rows
	db, err := sql.Open("sqlite3", filepath.Join(dir, "token_map.db"))
	require.NoError(t, err)
	defer db.Close()
	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM token_map").Scan(&count))
	assert.Equal(t, 3, count)

	var bal string
	require.NoError(t, db.QueryRow(
		"SELECT balance FROM token_map WHERE token = ? AND account = ?",
		stark.MustParseFelt("0x72").String(),
		stark.MustParseFelt("0xaa").String(),
	).Scan(&bal))
	assert.Equal(t, "1", bal)
}

func TestWriteStable(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{CSV: true, Dir: dir}

	require.NoError(t, Write(testSet(), opts))
	first, err := os.ReadFile(filepath.Join(dir, "token_map.csv"))
	require.NoError(t, err)

	require.NoError(t, Write(testSet(), opts))
	second, err := os.ReadFile(filepath.Join(dir, "token_map.csv"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOptionsHasAny(t *testing.T) {
	assert.False(t, (&Options{}).HasAny())
	assert.True(t, (&Options{JSON: true}).HasAny())
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, flatten(balance.ResultSet{}))
	assert.Empty(t, flatten(balance.ResultSet{stark.MustParseFelt("0x71"): {}}))
}
