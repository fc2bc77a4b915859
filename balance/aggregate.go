// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balance

import (
	"runtime"

	"github.com/starkbal/starkbal/co"
	"github.com/starkbal/starkbal/stark"
	"github.com/starkbal/starkbal/storagedb"
)

// BalanceMap maps accounts to balances for one token.
type BalanceMap map[stark.Felt]stark.Felt

// ResultSet maps token contracts to their balance maps.
type ResultSet map[stark.Felt]BalanceMap

// Aggregate joins the latest storage records of one token against the
// account index. Records whose slot matches no indexed account are
// dropped; matched records whose value does not decode into a field
// element yield a zero balance rather than failing the batch.
//
// Record resolutions are independent, so the record set fans out across
// CPUs into per-worker partial maps merged afterward. Each account has
// at most one record per token, so the merge order is irrelevant and
// the result equals a sequential pass.
func Aggregate(records []*storagedb.Record, index *Index) BalanceMap {
	parts := spans(len(records), runtime.NumCPU())
	partials := make([]BalanceMap, len(parts))

	<-co.Parallel(func(queue chan<- func()) {
		for i, part := range parts {
			queue <- func() {
				m := make(BalanceMap)
				for _, rec := range records[part[0]:part[1]] {
					slot, err := stark.ParseFelt("0x" + rec.Slot)
					if err != nil {
						// cannot match any derived slot
						continue
					}
					account, ok := index.Resolve(slot)
					if !ok {
						continue
					}
					value, err := stark.ParseFelt("0x" + rec.Value)
					if err != nil {
						value = stark.Felt{}
					}
					m[account] = value
				}
				partials[i] = m
			}
		}
	})

	balances := make(BalanceMap)
	for _, m := range partials {
		for account, value := range m {
			balances[account] = value
		}
	}
	return balances
}
