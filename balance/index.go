// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balance

import (
	"runtime"

	"github.com/starkbal/starkbal/co"
	"github.com/starkbal/starkbal/stark"
)

// Index maps derived storage slots back to the accounts that produced
// them. It is sealed once built and safe for unsynchronized concurrent
// reads. Should two accounts ever derive the same slot, the later one
// in input order wins.
type Index struct {
	slots map[stark.Felt]stark.Felt
}

// BuildIndex derives the storage slot of every account and seals the
// slot -> account mapping. Derivations are independent, so they fan out
// across CPUs, one partition per worker, and the partial maps merge at
// the end.
func BuildIndex(selector stark.Felt, accounts []stark.Felt) *Index {
	parts := spans(len(accounts), runtime.NumCPU())
	partials := make([]map[stark.Felt]stark.Felt, len(parts))

	<-co.Parallel(func(queue chan<- func()) {
		for i, part := range parts {
			queue <- func() {
				m := make(map[stark.Felt]stark.Felt, part[1]-part[0])
				for _, account := range accounts[part[0]:part[1]] {
					m[DeriveSlot(selector, account)] = account
				}
				partials[i] = m
			}
		}
	})

	slots := make(map[stark.Felt]stark.Felt, len(accounts))
	for _, m := range partials {
		for slot, account := range m {
			slots[slot] = account
		}
	}
	return &Index{slots}
}

// Resolve looks up the account owning the given slot. A miss means the
// slot belongs to an account outside the indexed set.
func (ix *Index) Resolve(slot stark.Felt) (stark.Felt, bool) {
	account, ok := ix.slots[slot]
	return account, ok
}

// Len returns the number of indexed slots.
func (ix *Index) Len() int {
	return len(ix.slots)
}

// spans splits [0, n) into at most k contiguous near-equal parts.
func spans(n, k int) [][2]int {
	if n == 0 {
		return nil
	}
	if k > n {
		k = n
	}
	parts := make([][2]int, 0, k)
	for i := range k {
		parts = append(parts, [2]int{i * n / k, (i + 1) * n / k})
	}
	return parts
}
