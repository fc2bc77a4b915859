// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package balance resolves token balances for a set of accounts
// directly from a contract-storage history database, without touching
// a live network.
package balance

import (
	"github.com/starkbal/starkbal/stark"
)

// BalancesSelector identifies the per-account balance storage variable
// of standard token contracts.
var BalancesSelector = stark.NameHash("ERC20_balances")

// DeriveSlot computes the storage slot holding the balance of account,
// as the Pedersen hash of (selector, account). The slot depends only on
// the selector and the account, never on the token contract.
func DeriveSlot(selector, account stark.Felt) stark.Felt {
	return stark.Pedersen(selector, account)
}
