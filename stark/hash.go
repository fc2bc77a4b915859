// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stark

import (
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"
	"golang.org/x/crypto/sha3"
)

// Pedersen computes the two-input Pedersen hash over the Stark curve.
// It is a pure function: same inputs always produce the same output.
func Pedersen(a, b Felt) Felt {
	x, y := a.element(), b.element()
	h := pedersenhash.Pedersen(&x, &y)
	return fromElement(&h)
}

// NameHash computes the truncated Keccak-256 of name, keeping the low
// 250 bits so the result always fits the field. It identifies a named
// storage variable family, e.g. "ERC20_balances".
func NameHash(name string) Felt {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))

	var f Felt
	copy(f[:], h.Sum(nil))
	f[0] &= 0x03 // keep 250 bits
	return f
}
