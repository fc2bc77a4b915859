// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stark

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Felt is a 256-bit field element of the Stark prime field,
// stored canonically as 32 big-endian bytes. It is the uniform
// representation for account addresses, contract addresses,
// storage slots and balances.
type Felt [32]byte

// Prime is the field modulus, 2^251 + 17*2^192 + 1.
var Prime = fp.Modulus()

var (
	_ json.Marshaler   = (*Felt)(nil)
	_ json.Unmarshaler = (*Felt)(nil)
)

// String implements stringer. Always zero-padded to 64 hex digits.
func (f Felt) String() string {
	return "0x" + hex.EncodeToString(f[:])
}

// Bytes returns byte slice form of Felt.
func (f Felt) Bytes() []byte {
	return f[:]
}

// IsZero returns if Felt has all zero bytes.
func (f Felt) IsZero() bool {
	return f == Felt{}
}

// Big returns the value as a big integer.
func (f Felt) Big() *big.Int {
	return new(big.Int).SetBytes(f[:])
}

// Cmp compares two field elements by value.
func (f Felt) Cmp(g Felt) int {
	return bytes.Compare(f[:], g[:])
}

// Add returns f + g mod Prime.
func (f Felt) Add(g Felt) Felt {
	a, b := f.element(), g.element()
	a.Add(&a, &b)
	return fromElement(&a)
}

// Sub returns f - g mod Prime.
func (f Felt) Sub(g Felt) Felt {
	a, b := f.element(), g.element()
	a.Sub(&a, &b)
	return fromElement(&a)
}

func (f Felt) element() fp.Element {
	var e fp.Element
	e.SetBytes(f[:])
	return e
}

func fromElement(e *fp.Element) Felt {
	return Felt(e.Bytes())
}

// MarshalJSON implements json.Marshaler.
func (f *Felt) MarshalJSON() ([]byte, error) {
	if f == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(f.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Felt) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParseFelt(hex)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler, which makes Felt
// usable as a JSON object key.
func (f Felt) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Felt) UnmarshalText(text []byte) error {
	parsed, err := ParseFelt(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFelt converts a hex string into Felt. The "0x" prefix is
// optional and odd digit counts are accepted, following the usual
// short form of field element literals. Values not below the field
// modulus are rejected.
func ParseFelt(s string) (Felt, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s) == 0 || len(s) > 64 {
		return Felt{}, errors.New("invalid length")
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok || n.Sign() < 0 {
		return Felt{}, errors.New("invalid hex")
	}
	if n.Cmp(Prime) >= 0 {
		return Felt{}, errors.New("value out of field range")
	}
	var f Felt
	n.FillBytes(f[:])
	return f, nil
}

// MustParseFelt converts a hex string into Felt, panic on error.
func MustParseFelt(s string) Felt {
	f, err := ParseFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

// BytesToFelt converts a byte slice into Felt.
// If b is larger than Felt length, b will be cropped (from the left).
// If b is smaller than Felt length, b will be extended (from the left).
// The result is not reduced by the field modulus.
func BytesToFelt(b []byte) Felt {
	var f Felt
	if len(b) > len(f) {
		b = b[len(b)-len(f):]
	}
	copy(f[len(f)-len(b):], b)
	return f
}
