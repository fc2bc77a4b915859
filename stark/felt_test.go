// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stark

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFelt(t *testing.T) {
	f, err := ParseFelt("0x64")
	assert.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000064", f.String())
	assert.Equal(t, int64(100), f.Big().Int64())

	// prefix optional, odd digit count and upper case accepted
	g, err := ParseFelt("64")
	assert.NoError(t, err)
	assert.Equal(t, f, g)
	g, err = ParseFelt("0x064")
	assert.NoError(t, err)
	assert.Equal(t, f, g)
	g, err = ParseFelt("0X64")
	assert.NoError(t, err)
	assert.Equal(t, f, g)

	_, err = ParseFelt("")
	assert.Error(t, err)
	_, err = ParseFelt("0x")
	assert.Error(t, err)
	_, err = ParseFelt("0xzz")
	assert.Error(t, err)
	_, err = ParseFelt("-64")
	assert.Error(t, err)
	_, err = ParseFelt("0x10000000000000000000000000000000000000000000000000000000000000000")
	assert.Error(t, err)
}

func TestParseFeltCanonical(t *testing.T) {
	// prime - 1 is the largest canonical value
	max, err := ParseFelt("0x0800000000000011000000000000000000000000000000000000000000000000")
	assert.NoError(t, err)
	assert.False(t, max.IsZero())

	// the prime itself is out of range
	_, err = ParseFelt("0x0800000000000011000000000000000000000000000000000000000000000001")
	assert.Error(t, err)
}

func TestFeltAdd(t *testing.T) {
	one := MustParseFelt("0x1")
	two := MustParseFelt("0x2")
	assert.Equal(t, two, one.Add(one))

	// wraps around the field modulus
	max := MustParseFelt("0x0800000000000011000000000000000000000000000000000000000000000000")
	assert.True(t, max.Add(one).IsZero())
	assert.Equal(t, max, Felt{}.Sub(one))
}

func TestFeltJSON(t *testing.T) {
	original := `"0x0000000000000000000000000000000000000000000000000000000000000064"`

	var f Felt
	err := json.Unmarshal([]byte(original), &f)
	assert.NoError(t, err)

	marshaled, err := json.Marshal(f)
	assert.NoError(t, err)
	assert.Equal(t, original, string(marshaled))

	// short form input normalizes to padded form
	err = json.Unmarshal([]byte(`"0x64"`), &f)
	assert.NoError(t, err)
	marshaled, err = json.Marshal(&f)
	assert.NoError(t, err)
	assert.Equal(t, original, string(marshaled))

	err = json.Unmarshal([]byte(`"0xnothex"`), &f)
	assert.Error(t, err)
}

func TestFeltAsMapKey(t *testing.T) {
	m := map[Felt]Felt{
		MustParseFelt("0x1"): MustParseFelt("0x64"),
	}
	data, err := json.Marshal(m)
	assert.NoError(t, err)

	var decoded map[Felt]Felt
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}

func TestBytesToFelt(t *testing.T) {
	f := BytesToFelt([]byte{0x1, 0x2})
	assert.Equal(t, MustParseFelt("0x0102"), f)

	// cropped from the left
	long := make([]byte, 33)
	long[0] = 0xff
	long[32] = 0x7
	assert.Equal(t, MustParseFelt("0x7"), BytesToFelt(long))
}
