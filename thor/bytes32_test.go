// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes32JSON(t *testing.T) {
	id := BytesToBytes32([]byte("sponsor"))
	quoted := `"` + id.String() + `"`

	// value and pointer forms encode the same
	byValue, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, quoted, string(byValue))
	byPtr, err := json.Marshal(&id)
	require.NoError(t, err)
	assert.Equal(t, quoted, string(byPtr))

	var decoded Bytes32
	require.NoError(t, json.Unmarshal([]byte(quoted), &decoded))
	assert.Equal(t, id, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"homepage"`), &decoded), "json ids must be hex")
}

func TestBytes32ShortNames(t *testing.T) {
	var b Bytes32
	require.NoError(t, b.UnmarshalText([]byte("sidebar")))
	assert.Equal(t, BytesToBytes32([]byte("sidebar")), b)

	require.NoError(t, b.UnmarshalText([]byte(BytesToBytes32([]byte("x")).String())))
	assert.Equal(t, BytesToBytes32([]byte("x")), b)

	assert.Error(t, b.UnmarshalText([]byte(strings.Repeat("a", 33))))
	assert.Error(t, b.UnmarshalText([]byte("0x1234")))
}

func TestParseBytes32(t *testing.T) {
	id := Blake2b([]byte("campaign"))

	parsed, err := ParseBytes32(id.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseBytes32("0y" + id.String()[2:])
	assert.Error(t, err)
	assert.Panics(t, func() { MustParseBytes32("0x") })

	assert.True(t, strings.HasPrefix(id.AbbrevString(), id.String()[:10]))
	assert.True(t, Bytes32{}.IsZero())
}
