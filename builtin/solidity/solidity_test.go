// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/lvldb"
	"github.com/vechain/slotauction/state"
	"github.com/vechain/slotauction/thor"
)

type testStruct struct {
	Field1 uint64
	Addr1  thor.Address
	Amount *big.Int
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(thor.Address{1}, state.New(db))
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Bytes32, *testStruct](ctx, thor.Bytes32{1})
	key := thor.Bytes32{2}

	// absent pointer values decode into a fresh zero struct
	v, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, uint64(0), v.Field1)

	exists, err := m.Exists(key)
	require.NoError(t, err)
	assert.False(t, exists)

	stored := &testStruct{Field1: 7, Addr1: thor.Address{9}, Amount: big.NewInt(1000)}
	require.NoError(t, m.Set(key, stored))

	v, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, stored, v)

	exists, _ = m.Exists(key)
	assert.True(t, exists)

	// other base positions do not collide
	other := NewMapping[thor.Bytes32, *testStruct](ctx, thor.Bytes32{3})
	exists, _ = other.Exists(key)
	assert.False(t, exists)

	m.Delete(key)
	exists, _ = m.Exists(key)
	assert.False(t, exists)
}

func TestMappingValueTypes(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, thor.Bytes32](ctx, thor.Bytes32{4})

	v, err := m.Get(thor.Address{1})
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	require.NoError(t, m.Set(thor.Address{1}, thor.Bytes32{5}))
	v, err = m.Get(thor.Address{1})
	require.NoError(t, err)
	assert.Equal(t, thor.Bytes32{5}, v)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, thor.Bytes32{1})

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, u.Set(big.NewInt(1000)))
	require.NoError(t, u.Add(big.NewInt(500)))
	v, _ = u.Get()
	assert.Equal(t, big.NewInt(1500), v)

	require.NoError(t, u.Sub(big.NewInt(200)))
	v, _ = u.Get()
	assert.Equal(t, big.NewInt(1300), v)

	assert.Error(t, u.Sub(big.NewInt(2000)))

	require.NoError(t, u.Sub(big.NewInt(1300)))
	raw, err := ctx.State().GetRawStorage(ctx.Address(), thor.Bytes32{1})
	require.NoError(t, err)
	assert.Empty(t, raw, "zero clears the slot")
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, thor.Bytes32{1})

	v, err := a.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	addr := thor.BytesToAddress([]byte("owner"))
	require.NoError(t, a.Set(&addr))
	v, _ = a.Get()
	assert.Equal(t, addr, v)

	require.NoError(t, a.Set(nil))
	v, _ = a.Get()
	assert.True(t, v.IsZero())
}

func TestRaw(t *testing.T) {
	ctx := newTestContext(t)
	n := NewRaw[uint64](ctx, thor.Bytes32{1})

	v, err := n.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	require.NoError(t, n.Set(42))
	v, _ = n.Get()
	assert.Equal(t, uint64(42), v)

	n.Clear()
	v, _ = n.Get()
	assert.Equal(t, uint64(0), v)
}
