// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package listregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/lvldb"
	"github.com/vechain/slotauction/state"
	"github.com/vechain/slotauction/thor"
)

var (
	owner = thor.BytesToAddress([]byte("owner"))
	other = thor.BytesToAddress([]byte("other"))

	banned  = thor.BytesToBytes32([]byte("banned"))
	pending = thor.BytesToBytes32([]byte("pending"))
)

func value(s string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(s))
}

func newRegistry(t *testing.T) *Registry {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := New(solidity.NewContext(thor.ListRegistryAddress, state.New(db)))
	require.NoError(t, r.SetOwner(owner))
	return r
}

func mustAdd(t *testing.T, r *Registry, list thor.Bytes32, v string) thor.Bytes32 {
	id, err := r.Add(owner, list, value(v))
	require.NoError(t, err)
	return id
}

func values(t *testing.T, r *Registry, list thor.Bytes32) []thor.Bytes32 {
	vs, err := r.Values(list)
	require.NoError(t, err)
	return vs
}

func TestAddRemove(t *testing.T) {
	r := newRegistry(t)

	a := mustAdd(t, r, banned, "a")
	b := mustAdd(t, r, banned, "b")
	c := mustAdd(t, r, banned, "c")
	d := mustAdd(t, r, banned, "d")
	assert.Equal(t, []thor.Bytes32{value("a"), value("b"), value("c"), value("d")}, values(t, r, banned))

	// middle
	require.NoError(t, r.Remove(owner, banned, b))
	assert.Equal(t, []thor.Bytes32{value("a"), value("c"), value("d")}, values(t, r, banned))

	// head
	require.NoError(t, r.Remove(owner, banned, a))
	assert.Equal(t, []thor.Bytes32{value("c"), value("d")}, values(t, r, banned))

	// tail
	require.NoError(t, r.Remove(owner, banned, d))
	assert.Equal(t, []thor.Bytes32{value("c")}, values(t, r, banned))

	e := mustAdd(t, r, banned, "e")
	entries, err := r.Entries(banned)
	require.NoError(t, err)
	assert.Equal(t, []Element{{c, value("c")}, {e, value("e")}}, entries)

	n, err := r.Len(banned)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	require.NoError(t, r.Remove(owner, banned, c))
	require.NoError(t, r.Remove(owner, banned, e))
	assert.Empty(t, values(t, r, banned))

	// the list works again after being emptied
	mustAdd(t, r, banned, "f")
	assert.Equal(t, []thor.Bytes32{value("f")}, values(t, r, banned))
}

func TestListsAreIndependent(t *testing.T) {
	r := newRegistry(t)

	x := mustAdd(t, r, banned, "same")
	y := mustAdd(t, r, pending, "same")
	assert.NotEqual(t, x, y)

	err := r.Remove(owner, pending, x)
	assert.Equal(t, reverts.NotFound, reverts.KindOf(err))

	require.NoError(t, r.Remove(owner, pending, y))
	assert.Equal(t, []thor.Bytes32{value("same")}, values(t, r, banned))
	assert.Empty(t, values(t, r, pending))

	err = r.Remove(owner, pending, y)
	assert.Equal(t, reverts.NotFound, reverts.KindOf(err), "removed twice")
}

func TestOwnerGated(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Add(other, banned, value("a"))
	assert.Equal(t, reverts.Authorization, reverts.KindOf(err))

	id := mustAdd(t, r, banned, "a")
	err = r.Remove(other, banned, id)
	assert.Equal(t, reverts.Authorization, reverts.KindOf(err))

	_, err = r.Add(owner, thor.Bytes32{}, value("a"))
	assert.Equal(t, reverts.InvalidInput, reverts.KindOf(err))
}
