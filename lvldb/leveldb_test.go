// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	fileDB, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer fileDB.Close()

	memDB, err := NewMem()
	require.NoError(t, err)
	defer memDB.Close()

	for _, db := range []*LevelDB{fileDB, memDB} {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBulkAndIterate(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := kv.Bucket("s.").NewStore(db)
	bulk := store.Bulk()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, bulk.Put([]byte(k), []byte("v"+k)))
	}
	assert.Equal(t, 3, bulk.Len())

	// nothing visible before write
	has, err := store.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, bulk.Write())
	require.NoError(t, db.Put([]byte("t.a"), []byte("other bucket")))

	it := store.Iterate(kv.Range{})
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
		assert.Equal(t, "v"+string(it.Key()), string(it.Value()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvldb")

	db, err := New(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("seq"), []byte{1}))
	require.NoError(t, db.Close())

	// the directory lock is released on Close
	db, err = New(path, Options{})
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get([]byte("seq"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, got)
}
