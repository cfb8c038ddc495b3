// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/lvldb"
	"github.com/vechain/slotauction/thor"
)

func newState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateReadWrite(t *testing.T) {
	st, _ := newState(t)

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	bal, err := st.GetBalance(addr)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Sign())

	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)

	require.NoError(t, st.SetBalance(addr, big.NewInt(10)))
	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(uint64(42))
	}))

	bal, _ = st.GetBalance(addr)
	assert.Equal(t, big.NewInt(10), bal)

	var v uint64
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &v)
	}))
	assert.Equal(t, uint64(42), v)

	assert.Error(t, st.SetBalance(addr, big.NewInt(-1)))
}

func TestStateRevert(t *testing.T) {
	st, _ := newState(t)

	addr := thor.BytesToAddress([]byte("account"))
	require.NoError(t, st.SetBalance(addr, big.NewInt(1)))

	chk := st.NewCheckpoint()
	require.NoError(t, st.SetBalance(addr, big.NewInt(2)))
	require.NoError(t, st.SetBalance(addr, big.NewInt(3)))

	bal, _ := st.GetBalance(addr)
	assert.Equal(t, big.NewInt(3), bal)

	st.RevertTo(chk)
	bal, _ = st.GetBalance(addr)
	assert.Equal(t, big.NewInt(1), bal)
}

func TestStageCommit(t *testing.T) {
	st, db := newState(t)

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	require.NoError(t, st.SetBalance(addr, big.NewInt(5)))
	st.SetRawStorage(addr, key, rlp.RawValue{0x01})
	st.SetRawStorage(addr, key, rlp.RawValue{0x02})

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	require.NoError(t, stage.Commit())

	// a fresh state on the same store reads committed values
	reloaded := New(db)
	bal, err := reloaded.GetBalance(addr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), bal)

	raw, err := reloaded.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x02}, raw)

	// clearing deletes the key on commit
	reloaded.SetRawStorage(addr, key, nil)
	require.NoError(t, reloaded.SetBalance(addr, new(big.Int)))
	require.NoError(t, reloaded.Stage().Commit())

	has, err := db.Has(append([]byte("s"), append(addr.Bytes(), key.Bytes()...)...))
	require.NoError(t, err)
	assert.False(t, has)
	has, err = db.Has(append([]byte("b"), addr.Bytes()...))
	require.NoError(t, err)
	assert.False(t, has)
}
