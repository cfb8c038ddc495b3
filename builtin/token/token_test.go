// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
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
	usd   = thor.BytesToAddress([]byte("usd"))
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
	shop  = thor.BytesToAddress([]byte("shop"))
)

func newToken(t *testing.T) *Token {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(thor.TokenAddress, state.New(db)))
}

func balanceOf(t *testing.T, tk *Token, holder thor.Address) string {
	bal, err := tk.BalanceOf(usd, holder)
	require.NoError(t, err)
	return bal.String()
}

func requireKind(t *testing.T, kind reverts.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, reverts.KindOf(err), "unexpected error: %v", err)
}

func TestMintAndBurn(t *testing.T) {
	tk := newToken(t)

	require.NoError(t, tk.Mint(usd, alice, big.NewInt(100)))
	assert.Equal(t, "100", balanceOf(t, tk, alice))

	supply, err := tk.TotalSupply(usd)
	require.NoError(t, err)
	assert.Equal(t, "100", supply.String())

	requireKind(t, reverts.StateConflict, tk.Burn(usd, alice, big.NewInt(101)))
	require.NoError(t, tk.Burn(usd, alice, big.NewInt(40)))
	assert.Equal(t, "60", balanceOf(t, tk, alice))

	supply, _ = tk.TotalSupply(usd)
	assert.Equal(t, "60", supply.String())

	requireKind(t, reverts.InvalidInput, tk.Mint(thor.Address{}, alice, big.NewInt(1)))
	requireKind(t, reverts.InvalidInput, tk.Mint(usd, alice, big.NewInt(-1)))
}

func TestTransfer(t *testing.T) {
	tk := newToken(t)
	require.NoError(t, tk.Mint(usd, alice, big.NewInt(100)))

	require.NoError(t, tk.Transfer(usd, alice, bob, big.NewInt(30)))
	assert.Equal(t, "70", balanceOf(t, tk, alice))
	assert.Equal(t, "30", balanceOf(t, tk, bob))

	requireKind(t, reverts.StateConflict, tk.Transfer(usd, alice, bob, big.NewInt(71)))
	requireKind(t, reverts.InvalidInput, tk.Transfer(usd, alice, thor.Address{}, big.NewInt(1)))

	// to self changes nothing
	require.NoError(t, tk.Transfer(usd, alice, alice, big.NewInt(70)))
	assert.Equal(t, "70", balanceOf(t, tk, alice))
}

func TestTransferFee(t *testing.T) {
	tk := newToken(t)
	require.NoError(t, tk.Mint(usd, alice, big.NewInt(1000)))

	requireKind(t, reverts.InvalidInput, tk.SetFeeBps(usd, MaxFeeBps+1))
	require.NoError(t, tk.SetFeeBps(usd, 250))

	fee, err := tk.FeeBps(usd)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), fee)

	require.NoError(t, tk.Transfer(usd, alice, bob, big.NewInt(400)))
	assert.Equal(t, "600", balanceOf(t, tk, alice))
	assert.Equal(t, "390", balanceOf(t, tk, bob))

	supply, _ := tk.TotalSupply(usd)
	assert.Equal(t, "990", supply.String())

	require.NoError(t, tk.SetFeeBps(usd, 0))
	require.NoError(t, tk.Transfer(usd, alice, bob, big.NewInt(100)))
	assert.Equal(t, "490", balanceOf(t, tk, bob))
}

func TestTransferFrom(t *testing.T) {
	tk := newToken(t)
	require.NoError(t, tk.Mint(usd, alice, big.NewInt(100)))

	requireKind(t, reverts.Authorization, tk.TransferFrom(usd, shop, alice, shop, big.NewInt(10)))

	require.NoError(t, tk.Approve(usd, alice, shop, big.NewInt(50)))
	require.NoError(t, tk.TransferFrom(usd, shop, alice, shop, big.NewInt(20)))
	assert.Equal(t, "80", balanceOf(t, tk, alice))
	assert.Equal(t, "20", balanceOf(t, tk, shop))

	allowance, err := tk.Allowance(usd, alice, shop)
	require.NoError(t, err)
	assert.Equal(t, "30", allowance.String())

	requireKind(t, reverts.Authorization, tk.TransferFrom(usd, shop, alice, shop, big.NewInt(31)))

	// own funds need no allowance
	require.NoError(t, tk.TransferFrom(usd, alice, alice, bob, big.NewInt(80)))
	assert.Equal(t, "80", balanceOf(t, tk, bob))

	requireKind(t, reverts.InvalidInput, tk.Approve(usd, alice, thor.Address{}, big.NewInt(1)))
}
