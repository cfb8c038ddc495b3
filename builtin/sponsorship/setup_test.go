// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/lvldb"
	"github.com/vechain/slotauction/state"
	"github.com/vechain/slotauction/thor"
)

var (
	owner    = thor.BytesToAddress([]byte("owner"))
	alice    = thor.BytesToAddress([]byte("alice"))
	bob      = thor.BytesToAddress([]byte("bob"))
	carol    = thor.BytesToAddress([]byte("carol"))
	stranger = thor.BytesToAddress([]byte("stranger"))

	tokenA = thor.BytesToAddress([]byte("tokenA"))
	tokenB = thor.BytesToAddress([]byte("tokenB"))

	homepage = thor.BytesToBytes32([]byte("homepage"))
	sidebar  = thor.BytesToBytes32([]byte("sidebar"))
)

// testBank is an in-memory ledger. Tokens with a fee burn feeBps/10000 of every transfer.
type testBank struct {
	balances map[thor.Address]map[thor.Address]*big.Int
	feeBps   map[thor.Address]int64
}

func newTestBank() *testBank {
	return &testBank{
		balances: make(map[thor.Address]map[thor.Address]*big.Int),
		feeBps:   make(map[thor.Address]int64),
	}
}

func (b *testBank) BalanceOf(token, holder thor.Address) (*big.Int, error) {
	if v, ok := b.balances[token][holder]; ok {
		return new(big.Int).Set(v), nil
	}
	return new(big.Int), nil
}

func (b *testBank) mint(token, holder thor.Address, amount int64) {
	if b.balances[token] == nil {
		b.balances[token] = make(map[thor.Address]*big.Int)
	}
	bal, _ := b.BalanceOf(token, holder)
	b.balances[token][holder] = bal.Add(bal, big.NewInt(amount))
}

func (b *testBank) Transfer(token, from, to thor.Address, amount *big.Int) error {
	bal, _ := b.BalanceOf(token, from)
	if bal.Cmp(amount) < 0 {
		return reverts.New(reverts.StateConflict, "insufficient balance")
	}
	if b.balances[token] == nil {
		b.balances[token] = make(map[thor.Address]*big.Int)
	}
	b.balances[token][from] = bal.Sub(bal, amount)

	received := new(big.Int).Set(amount)
	if fee := b.feeBps[token]; fee > 0 {
		cut := new(big.Int).Mul(amount, big.NewInt(fee))
		received.Sub(received, cut.Div(cut, big.NewInt(10000)))
	}
	toBal, _ := b.BalanceOf(token, to)
	b.balances[token][to] = toBal.Add(toBal, received)
	return nil
}

func (b *testBank) TransferFrom(token, _, from, to thor.Address, amount *big.Int) error {
	return b.Transfer(token, from, to, amount)
}

// testOracle prices amount*factor; tokens without a factor are unknown.
type testOracle map[thor.Address]int64

func (o testOracle) Price(token thor.Address, amount *big.Int) (*big.Int, error) {
	factor, ok := o[token]
	if !ok {
		return new(big.Int), nil
	}
	return new(big.Int).Mul(amount, big.NewInt(factor)), nil
}

type testEnv struct {
	t      *testing.T
	st     *state.State
	bank   *testBank
	oracle testOracle
	env    *Env
	events []*Event
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	te := &testEnv{
		t:      t,
		st:     state.New(db),
		bank:   newTestBank(),
		oracle: testOracle{tokenA: 1, tokenB: 3},
	}
	te.env = &Env{
		Oracle: te.oracle,
		Bank:   te.bank,
		Emit:   func(ev *Event) { te.events = append(te.events, ev) },
	}
	require.NoError(t, te.engine().SetOwner(owner))
	return te
}

func (te *testEnv) engine() *Sponsorship {
	return New(solidity.NewContext(thor.SponsorshipAddress, te.st), te.env)
}

// at moves the clock to tick and returns the engine.
func (te *testEnv) at(tick uint64) *Sponsorship {
	te.env.Tick = tick
	return te.engine()
}

// atomic runs op in a checkpoint and reverts it on failure.
func (te *testEnv) atomic(op func(s *Sponsorship) error) error {
	chk := te.st.NewCheckpoint()
	n := len(te.events)
	if err := op(te.engine()); err != nil {
		te.st.RevertTo(chk)
		te.events = te.events[:n]
		return err
	}
	return nil
}

func (te *testEnv) eventNames() []string {
	names := make([]string, 0, len(te.events))
	for _, ev := range te.events {
		names = append(names, ev.Name)
	}
	return names
}

// newSponsor creates a funded, approved sponsor at the current tick.
func (te *testEnv) newSponsor(who thor.Address, campaign thor.Bytes32, token thor.Address, deposit, rate int64) thor.Bytes32 {
	te.bank.mint(token, who, deposit)
	s := te.engine()
	id, err := s.CreateSponsor(who, token, campaign, big.NewInt(deposit), big.NewInt(rate), "ad by "+who.String())
	require.NoError(te.t, err)
	require.NoError(te.t, s.SetApproved(owner, id, true))
	return id
}

func (te *testEnv) sponsor(id thor.Bytes32) *Sponsor {
	sp, err := te.engine().GetSponsor(id)
	require.NoError(te.t, err)
	return sp
}

func (te *testEnv) campaign(id thor.Bytes32) *Campaign {
	c, err := te.engine().GetCampaign(id)
	require.NoError(te.t, err)
	return c
}

func assertBig(t *testing.T, want int64, got *big.Int) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, big.NewInt(want).String(), got.String())
}

func requireRevert(t *testing.T, kind reverts.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	var revert *reverts.ErrRevert
	require.True(t, errors.As(err, &revert), "not a revert: %v", err)
	require.Equal(t, kind, revert.Kind(), "unexpected revert: %v", err)
}

// checkInvariants verifies the slot ledger against the sponsor records.
func (te *testEnv) checkInvariants(campaign thor.Bytes32, ids []thor.Bytes32) {
	t := te.t
	s := te.engine()

	active, err := s.ActiveSponsors(campaign)
	require.NoError(t, err)
	require.Equal(t, int(te.campaign(campaign).ActiveSlots), len(active))

	seen := make(map[thor.Bytes32]bool)
	for i, id := range active {
		require.False(t, seen[id], "duplicate slot holder")
		seen[id] = true
		sp := te.sponsor(id)
		require.True(t, sp.Active)
		require.Equal(t, campaign, sp.Campaign)
		require.Equal(t, uint32(i), sp.Slot)
	}
	for _, id := range ids {
		sp := te.sponsor(id)
		if sp.Campaign == campaign {
			require.Equal(t, sp.Active, seen[id])
		}

		acc, err := s.Balance(id)
		require.NoError(t, err)
		require.Zero(t, acc.Stored.Cmp(new(big.Int).Add(acc.Balance, acc.Pending)))
		require.True(t, acc.Pending.Cmp(acc.Stored) <= 0)
		require.True(t, acc.Balance.Sign() >= 0)
	}
}
