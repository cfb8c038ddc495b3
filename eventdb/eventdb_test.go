// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/builtin/sponsorship"
	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/thor"
)

var (
	spA      = thor.BytesToBytes32([]byte("a"))
	spB      = thor.BytesToBytes32([]byte("b"))
	homepage = thor.BytesToBytes32([]byte("homepage"))
	sidebar  = thor.BytesToBytes32([]byte("sidebar"))
	usd      = thor.BytesToAddress([]byte("usd"))
)

func sampleEvents() []*eventdb.Event {
	mk := func(seq uint64, index uint32, tick uint64, ev sponsorship.Event) *eventdb.Event {
		return &eventdb.Event{Seq: seq, Index: index, Tick: tick, Event: ev}
	}
	return []*eventdb.Event{
		mk(1, 0, 0, sponsorship.Event{Name: sponsorship.EventSponsorCreated, Sponsor: spA, Campaign: homepage, Token: usd, Amount: big.NewInt(10), Metadata: "a"}),
		mk(1, 1, 0, sponsorship.Event{Name: sponsorship.EventDeposit, Sponsor: spA, Campaign: homepage, Token: usd, Amount: big.NewInt(1000)}),
		mk(2, 0, 3, sponsorship.Event{Name: sponsorship.EventSponsorActivated, Sponsor: spA, Campaign: homepage, Slot: 0}),
		mk(3, 0, 5, sponsorship.Event{Name: sponsorship.EventApprovalSet, Sponsor: spB, Campaign: sidebar, Approved: true}),
		mk(4, 0, 9, sponsorship.Event{Name: sponsorship.EventPaymentSettled, Sponsor: spA, Campaign: homepage, Token: usd, Amount: big.NewInt(60)}),
		mk(4, 1, 9, sponsorship.Event{Name: sponsorship.EventSponsorSwapped, Sponsor: spB, Counterpart: spA, Campaign: homepage, Slot: 0}),
	}
}

func newDB(t *testing.T) *eventdb.EventDB {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Insert(context.Background(), sampleEvents()))
	return db
}

func seqs(events []*eventdb.Event) [][2]uint64 {
	out := make([][2]uint64, 0, len(events))
	for _, ev := range events {
		out = append(out, [2]uint64{ev.Seq, uint64(ev.Index)})
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	db := newDB(t)

	all, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 6)

	first := all[0]
	assert.Equal(t, sponsorship.EventSponsorCreated, first.Name)
	assert.Equal(t, spA, first.Sponsor)
	assert.Equal(t, usd, first.Token)
	assert.Equal(t, "10", first.Amount.String())
	assert.Equal(t, "a", first.Metadata)
	assert.True(t, first.Account.IsZero())

	assert.True(t, all[3].Approved)
	assert.Nil(t, all[2].Amount)
	assert.Equal(t, spA, all[5].Counterpart)

	seq, err := db.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4), seq)
}

func TestFilter(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter *eventdb.Filter
		want   [][2]uint64
	}{
		{"by name", &eventdb.Filter{Names: []string{sponsorship.EventDeposit, sponsorship.EventPaymentSettled}}, [][2]uint64{{1, 1}, {4, 0}}},
		{"by sponsor includes counterpart", &eventdb.Filter{Sponsor: &spB}, [][2]uint64{{3, 0}, {4, 1}}},
		{"by campaign", &eventdb.Filter{Campaign: &sidebar}, [][2]uint64{{3, 0}}},
		{"tick range", &eventdb.Filter{Range: &eventdb.Range{From: 3, To: 5}}, [][2]uint64{{2, 0}, {3, 0}}},
		{"open range", &eventdb.Filter{Range: &eventdb.Range{From: 9}}, [][2]uint64{{4, 0}, {4, 1}}},
		{"desc with limit", &eventdb.Filter{Order: eventdb.DESC, Options: &eventdb.Options{Offset: 1, Limit: 2}}, [][2]uint64{{4, 0}, {3, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Filter(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, seqs(got))
		})
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	ctx := context.Background()

	db, err := eventdb.New(path)
	require.NoError(t, err)
	require.NoError(t, db.Insert(ctx, sampleEvents()))
	require.NoError(t, db.Close())

	db, err = eventdb.New(path)
	require.NoError(t, err)
	defer db.Close()

	all, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)
	assert.Equal(t, path, db.Path())
}
