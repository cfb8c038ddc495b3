// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/builtin/sponsorship"
	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/thor"
)

var (
	sponsorA = thor.BytesToBytes32([]byte("a"))
	homepage = thor.BytesToBytes32([]byte("homepage"))
)

func TestParseQuery(t *testing.T) {
	q := url.Values{}
	q.Set("names", "Deposit,Withdrawal")
	q.Set("sponsor", sponsorA.String())
	q.Set("campaign", "homepage")
	q.Set("from", "5")
	q.Set("order", "desc")
	q.Set("limit", "10")

	filter, err := parseQuery(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Deposit", "Withdrawal"}, filter.Names)
	assert.Equal(t, sponsorA, *filter.Sponsor)
	assert.Equal(t, homepage, *filter.Campaign)
	assert.Equal(t, &eventdb.Range{From: 5, To: math.MaxInt64}, filter.Range)
	assert.Equal(t, eventdb.DESC, filter.Order)
	assert.Equal(t, &eventdb.Options{Limit: 10}, filter.Options)

	for _, bad := range []string{"sponsor=0x12", "from=-1", "limit=x", "order=random"} {
		q, err := url.ParseQuery(bad)
		require.NoError(t, err)
		_, err = parseQuery(q)
		assert.Error(t, err, bad)
	}
}

func newRouter(t *testing.T, limit uint64) (*mux.Router, *eventdb.EventDB) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var events []*eventdb.Event
	for i := range uint64(5) {
		events = append(events, &eventdb.Event{Seq: i + 1, Tick: i * 10, Event: sponsorship.Event{
			Name:     sponsorship.EventDeposit,
			Sponsor:  sponsorA,
			Campaign: homepage,
			Amount:   big.NewInt(int64(i)),
		}})
	}
	require.NoError(t, db.Insert(context.Background(), events))

	router := mux.NewRouter()
	New(db, limit).Mount(router, "/events")
	return router, db
}

func TestFilterEndpoints(t *testing.T) {
	router, _ := newRouter(t, 3)

	get := func(query string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events"+query, nil))
		return rec
	}

	// more events than the limit without pagination
	assert.Equal(t, http.StatusForbidden, get("").Code)

	rec := get("?from=10&to=30&order=desc")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var events []*eventdb.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 3)
	assert.Equal(t, uint64(4), events[0].Seq)
	assert.Equal(t, uint64(2), events[2].Seq)

	rec = get("?names=Withdrawal")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	body, err := json.Marshal(&eventdb.Filter{Options: &eventdb.Options{Offset: 3, Limit: 3}})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Len(t, events, 2)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(`{"order":"up"}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
