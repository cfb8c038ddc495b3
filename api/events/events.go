// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/thor"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

// parseQuery reads a filter from query parameters:
// names (comma separated), sponsor, campaign, from, to, order, offset and limit.
func parseQuery(q url.Values) (*eventdb.Filter, error) {
	var filter eventdb.Filter
	if names := q.Get("names"); names != "" {
		filter.Names = strings.Split(names, ",")
	}
	if s := q.Get("sponsor"); s != "" {
		id, err := thor.ParseBytes32(s)
		if err != nil {
			return nil, errors.WithMessage(err, "sponsor")
		}
		filter.Sponsor = &id
	}
	if s := q.Get("campaign"); s != "" {
		var id thor.Bytes32
		if err := id.UnmarshalText([]byte(s)); err != nil {
			return nil, errors.WithMessage(err, "campaign")
		}
		filter.Campaign = &id
	}

	uintOf := func(key string) (uint64, bool, error) {
		s := q.Get(key)
		if s == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, false, errors.WithMessage(err, key)
		}
		return v, true, nil
	}
	from, hasFrom, err := uintOf("from")
	if err != nil {
		return nil, err
	}
	to, hasTo, err := uintOf("to")
	if err != nil {
		return nil, err
	}
	if hasFrom || hasTo {
		if !hasTo {
			to = math.MaxInt64
		}
		filter.Range = &eventdb.Range{From: from, To: to}
	}
	offset, hasOffset, err := uintOf("offset")
	if err != nil {
		return nil, err
	}
	limit, hasLimit, err := uintOf("limit")
	if err != nil {
		return nil, err
	}
	if hasOffset || hasLimit {
		filter.Options = &eventdb.Options{Offset: offset, Limit: limit}
	}

	switch order := eventdb.OrderType(q.Get("order")); order {
	case "", eventdb.ASC, eventdb.DESC:
		filter.Order = order
	default:
		return nil, fmt.Errorf("order: unsupported %q", order)
	}
	return &filter, nil
}

func (e *Events) filter(w http.ResponseWriter, req *http.Request, filter *eventdb.Filter) error {
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Options != nil && filter.Options.Offset > math.MaxInt64 {
		return utils.BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	if filter.Range != nil {
		if filter.Range.From > math.MaxInt64 {
			return utils.BadRequest(fmt.Errorf("range.from exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
		}
		// a range.to below range.from is open-ended
		filter.Range.To = min(filter.Range.To, math.MaxInt64)
	}
	if filter.Options == nil {
		// one more than the limit tells whether the limit was exceeded
		filter.Options = &eventdb.Options{Limit: e.limit + 1}
	}

	events, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	if len(events) > int(e.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}
	if events == nil {
		events = []*eventdb.Event{}
	}
	return utils.WriteJSON(w, events)
}

func (e *Events) handleQuery(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseQuery(req.URL.Query())
	if err != nil {
		return utils.BadRequest(err)
	}
	return e.filter(w, req, filter)
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter eventdb.Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	switch filter.Order {
	case "", eventdb.ASC, eventdb.DESC:
	default:
		return utils.BadRequest(fmt.Errorf("order: unsupported %q", filter.Order))
	}
	return e.filter(w, req, &filter)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleQuery))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
