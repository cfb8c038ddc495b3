// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/slotauction/api/campaigns"
	"github.com/vechain/slotauction/api/events"
	"github.com/vechain/slotauction/api/lists"
	"github.com/vechain/slotauction/api/middleware"
	"github.com/vechain/slotauction/api/native"
	"github.com/vechain/slotauction/api/node"
	"github.com/vechain/slotauction/api/oracle"
	"github.com/vechain/slotauction/api/sponsors"
	"github.com/vechain/slotauction/api/tokens"
	"github.com/vechain/slotauction/api/treasury"
	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/runtime"
)

var logger = log.WithContext("pkg", "api")

const defaultEventsLimit = 1000

type Options struct {
	AllowedOrigins     string
	EventsLimit        uint64
	EnableMetrics      bool
	EnableReqLogger    *atomic.Bool
	SlowQueryThreshold time.Duration
}

// New return api router
func New(rt *runtime.Runtime, eventDB *eventdb.EventDB, info node.Info, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	limit := opts.EventsLimit
	if limit == 0 {
		limit = defaultEventsLimit
	}

	router := mux.NewRouter()
	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	sponsors.New(rt).
		Mount(router, "/sponsors")
	campaigns.New(rt).
		Mount(router, "/campaigns")
	treasury.New(rt).
		Mount(router, "/treasury")
	oracle.New(rt).
		Mount(router, "/oracle")
	tokens.New(rt).
		Mount(router, "/tokens")
	native.New(rt).
		Mount(router, "/native")
	lists.New(rt).
		Mount(router, "/lists")
	events.New(eventDB, limit).
		Mount(router, "/events")
	node.New(rt, info).
		Mount(router, "/node")

	var handler http.Handler = router
	if opts.EnableReqLogger != nil {
		handler = middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueryThreshold)(handler)
	}
	handler = handlers.CompressHandler(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", utils.CallerHeader}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
	)(handler)

	return handler.ServeHTTP
}
