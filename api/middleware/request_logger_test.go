// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/log"
)

func TestRequestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		enabled   bool
		threshold time.Duration
		delay     time.Duration
		shouldLog bool
	}{
		{"enabled", true, 0, 0, true},
		{"disabled", false, 0, 0, false},
		{"slow query", false, 10 * time.Millisecond, 20 * time.Millisecond, true},
		{"fast query", false, time.Second, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewLogger(log.JSONHandler(&buf))
			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			var seenBody string
			handler := RequestLoggerMiddleware(logger, &enabled, tt.threshold)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(tt.delay)
				data, _ := io.ReadAll(r.Body)
				seenBody = string(data)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/sponsors", strings.NewReader(`{"rate":"1"}`))
			req.Header.Set(utils.CallerHeader, "0x00000000000000000000000000000000000a11ce")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, `{"rate":"1"}`, seenBody, "the body reaches the handler")
			if tt.shouldLog {
				assert.Contains(t, buf.String(), "API Request")
				assert.Contains(t, buf.String(), "a11ce")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
