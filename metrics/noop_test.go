// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	// meters accept values without a backend
	CounterVec("runtime_ops_count", []string{"op", "outcome"}).AddWithLabel(1, map[string]string{"op": "lift", "outcome": "ok"})
	Histogram("runtime_op_duration_us", BucketOpMicros).Observe(42)
	GaugeVec("sponsorship_active_slots", []string{"campaign"}).SetWithLabel(2, map[string]string{"campaign": "homepage"})
	Gauge("runtime_tick").Set(7)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "metrics disabled")
}
