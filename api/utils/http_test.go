// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/thor"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest},
		{"forbidden", Forbidden(errors.New("no")), http.StatusForbidden},
		{"custom", HTTPError(errors.New("teapot"), http.StatusTeapot), http.StatusTeapot},
		{"revert", reverts.New(reverts.NotFound, "sponsor not found"), http.StatusNotFound},
		{"wrapped revert", errors.WithMessage(reverts.New(reverts.Capacity, "full"), "lift"), http.StatusConflict},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.err != nil {
				assert.Contains(t, rec.Body.String(), tt.err.Error())
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusOf(reverts.Authorization))
	assert.Equal(t, http.StatusBadRequest, StatusOf(reverts.InvalidInput))
	assert.Equal(t, http.StatusConflict, StatusOf(reverts.StateConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(0))
}

func TestCaller(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	_, err := Caller(req)
	var he *httpError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.status)

	req.Header.Set(CallerHeader, "nonsense")
	_, err = Caller(req)
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.status)

	addr := thor.BytesToAddress([]byte("alice"))
	req.Header.Set(CallerHeader, addr.String())
	caller, err := Caller(req)
	require.NoError(t, err)
	assert.Equal(t, addr, caller)
}

func TestPathVars(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
		"campaign": "homepage",
		"token":    thor.NativeToken.String(),
		"bad":      strings.Repeat("z", 40),
	})

	campaign, err := Bytes32Var(req, "campaign")
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte("homepage")), campaign)

	token, err := AddressVar(req, "token")
	require.NoError(t, err)
	assert.Equal(t, thor.NativeToken, token)

	_, err = AddressVar(req, "bad")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	_, err := ParseAmount(nil, "amount")
	assert.EqualError(t, err, "amount: required")

	_, err = ParseAmount(math.NewHexOrDecimal256(-1), "amount")
	assert.Error(t, err)

	v := math.NewHexOrDecimal256(42)
	amount, err := ParseAmount(v, "amount")
	require.NoError(t, err)
	assert.Equal(t, "42", amount.String())
	amount.SetInt64(1)
	assert.Equal(t, "0x2a", mustText(t, v), "the parsed amount is a copy")

	assert.Equal(t, "0x0", mustText(t, Hex(nil)))
}

func mustText(t *testing.T, v *math.HexOrDecimal256) string {
	text, err := v.MarshalText()
	require.NoError(t, err)
	return string(text)
}
