// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestAppendNumbers(t *testing.T) {
	assert.Equal(t, "99999", string(appendUint64(nil, 99999, false)))
	assert.Equal(t, "1,000,000", string(appendUint64(nil, 1000000, false)))
	assert.Equal(t, "-1,000,000", string(appendInt64(nil, -1000000)))

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, "123,456,789,012,345,678,901,234,567,890", string(appendBigInt(nil, huge)))
	assert.Equal(t, "-123,456,789,012,345,678,901,234,567,890", string(appendBigInt(nil, new(big.Int).Neg(huge))))
}

func TestFormatSlogValue(t *testing.T) {
	assert.Equal(t, "1,000", string(FormatSlogValue(slog.AnyValue(big.NewInt(1000)), nil)))
	assert.Equal(t, "1,000", string(FormatSlogValue(slog.AnyValue(uint256.NewInt(1000)), nil)))
	assert.Equal(t, `"a b"`, string(FormatSlogValue(slog.StringValue("a b"), nil)))
	assert.Equal(t, "<nil>", string(FormatSlogValue(slog.AnyValue((*big.Int)(nil)), nil)))
}

func TestTerminalHandler(t *testing.T) {
	var out bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(&out, &lvl, false))

	l.Debug("hidden")
	assert.Empty(t, out.String())

	l.With("pkg", "sponsorship").Info("settled", "amount", big.NewInt(400))
	assert.Contains(t, out.String(), "INFO ")
	assert.Contains(t, out.String(), "settled")
	assert.Contains(t, out.String(), "pkg=sponsorship")
	assert.Contains(t, out.String(), "amount=400")
}

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	pkgLogger := WithContext("pkg", "test")

	var out bytes.Buffer
	SetDefault(NewLogger(JSONHandler(&out)))
	pkgLogger.Warn("late handler")

	assert.Contains(t, out.String(), `"pkg":"test"`)
	assert.Contains(t, out.String(), `"lvl":"warn"`)
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}
