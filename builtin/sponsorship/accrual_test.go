// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/thor"
)

func TestAccrue(t *testing.T) {
	tests := []struct {
		name                     string
		stored, rate             int64
		lastUpdated, now         uint64
		balance, pending, wantStored int64
	}{
		{"no time elapsed", 1000, 100, 5, 5, 1000, 0, 1000},
		{"partial", 1000, 100, 0, 3, 700, 300, 1000},
		{"exactly consumed", 1000, 100, 0, 10, 0, 1000, 1000},
		{"capped at stored", 1000, 100, 0, 11, 0, 1000, 1000},
		{"zero rate", 1000, 0, 0, 1 << 40, 1000, 0, 1000},
		{"clock behind checkpoint", 1000, 100, 10, 3, 1000, 0, 1000},
		{"empty", 0, 100, 0, 100, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := Accrue(big.NewInt(tt.stored), big.NewInt(tt.rate), tt.lastUpdated, tt.now)
			assertBig(t, tt.balance, acc.Balance)
			assertBig(t, tt.pending, acc.Pending)
			assertBig(t, tt.wantStored, acc.Stored)
		})
	}
}

func TestAccrueDoesNotAlias(t *testing.T) {
	stored := big.NewInt(1000)
	acc := Accrue(stored, big.NewInt(1), 0, 10)
	acc.Stored.SetInt64(1)
	acc.Balance.SetInt64(1)
	assertBig(t, 1000, stored)
}

func TestAccrueInvariants(t *testing.T) {
	f := fuzz.NewWithSeed(42).NilChance(0)
	for range 2000 {
		var (
			stored, rate     uint64
			lastUpdated, now uint32
		)
		f.Fuzz(&stored)
		f.Fuzz(&rate)
		f.Fuzz(&lastUpdated)
		f.Fuzz(&now)

		s := new(big.Int).SetUint64(stored)
		acc := Accrue(s, new(big.Int).SetUint64(rate), uint64(lastUpdated), uint64(now))

		assert.Zero(t, s.Cmp(new(big.Int).Add(acc.Balance, acc.Pending)))
		assert.True(t, acc.Pending.Cmp(s) <= 0)
		assert.True(t, acc.Balance.Sign() >= 0)

		// a second accrual at the same tick from the settled checkpoint owes nothing
		again := Accrue(acc.Balance, new(big.Int).SetUint64(rate), uint64(now), uint64(now))
		assert.Equal(t, 0, again.Pending.Sign())
	}
}

func TestValidateRate(t *testing.T) {
	maxRate := new(big.Int).Div(thor.MaxUint256, new(big.Int).SetUint64(thor.TicksPerYear))

	assert.NoError(t, ValidateRate(new(big.Int)))
	assert.NoError(t, ValidateRate(big.NewInt(100)))
	assert.NoError(t, ValidateRate(maxRate))

	for _, rate := range []*big.Int{
		nil,
		big.NewInt(-1),
		new(big.Int).Add(maxRate, big.NewInt(1)),
		new(big.Int).Lsh(big.NewInt(1), 256),
	} {
		err := ValidateRate(rate)
		assert.Error(t, err)
		assert.Equal(t, reverts.InvalidInput, reverts.KindOf(err))
	}
}
