// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/thor"
)

var ticksPerYear = uint256.NewInt(thor.TicksPerYear)

// Accrual is the live view of a sponsor balance at some tick.
// Balance + Pending == Stored always holds.
type Accrual struct {
	Balance *big.Int `json:"balance"`
	Pending *big.Int `json:"pending"`
	Stored  *big.Int `json:"stored"`
}

// Accrue computes the payment owed since lastUpdated, capped at the stored balance.
func Accrue(stored, rate *big.Int, lastUpdated, now uint64) *Accrual {
	pending := new(big.Int)
	if now > lastUpdated && rate.Sign() > 0 {
		pending.SetUint64(now - lastUpdated)
		pending.Mul(pending, rate)
		if pending.Cmp(stored) > 0 {
			pending.Set(stored)
		}
	}
	return &Accrual{
		Balance: new(big.Int).Sub(stored, pending),
		Pending: pending,
		Stored:  new(big.Int).Set(stored),
	}
}

// ValidateRate rejects rates whose accrual over a year of ticks would not fit 256 bits.
func ValidateRate(rate *big.Int) error {
	if rate == nil || rate.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "invalid payment rate")
	}
	r, overflow := uint256.FromBig(rate)
	if overflow {
		return reverts.New(reverts.InvalidInput, "payment rate overflows")
	}
	if _, overflow := new(uint256.Int).MulOverflow(r, ticksPerYear); overflow {
		return reverts.New(reverts.InvalidInput, "payment rate overflows")
	}
	return nil
}
