// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"

	"github.com/vechain/slotauction/thor"
)

// Sponsor is a bidder competing for the slots of one campaign.
// Balance is the stored balance as of LastUpdated; accrual since then is not yet subtracted.
type Sponsor struct {
	Owner          thor.Address
	Token          thor.Address
	Balance        *big.Int
	PaymentPerTick *big.Int
	Approved       bool
	Active         bool
	Slot           uint32 // meaningful only while active
	Campaign       thor.Bytes32
	LastUpdated    uint64
	Metadata       string
}

// IsEmpty returns whether the record was never created.
func (s *Sponsor) IsEmpty() bool {
	return s.Owner.IsZero()
}

func (s *Sponsor) normalize() *Sponsor {
	if s.Balance == nil {
		s.Balance = new(big.Int)
	}
	if s.PaymentPerTick == nil {
		s.PaymentPerTick = new(big.Int)
	}
	return s
}

// Campaign is a named competition for a fixed number of slots.
// ActiveSlots may exceed Slots after the capacity was reduced; occupied entries are always [0, ActiveSlots).
type Campaign struct {
	Slots       uint32
	ActiveSlots uint32
}

// IsOversized returns whether more sponsors are active than the campaign allows.
func (c *Campaign) IsOversized() bool {
	return c.ActiveSlots > c.Slots
}

// IsFull returns whether no free slot is left.
func (c *Campaign) IsFull() bool {
	return c.ActiveSlots >= c.Slots
}
