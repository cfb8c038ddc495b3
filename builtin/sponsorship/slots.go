// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/metrics"
	"github.com/vechain/slotauction/thor"
)

var slotActiveSponsors = thor.BytesToBytes32([]byte("active-sponsors"))

var metricActiveSlots = metrics.LazyLoadGaugeVec("sponsorship_active_slots", []string{"campaign"})

// slotLedger keeps the dense array of active sponsors of each campaign.
type slotLedger struct {
	registry *registry
	active   *solidity.Mapping[thor.Bytes32, thor.Bytes32]
}

func newSlotLedger(sctx *solidity.Context, registry *registry) *slotLedger {
	return &slotLedger{
		registry: registry,
		active:   solidity.NewMapping[thor.Bytes32, thor.Bytes32](sctx, slotActiveSponsors),
	}
}

func slotKey(campaign thor.Bytes32, slot uint32) thor.Bytes32 {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], slot)
	return thor.Blake2b(campaign.Bytes(), b[:])
}

// activate puts the sponsor into the given slot, which must be the next free index or one just vacated by a swap.
func (l *slotLedger) activate(id thor.Bytes32, sp *Sponsor, slot uint32, tick uint64) error {
	c, err := l.registry.getCampaign(sp.Campaign)
	if err != nil {
		return err
	}
	if slot > c.ActiveSlots {
		return errors.Errorf("slot %d beyond active range %d", slot, c.ActiveSlots)
	}
	if slot == c.ActiveSlots {
		c.ActiveSlots++
		if err := l.registry.setCampaign(sp.Campaign, c); err != nil {
			return err
		}
	}
	if err := l.active.Set(slotKey(sp.Campaign, slot), id); err != nil {
		return errors.Wrap(err, "failed to set active sponsor")
	}

	sp.Active = true
	sp.Slot = slot
	sp.LastUpdated = tick
	metricActiveSlots().SetWithLabel(int64(c.ActiveSlots), map[string]string{"campaign": sp.Campaign.AbbrevString()})
	return nil
}

// clearSlot removes the occupant of slot, moving the last occupant into the hole.
func (l *slotLedger) clearSlot(campaign thor.Bytes32, slot uint32) error {
	c, err := l.registry.getCampaign(campaign)
	if err != nil {
		return err
	}
	if c.ActiveSlots == 0 || slot >= c.ActiveSlots {
		return errors.Errorf("slot %d not occupied", slot)
	}

	last := c.ActiveSlots - 1
	if slot != last {
		movedID, err := l.active.Get(slotKey(campaign, last))
		if err != nil {
			return errors.Wrap(err, "failed to get active sponsor")
		}
		moved, err := l.registry.getSponsor(movedID)
		if err != nil {
			return err
		}
		moved.Slot = slot
		if err := l.registry.setSponsor(movedID, moved); err != nil {
			return err
		}
		if err := l.active.Set(slotKey(campaign, slot), movedID); err != nil {
			return errors.Wrap(err, "failed to set active sponsor")
		}
	}
	l.active.Delete(slotKey(campaign, last))

	c.ActiveSlots = last
	metricActiveSlots().SetWithLabel(int64(c.ActiveSlots), map[string]string{"campaign": campaign.AbbrevString()})
	return l.registry.setCampaign(campaign, c)
}

// list returns the occupants of [0, ActiveSlots). The order changes whenever a slot is cleared.
func (l *slotLedger) list(campaign thor.Bytes32) ([]thor.Bytes32, error) {
	c, err := l.registry.getCampaign(campaign)
	if err != nil {
		return nil, err
	}
	ids := make([]thor.Bytes32, 0, c.ActiveSlots)
	for i := uint32(0); i < c.ActiveSlots; i++ {
		id, err := l.active.Get(slotKey(campaign, i))
		if err != nil {
			return nil, errors.Wrap(err, "failed to get active sponsor")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
