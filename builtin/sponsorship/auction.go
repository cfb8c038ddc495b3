// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/thor"
)

// requireContender checks sp may take a slot: approved, inactive and funded.
func requireContender(sp *Sponsor) error {
	if !sp.Approved {
		return reverts.New(reverts.StateConflict, "sponsor not approved")
	}
	if sp.Active {
		return reverts.New(reverts.StateConflict, "sponsor already active")
	}
	if sp.Balance.Sign() == 0 {
		return reverts.New(reverts.StateConflict, "sponsor has no balance")
	}
	return nil
}

// Lift activates an approved sponsor into the next free slot of its campaign.
// A sponsor that is unapproved, already active or has no live balance is rejected as a state conflict,
// and a full campaign as a capacity error.
func (s *Sponsorship) Lift(caller thor.Address, id thor.Bytes32) error {
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return err
	}
	if err := requireContender(sp); err != nil {
		return err
	}
	c, err := s.registry.getCampaign(sp.Campaign)
	if err != nil {
		return err
	}
	if c.IsFull() {
		return reverts.New(reverts.Capacity, "campaign is full")
	}

	if err := s.slots.activate(id, sp, c.ActiveSlots, s.env.Tick); err != nil {
		return err
	}
	if err := s.registry.setSponsor(id, sp); err != nil {
		return err
	}
	s.emit(&Event{Name: EventSponsorActivated, Sponsor: id, Campaign: sp.Campaign, Account: caller, Slot: sp.Slot})
	logger.Debug("sponsor lifted", "id", id, "campaign", sp.Campaign, "slot", sp.Slot)
	return nil
}

// Drop evicts an active sponsor from a campaign whose capacity was reduced below its occupancy.
func (s *Sponsorship) Drop(caller thor.Address, id thor.Bytes32) (*big.Int, error) {
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return nil, err
	}
	if !sp.Active {
		return nil, reverts.New(reverts.StateConflict, "sponsor not active")
	}
	c, err := s.registry.getCampaign(sp.Campaign)
	if err != nil {
		return nil, err
	}
	if !c.IsOversized() {
		return nil, reverts.New(reverts.StateConflict, "campaign not oversized")
	}
	return s.settle(id, sp, true, false)
}

// Swap displaces the active sponsor activeID with inactiveID. While the incumbent is still funded after
// settlement, the newcomer's bid must be strictly higher in the reference unit.
func (s *Sponsorship) Swap(caller thor.Address, inactiveID, activeID thor.Bytes32) error {
	newcomer, err := s.registry.getSponsor(inactiveID)
	if err != nil {
		return err
	}
	if err := requireContender(newcomer); err != nil {
		return err
	}
	incumbent, err := s.registry.getSponsor(activeID)
	if err != nil {
		return err
	}
	if !incumbent.Active {
		return reverts.New(reverts.StateConflict, "incumbent not active")
	}
	if incumbent.Campaign != newcomer.Campaign {
		return reverts.New(reverts.StateConflict, "sponsors compete in different campaigns")
	}

	slot := incumbent.Slot
	live := s.accrue(incumbent).Balance
	if live.Sign() > 0 {
		bid, err := s.price(newcomer)
		if err != nil {
			return err
		}
		incumbentBid, err := s.price(incumbent)
		if err != nil {
			return err
		}
		if bid.Cmp(incumbentBid) <= 0 {
			return reverts.New(reverts.StateConflict, "bid not higher than incumbent")
		}
	}

	if _, err := s.settle(activeID, incumbent, true, true); err != nil {
		return err
	}
	if err := s.slots.activate(inactiveID, newcomer, slot, s.env.Tick); err != nil {
		return err
	}
	if err := s.registry.setSponsor(inactiveID, newcomer); err != nil {
		return err
	}

	s.emit(&Event{
		Name:        EventSponsorSwapped,
		Sponsor:     inactiveID,
		Counterpart: activeID,
		Campaign:    newcomer.Campaign,
		Account:     caller,
		Slot:        slot,
	})
	logger.Debug("sponsor swapped", "in", inactiveID, "out", activeID, "campaign", newcomer.Campaign, "slot", slot)
	return nil
}

// ProcessPayment settles an active sponsor. Anyone may call it.
func (s *Sponsorship) ProcessPayment(caller thor.Address, id thor.Bytes32) (*big.Int, error) {
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return nil, err
	}
	if !sp.Active {
		return nil, reverts.New(reverts.StateConflict, "sponsor not active")
	}
	return s.settle(id, sp, false, false)
}

// SetApproved grants or revokes approval. Revoking does not evict an active sponsor.
func (s *Sponsorship) SetApproved(caller thor.Address, id thor.Bytes32, approved bool) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return err
	}
	sp.Approved = approved
	if err := s.registry.setSponsor(id, sp); err != nil {
		return err
	}
	s.emit(&Event{Name: EventApprovalSet, Sponsor: id, Campaign: sp.Campaign, Approved: approved})
	return nil
}

// SetNumSlots changes the capacity of a campaign. Sponsors above a reduced capacity stay until dropped.
func (s *Sponsorship) SetNumSlots(caller thor.Address, campaign thor.Bytes32, slots uint32) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if campaign.IsZero() {
		return reverts.New(reverts.InvalidInput, "invalid campaign")
	}
	c, err := s.registry.getCampaign(campaign)
	if err != nil {
		return err
	}
	c.Slots = slots
	if err := s.registry.setCampaign(campaign, c); err != nil {
		return err
	}
	s.emit(&Event{Name: EventSlotCountChanged, Campaign: campaign, Slot: slots})
	return nil
}

// WithdrawTreasury pays the collected total of token to recipient and resets it.
func (s *Sponsorship) WithdrawTreasury(caller thor.Address, token thor.Address, recipient thor.Address) (*big.Int, error) {
	if err := s.requireOwner(caller); err != nil {
		return nil, err
	}
	if recipient.IsZero() {
		return nil, reverts.New(reverts.InvalidInput, "invalid recipient")
	}
	total, err := s.treasury.take(token)
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return total, nil
	}
	if err := s.env.Bank.Transfer(token, s.addr, recipient, total); err != nil {
		return nil, err
	}
	s.emit(&Event{Name: EventTreasuryWithdrawal, Token: token, Account: recipient, Amount: new(big.Int).Set(total)})
	return total, nil
}
