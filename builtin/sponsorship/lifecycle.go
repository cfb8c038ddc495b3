// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/thor"
)

func validateMetadata(metadata string) error {
	if len(metadata) > thor.MaxMetadataLength {
		return reverts.Newf(reverts.InvalidInput, "metadata longer than %d bytes", thor.MaxMetadataLength)
	}
	return nil
}

// CreateSponsor registers a new unapproved sponsor for campaign and pulls its initial deposit from caller.
func (s *Sponsorship) CreateSponsor(
	caller thor.Address,
	token thor.Address,
	campaign thor.Bytes32,
	deposit *big.Int,
	rate *big.Int,
	metadata string,
) (thor.Bytes32, error) {
	if token.IsZero() {
		return thor.Bytes32{}, reverts.New(reverts.InvalidInput, "invalid token")
	}
	if campaign.IsZero() {
		return thor.Bytes32{}, reverts.New(reverts.InvalidInput, "invalid campaign")
	}
	if deposit == nil || deposit.Sign() < 0 {
		return thor.Bytes32{}, reverts.New(reverts.InvalidInput, "invalid deposit")
	}
	if err := ValidateRate(rate); err != nil {
		return thor.Bytes32{}, err
	}
	if err := validateMetadata(metadata); err != nil {
		return thor.Bytes32{}, err
	}

	id, err := s.registry.newSponsorID(caller, metadata, s.env.Tick)
	if err != nil {
		return thor.Bytes32{}, err
	}

	received := new(big.Int)
	if deposit.Sign() > 0 {
		if received, err = s.pull(token, caller, deposit); err != nil {
			return thor.Bytes32{}, err
		}
	}

	sp := &Sponsor{
		Owner:          caller,
		Token:          token,
		Balance:        received,
		PaymentPerTick: new(big.Int).Set(rate),
		Campaign:       campaign,
		LastUpdated:    s.env.Tick,
		Metadata:       metadata,
	}
	if err := s.registry.setSponsor(id, sp); err != nil {
		return thor.Bytes32{}, err
	}

	s.emit(&Event{
		Name:     EventSponsorCreated,
		Sponsor:  id,
		Campaign: campaign,
		Token:    token,
		Account:  caller,
		Amount:   new(big.Int).Set(rate),
		Metadata: metadata,
	})
	if received.Sign() > 0 {
		s.emit(&Event{Name: EventDeposit, Sponsor: id, Campaign: campaign, Token: token, Account: caller, Amount: received})
	}
	logger.Debug("sponsor created", "id", id, "campaign", campaign, "rate", rate, "deposit", received)
	return id, nil
}

// Deposit adds funds to a sponsor. Anyone may fund any sponsor.
// An active sponsor is settled first, so the new funds never revive time that already ran out.
func (s *Sponsorship) Deposit(caller thor.Address, id thor.Bytes32, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.New(reverts.InvalidInput, "invalid amount")
	}
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return nil, err
	}
	if err := s.settleIfActive(id, sp); err != nil {
		return nil, err
	}

	received, err := s.pull(sp.Token, caller, amount)
	if err != nil {
		return nil, err
	}
	sp.Balance = new(big.Int).Add(sp.Balance, received)
	if err := s.registry.setSponsor(id, sp); err != nil {
		return nil, err
	}

	s.emit(&Event{Name: EventDeposit, Sponsor: id, Campaign: sp.Campaign, Token: sp.Token, Account: caller, Amount: received})
	return received, nil
}

// UpdateBid changes the payment token and rate. The token can only change while the balance is zero.
func (s *Sponsorship) UpdateBid(caller thor.Address, id thor.Bytes32, token thor.Address, rate *big.Int) error {
	sp, err := s.getOwnedSponsor(caller, id)
	if err != nil {
		return err
	}
	if token.IsZero() {
		return reverts.New(reverts.InvalidInput, "invalid token")
	}
	if err := ValidateRate(rate); err != nil {
		return err
	}
	if err := s.settleIfActive(id, sp); err != nil {
		return err
	}
	if token != sp.Token && sp.Balance.Sign() != 0 {
		return reverts.New(reverts.StateConflict, "withdraw before changing token")
	}

	sp.Token = token
	sp.PaymentPerTick = new(big.Int).Set(rate)
	if err := s.registry.setSponsor(id, sp); err != nil {
		return err
	}
	s.emit(&Event{Name: EventBidUpdated, Sponsor: id, Campaign: sp.Campaign, Token: token, Amount: new(big.Int).Set(rate)})
	return nil
}

// UpdateMetadata replaces the metadata. Editing revokes approval and gives up any slot.
func (s *Sponsorship) UpdateMetadata(caller thor.Address, id thor.Bytes32, metadata string) error {
	sp, err := s.getOwnedSponsor(caller, id)
	if err != nil {
		return err
	}
	if err := validateMetadata(metadata); err != nil {
		return err
	}
	if sp.Active {
		if _, err := s.settle(id, sp, true, false); err != nil {
			return err
		}
	}

	sp.Approved = false
	sp.Active = false
	sp.Metadata = metadata
	if err := s.registry.setSponsor(id, sp); err != nil {
		return err
	}
	s.emit(&Event{Name: EventMetadataUpdated, Sponsor: id, Campaign: sp.Campaign, Metadata: metadata})
	return nil
}

// Withdraw pays out min(amount, balance) to recipient, the whole balance when amount is zero.
// Emptying an active sponsor deactivates it. It returns the amount paid, zero when there was nothing to pay.
func (s *Sponsorship) Withdraw(caller thor.Address, id thor.Bytes32, amount *big.Int, recipient thor.Address) (*big.Int, error) {
	sp, err := s.getOwnedSponsor(caller, id)
	if err != nil {
		return nil, err
	}
	if recipient.IsZero() {
		return nil, reverts.New(reverts.InvalidInput, "invalid recipient")
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, reverts.New(reverts.InvalidInput, "invalid amount")
	}
	if err := s.settleIfActive(id, sp); err != nil {
		return nil, err
	}
	if sp.Balance.Sign() == 0 {
		return new(big.Int), nil
	}

	paid := new(big.Int).Set(sp.Balance)
	if amount.Sign() > 0 && amount.Cmp(paid) < 0 {
		paid.Set(amount)
	}
	sp.Balance = new(big.Int).Sub(sp.Balance, paid)

	if sp.Balance.Sign() == 0 && sp.Active {
		sp.Active = false
		if err := s.slots.clearSlot(sp.Campaign, sp.Slot); err != nil {
			return nil, err
		}
		s.emit(&Event{Name: EventSponsorDeactivated, Sponsor: id, Campaign: sp.Campaign, Slot: sp.Slot})
	}
	if err := s.registry.setSponsor(id, sp); err != nil {
		return nil, err
	}
	if err := s.env.Bank.Transfer(sp.Token, s.addr, recipient, paid); err != nil {
		return nil, err
	}

	s.emit(&Event{Name: EventWithdrawal, Sponsor: id, Campaign: sp.Campaign, Token: sp.Token, Account: recipient, Amount: paid})
	return paid, nil
}

// TransferOwnership hands the sponsor over to newOwner.
func (s *Sponsorship) TransferOwnership(caller thor.Address, id thor.Bytes32, newOwner thor.Address) error {
	sp, err := s.getOwnedSponsor(caller, id)
	if err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.InvalidInput, "invalid owner")
	}

	sp.Owner = newOwner
	if err := s.registry.setSponsor(id, sp); err != nil {
		return err
	}
	s.emit(&Event{Name: EventOwnershipTransferred, Sponsor: id, Campaign: sp.Campaign, Account: newOwner})
	return nil
}
