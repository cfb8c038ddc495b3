// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sponsorship implements the slot auction: sponsors bid a payment rate for the limited
// active slots of a campaign and pay for the time they hold one.
//
// Payments accrue lazily. Nothing runs between operations; every mutating entry point settles the
// sponsor it touches against the current tick before applying its own effect.
package sponsorship

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/metrics"
	"github.com/vechain/slotauction/thor"
)

var (
	logger = log.WithContext("pkg", "sponsorship")

	slotOwner = thor.BytesToBytes32([]byte("owner"))

	metricSettlements = metrics.LazyLoadCounterVec("sponsorship_settlements_count", []string{"deactivated"})
)

// Oracle converts a token amount into the common reference unit. Zero means no conversion is known.
type Oracle interface {
	Price(token thor.Address, amount *big.Int) (*big.Int, error)
}

// Bank moves the tokens sponsors pay with.
type Bank interface {
	BalanceOf(token, holder thor.Address) (*big.Int, error)
	// TransferFrom moves amount from 'from' to 'to' using the allowance granted to spender.
	TransferFrom(token, spender, from, to thor.Address, amount *big.Int) error
	Transfer(token, from, to thor.Address, amount *big.Int) error
}

// Env is what an operation observes of its host. Tick is constant for the whole operation.
type Env struct {
	Tick   uint64
	Oracle Oracle
	Bank   Bank
	Emit   func(*Event)
}

// Sponsorship is the auction engine bound to a state.
type Sponsorship struct {
	addr     thor.Address
	env      *Env
	owner    *solidity.Address
	registry *registry
	slots    *slotLedger
	treasury *treasury
}

// New creates the engine over the contract storage of sctx.
func New(sctx *solidity.Context, env *Env) *Sponsorship {
	reg := newRegistry(sctx)
	return &Sponsorship{
		addr:     sctx.Address(),
		env:      env,
		owner:    solidity.NewAddress(sctx, slotOwner),
		registry: reg,
		slots:    newSlotLedger(sctx, reg),
		treasury: newTreasury(sctx),
	}
}

// Address returns the account holding the deposited funds.
func (s *Sponsorship) Address() thor.Address {
	return s.addr
}

// Owner returns the privileged owner.
func (s *Sponsorship) Owner() (thor.Address, error) {
	owner, err := s.owner.Get()
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "failed to get owner")
	}
	return owner, nil
}

// SetOwner sets the privileged owner. It is meant for genesis; operations never call it.
func (s *Sponsorship) SetOwner(owner thor.Address) error {
	if owner.IsZero() {
		return reverts.New(reverts.InvalidInput, "zero owner")
	}
	return s.owner.Set(&owner)
}

func (s *Sponsorship) requireOwner(caller thor.Address) error {
	owner, err := s.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return reverts.New(reverts.Authorization, "caller is not the owner")
	}
	return nil
}

func (s *Sponsorship) getOwnedSponsor(caller thor.Address, id thor.Bytes32) (*Sponsor, error) {
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return nil, err
	}
	if sp.Owner != caller {
		return nil, reverts.New(reverts.Authorization, "caller is not the sponsor owner")
	}
	return sp, nil
}

// accrue is the live accrual of sp. Inactive sponsors accrue nothing.
func (s *Sponsorship) accrue(sp *Sponsor) *Accrual {
	if !sp.Active {
		return Accrue(sp.Balance, new(big.Int), sp.LastUpdated, s.env.Tick)
	}
	return Accrue(sp.Balance, sp.PaymentPerTick, sp.LastUpdated, s.env.Tick)
}

// settle materializes the pending payment of sp into the treasury and writes sp back.
// A sponsor whose balance is consumed, or forceDeactivate is set, leaves its slot;
// skipSlotClear keeps the slot array untouched for a swap to reuse.
// It returns the settled amount.
func (s *Sponsorship) settle(id thor.Bytes32, sp *Sponsor, forceDeactivate, skipSlotClear bool) (*big.Int, error) {
	acc := s.accrue(sp)
	wasActive := sp.Active

	if err := s.treasury.credit(sp.Token, acc.Pending); err != nil {
		return nil, err
	}
	sp.Balance = acc.Balance
	sp.LastUpdated = s.env.Tick
	sp.Active = wasActive && !forceDeactivate && acc.Balance.Sign() > 0

	if acc.Pending.Sign() > 0 {
		s.emit(&Event{
			Name:     EventPaymentSettled,
			Sponsor:  id,
			Campaign: sp.Campaign,
			Token:    sp.Token,
			Amount:   new(big.Int).Set(acc.Pending),
		})
	}

	deactivated := wasActive && !sp.Active
	if deactivated && !skipSlotClear {
		if err := s.slots.clearSlot(sp.Campaign, sp.Slot); err != nil {
			return nil, err
		}
		s.emit(&Event{Name: EventSponsorDeactivated, Sponsor: id, Campaign: sp.Campaign, Slot: sp.Slot})
		logger.Debug("sponsor deactivated", "id", id, "campaign", sp.Campaign, "balance", sp.Balance)
	}
	if err := s.registry.setSponsor(id, sp); err != nil {
		return nil, err
	}
	metricSettlements().AddWithLabel(1, map[string]string{"deactivated": boolLabel(deactivated)})
	return acc.Pending, nil
}

// settleIfActive settles an active sponsor and leaves an inactive one untouched.
func (s *Sponsorship) settleIfActive(id thor.Bytes32, sp *Sponsor) error {
	if !sp.Active {
		return nil
	}
	_, err := s.settle(id, sp, false, false)
	return err
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// GetSponsor returns the sponsor record as stored.
func (s *Sponsorship) GetSponsor(id thor.Bytes32) (*Sponsor, error) {
	return s.registry.getSponsor(id)
}

// GetCampaign returns the campaign record.
func (s *Sponsorship) GetCampaign(id thor.Bytes32) (*Campaign, error) {
	return s.registry.getCampaign(id)
}

// Balance returns the live balance, the pending payment and the stored balance of a sponsor.
func (s *Sponsorship) Balance(id thor.Bytes32) (*Accrual, error) {
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return nil, err
	}
	return s.accrue(sp), nil
}

// ActiveSponsors returns the sponsors holding a slot of the campaign. The order is not stable across removals.
func (s *Sponsorship) ActiveSponsors(campaign thor.Bytes32) ([]thor.Bytes32, error) {
	return s.slots.list(campaign)
}

// Bid returns the payment rate of a sponsor and its value in the reference unit.
func (s *Sponsorship) Bid(id thor.Bytes32) (rate *big.Int, reference *big.Int, err error) {
	sp, err := s.registry.getSponsor(id)
	if err != nil {
		return nil, nil, err
	}
	reference, err = s.price(sp)
	if err != nil {
		return nil, nil, err
	}
	return sp.PaymentPerTick, reference, nil
}

// Treasury returns the collected total of a token.
func (s *Sponsorship) Treasury(token thor.Address) (*big.Int, error) {
	return s.treasury.get(token)
}

func (s *Sponsorship) price(sp *Sponsor) (*big.Int, error) {
	p, err := s.env.Oracle.Price(sp.Token, sp.PaymentPerTick)
	if err != nil {
		return nil, errors.WithMessage(err, "oracle")
	}
	if p == nil {
		return new(big.Int), nil
	}
	return p, nil
}

// pull moves amount of token from 'from' into the engine and returns what actually arrived.
func (s *Sponsorship) pull(token, from thor.Address, amount *big.Int) (*big.Int, error) {
	before, err := s.env.Bank.BalanceOf(token, s.addr)
	if err != nil {
		return nil, errors.WithMessage(err, "balance before deposit")
	}
	if err := s.env.Bank.TransferFrom(token, s.addr, from, s.addr, amount); err != nil {
		return nil, errors.WithMessage(err, "deposit transfer")
	}
	after, err := s.env.Bank.BalanceOf(token, s.addr)
	if err != nil {
		return nil, errors.WithMessage(err, "balance after deposit")
	}
	received := new(big.Int).Sub(after, before)
	if received.Sign() < 0 {
		return nil, errors.New("engine balance decreased on deposit")
	}
	return received, nil
}
