// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"

	"github.com/vechain/slotauction/thor"
)

// Signals emitted by the engine, in the order they happen.
const (
	EventSponsorCreated       = "SponsorCreated"
	EventDeposit              = "Deposit"
	EventBidUpdated           = "BidUpdated"
	EventMetadataUpdated      = "MetadataUpdated"
	EventOwnershipTransferred = "OwnershipTransferred"
	EventApprovalSet          = "ApprovalSet"
	EventSlotCountChanged     = "SlotCountChanged"
	EventSponsorActivated     = "SponsorActivated"
	EventSponsorDeactivated   = "SponsorDeactivated"
	EventSponsorSwapped       = "SponsorSwapped"
	EventPaymentSettled       = "PaymentSettled"
	EventWithdrawal           = "Withdrawal"
	EventTreasuryWithdrawal   = "TreasuryWithdrawal"
)

// Event is an observable signal. Fields not relevant to a signal are left zero.
type Event struct {
	Name        string       `json:"name"`
	Sponsor     thor.Bytes32 `json:"sponsor"`
	Campaign    thor.Bytes32 `json:"campaign"`
	Counterpart thor.Bytes32 `json:"counterpart"` // the displaced sponsor of a swap
	Token       thor.Address `json:"token"`
	Account     thor.Address `json:"account"` // owner, depositor or recipient
	Amount      *big.Int     `json:"amount,omitempty"`
	Slot        uint32       `json:"slot"`
	Approved    bool         `json:"approved"`
	Metadata    string       `json:"metadata,omitempty"`
}

// Topic returns the keccak hash of the event name.
func (e *Event) Topic() thor.Bytes32 {
	return thor.Keccak256([]byte(e.Name))
}

func (s *Sponsorship) emit(ev *Event) {
	if s.env.Emit != nil {
		s.env.Emit(ev)
	}
}
