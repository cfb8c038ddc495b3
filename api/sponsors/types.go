// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsors

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/builtin/sponsorship"
	"github.com/vechain/slotauction/thor"
)

// Sponsor is the stored record of a sponsor. Balance is as of LastUpdated, see Balance for the live value.
type Sponsor struct {
	ID             thor.Bytes32          `json:"id"`
	Owner          thor.Address          `json:"owner"`
	Token          thor.Address          `json:"token"`
	Balance        *math.HexOrDecimal256 `json:"balance"`
	PaymentPerTick *math.HexOrDecimal256 `json:"paymentPerTick"`
	Approved       bool                  `json:"approved"`
	Active         bool                  `json:"active"`
	Slot           *uint32               `json:"slot,omitempty"`
	Campaign       thor.Bytes32          `json:"campaign"`
	LastUpdated    uint64                `json:"lastUpdated"`
	Metadata       string                `json:"metadata"`
}

func convertSponsor(id thor.Bytes32, sp *sponsorship.Sponsor) *Sponsor {
	s := &Sponsor{
		ID:             id,
		Owner:          sp.Owner,
		Token:          sp.Token,
		Balance:        utils.Hex(sp.Balance),
		PaymentPerTick: utils.Hex(sp.PaymentPerTick),
		Approved:       sp.Approved,
		Active:         sp.Active,
		Campaign:       sp.Campaign,
		LastUpdated:    sp.LastUpdated,
		Metadata:       sp.Metadata,
	}
	if sp.Active {
		slot := sp.Slot
		s.Slot = &slot
	}
	return s
}

// Balance splits the stored balance into what is left and what is owed since the last settlement.
type Balance struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
	Pending *math.HexOrDecimal256 `json:"pending"`
	Stored  *math.HexOrDecimal256 `json:"stored"`
	Tick    uint64                `json:"tick"`
}

// Bid is the payment rate of a sponsor and its value in the oracle reference unit.
type Bid struct {
	Token     thor.Address          `json:"token"`
	Rate      *math.HexOrDecimal256 `json:"rate"`
	Reference *math.HexOrDecimal256 `json:"reference"`
}

type CreateRequest struct {
	Token    thor.Address          `json:"token"`
	Campaign thor.Bytes32          `json:"campaign"`
	Deposit  *math.HexOrDecimal256 `json:"deposit"`
	Rate     *math.HexOrDecimal256 `json:"rate"`
	Metadata string                `json:"metadata"`
}

type SwapRequest struct {
	Inactive thor.Bytes32 `json:"inactive"`
	Active   thor.Bytes32 `json:"active"`
}

type AmountRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type BidRequest struct {
	Token thor.Address          `json:"token"`
	Rate  *math.HexOrDecimal256 `json:"rate"`
}

type MetadataRequest struct {
	Metadata string `json:"metadata"`
}

type WithdrawRequest struct {
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Recipient thor.Address          `json:"recipient"`
}

type OwnerRequest struct {
	Owner thor.Address `json:"owner"`
}

type ApproveRequest struct {
	Approved bool `json:"approved"`
}
