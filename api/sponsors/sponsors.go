// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsors

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

type Sponsors struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Sponsors {
	return &Sponsors{rt}
}

func (s *Sponsors) handleGetSponsor(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	var sponsor *Sponsor
	if err := s.rt.View(req.Context(), func(c *runtime.Contracts) error {
		sp, err := c.Sponsorship.GetSponsor(id)
		if err != nil {
			return err
		}
		sponsor = convertSponsor(id, sp)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, sponsor)
}

func (s *Sponsors) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	var balance *Balance
	if err := s.rt.View(req.Context(), func(c *runtime.Contracts) error {
		acc, err := c.Sponsorship.Balance(id)
		if err != nil {
			return err
		}
		balance = &Balance{
			Balance: utils.Hex(acc.Balance),
			Pending: utils.Hex(acc.Pending),
			Stored:  utils.Hex(acc.Stored),
			Tick:    c.Tick,
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, balance)
}

func (s *Sponsors) handleGetBid(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	var bid *Bid
	if err := s.rt.View(req.Context(), func(c *runtime.Contracts) error {
		sp, err := c.Sponsorship.GetSponsor(id)
		if err != nil {
			return err
		}
		rate, reference, err := c.Sponsorship.Bid(id)
		if err != nil {
			return err
		}
		bid = &Bid{Token: sp.Token, Rate: utils.Hex(rate), Reference: utils.Hex(reference)}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, bid)
}

// execute runs op as the request caller and responds with the receipt.
func (s *Sponsors) execute(
	w http.ResponseWriter,
	req *http.Request,
	name string,
	op func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error),
) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	var amount *big.Int
	receipt, err := s.rt.Execute(req.Context(), name, func(c *runtime.Contracts) error {
		var err error
		amount, err = op(c, caller, id)
		return err
	})
	if err != nil {
		return err
	}
	result := &utils.Result{Receipt: receipt}
	if amount != nil {
		result.Amount = utils.Hex(amount)
	}
	return utils.WriteJSON(w, result)
}

func (s *Sponsors) handleCreate(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body CreateRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	deposit, err := utils.ParseAmount(body.Deposit, "deposit")
	if err != nil {
		return err
	}
	rate, err := utils.ParseAmount(body.Rate, "rate")
	if err != nil {
		return err
	}

	var id thor.Bytes32
	receipt, err := s.rt.Execute(req.Context(), "create_sponsor", func(c *runtime.Contracts) error {
		var err error
		id, err = c.Sponsorship.CreateSponsor(caller, body.Token, body.Campaign, deposit, rate, body.Metadata)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt, ID: &id})
}

func (s *Sponsors) handleSwap(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body SwapRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := s.rt.Execute(req.Context(), "swap", func(c *runtime.Contracts) error {
		return c.Sponsorship.Swap(caller, body.Inactive, body.Active)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt})
}

func (s *Sponsors) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	return s.execute(w, req, "deposit", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return c.Sponsorship.Deposit(caller, id, amount)
	})
}

func (s *Sponsors) handleUpdateBid(w http.ResponseWriter, req *http.Request) error {
	var body BidRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	rate, err := utils.ParseAmount(body.Rate, "rate")
	if err != nil {
		return err
	}
	return s.execute(w, req, "update_bid", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return nil, c.Sponsorship.UpdateBid(caller, id, body.Token, rate)
	})
}

func (s *Sponsors) handleUpdateMetadata(w http.ResponseWriter, req *http.Request) error {
	var body MetadataRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return s.execute(w, req, "update_metadata", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return nil, c.Sponsorship.UpdateMetadata(caller, id, body.Metadata)
	})
}

func (s *Sponsors) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body WithdrawRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	return s.execute(w, req, "withdraw", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return c.Sponsorship.Withdraw(caller, id, amount, body.Recipient)
	})
}

func (s *Sponsors) handleTransferOwnership(w http.ResponseWriter, req *http.Request) error {
	var body OwnerRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return s.execute(w, req, "transfer_ownership", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return nil, c.Sponsorship.TransferOwnership(caller, id, body.Owner)
	})
}

func (s *Sponsors) handleLift(w http.ResponseWriter, req *http.Request) error {
	return s.execute(w, req, "lift", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return nil, c.Sponsorship.Lift(caller, id)
	})
}

func (s *Sponsors) handleDrop(w http.ResponseWriter, req *http.Request) error {
	return s.execute(w, req, "drop", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return c.Sponsorship.Drop(caller, id)
	})
}

func (s *Sponsors) handleProcessPayment(w http.ResponseWriter, req *http.Request) error {
	return s.execute(w, req, "process_payment", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return c.Sponsorship.ProcessPayment(caller, id)
	})
}

func (s *Sponsors) handleSetApproved(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return s.execute(w, req, "set_approved", func(c *runtime.Contracts, caller thor.Address, id thor.Bytes32) (*big.Int, error) {
		return nil, c.Sponsorship.SetApproved(caller, id, body.Approved)
	})
}

func (s *Sponsors) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /sponsors").
		HandlerFunc(utils.WrapHandlerFunc(s.handleCreate))
	sub.Path("/swap").
		Methods(http.MethodPost).
		Name("POST /sponsors/swap").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSwap))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /sponsors/{id}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSponsor))
	sub.Path("/{id}/balance").
		Methods(http.MethodGet).
		Name("GET /sponsors/{id}/balance").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetBalance))
	sub.Path("/{id}/bid").
		Methods(http.MethodGet).
		Name("GET /sponsors/{id}/bid").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetBid))

	for _, r := range []struct {
		path    string
		handler utils.HandlerFunc
	}{
		{"deposit", s.handleDeposit},
		{"bid", s.handleUpdateBid},
		{"metadata", s.handleUpdateMetadata},
		{"withdraw", s.handleWithdraw},
		{"owner", s.handleTransferOwnership},
		{"lift", s.handleLift},
		{"drop", s.handleDrop},
		{"process", s.handleProcessPayment},
		{"approve", s.handleSetApproved},
	} {
		sub.Path("/{id}/" + r.path).
			Methods(http.MethodPost).
			Name("POST /sponsors/{id}/" + r.path).
			HandlerFunc(utils.WrapHandlerFunc(r.handler))
	}
}
