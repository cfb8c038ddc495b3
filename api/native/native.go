// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package native

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

type ValueRequest struct {
	Value *math.HexOrDecimal256 `json:"value"`
}

type CreateRequest struct {
	Campaign thor.Bytes32          `json:"campaign"`
	Value    *math.HexOrDecimal256 `json:"value"`
	Rate     *math.HexOrDecimal256 `json:"rate"`
	Metadata string                `json:"metadata"`
}

type DepositRequest struct {
	ID    thor.Bytes32          `json:"id"`
	Value *math.HexOrDecimal256 `json:"value"`
}

// Native serves the native balance adapter.
type Native struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Native {
	return &Native{rt}
}

func (n *Native) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	account, err := utils.AddressVar(req, "account")
	if err != nil {
		return err
	}
	var balance *big.Int
	if err := n.rt.View(req.Context(), func(c *runtime.Contracts) error {
		balance, err = c.State.GetBalance(account)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Amount{Amount: utils.Hex(balance)})
}

func (n *Native) handleCreateSponsor(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body CreateRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	value, err := utils.ParseAmount(body.Value, "value")
	if err != nil {
		return err
	}
	rate, err := utils.ParseAmount(body.Rate, "rate")
	if err != nil {
		return err
	}
	var id thor.Bytes32
	receipt, err := n.rt.Execute(req.Context(), "native_create_sponsor", func(c *runtime.Contracts) error {
		var err error
		id, err = c.Wrapper.CreateSponsor(caller, value, body.Campaign, rate, body.Metadata)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt, ID: &id})
}

func (n *Native) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body DepositRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	value, err := utils.ParseAmount(body.Value, "value")
	if err != nil {
		return err
	}
	var received *big.Int
	receipt, err := n.rt.Execute(req.Context(), "native_deposit", func(c *runtime.Contracts) error {
		var err error
		received, err = c.Wrapper.Deposit(caller, body.ID, value)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt, Amount: utils.Hex(received)})
}

func (n *Native) handleWrap(unwrap bool) utils.HandlerFunc {
	name := "wrap"
	if unwrap {
		name = "unwrap"
	}
	return func(w http.ResponseWriter, req *http.Request) error {
		caller, err := utils.Caller(req)
		if err != nil {
			return err
		}
		var body ValueRequest
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		value, err := utils.ParseAmount(body.Value, "value")
		if err != nil {
			return err
		}
		receipt, err := n.rt.Execute(req.Context(), name, func(c *runtime.Contracts) error {
			if unwrap {
				return c.Wrapper.Unwrap(caller, value)
			}
			return c.Wrapper.Wrap(caller, value)
		})
		if err != nil {
			return err
		}
		return utils.WriteJSON(w, &utils.Result{Receipt: receipt})
	}
}

func (n *Native) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/sponsors").
		Methods(http.MethodPost).
		Name("POST /native/sponsors").
		HandlerFunc(utils.WrapHandlerFunc(n.handleCreateSponsor))
	sub.Path("/deposit").
		Methods(http.MethodPost).
		Name("POST /native/deposit").
		HandlerFunc(utils.WrapHandlerFunc(n.handleDeposit))
	sub.Path("/wrap").
		Methods(http.MethodPost).
		Name("POST /native/wrap").
		HandlerFunc(utils.WrapHandlerFunc(n.handleWrap(false)))
	sub.Path("/unwrap").
		Methods(http.MethodPost).
		Name("POST /native/unwrap").
		HandlerFunc(utils.WrapHandlerFunc(n.handleWrap(true)))
	sub.Path("/{account}").
		Methods(http.MethodGet).
		Name("GET /native/{account}").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetBalance))
}
