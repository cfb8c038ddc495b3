// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

type WithdrawRequest struct {
	Recipient thor.Address `json:"recipient"`
}

type Treasury struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Treasury {
	return &Treasury{rt}
}

func (t *Treasury) handleGetTreasury(w http.ResponseWriter, req *http.Request) error {
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	var amount *big.Int
	if err := t.rt.View(req.Context(), func(c *runtime.Contracts) error {
		amount, err = c.Sponsorship.Treasury(token)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Amount{Amount: utils.Hex(amount)})
}

func (t *Treasury) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	var body WithdrawRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	var amount *big.Int
	receipt, err := t.rt.Execute(req.Context(), "withdraw_treasury", func(c *runtime.Contracts) error {
		var err error
		amount, err = c.Sponsorship.WithdrawTreasury(caller, token, body.Recipient)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt, Amount: utils.Hex(amount)})
}

func (t *Treasury) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{token}").
		Methods(http.MethodGet).
		Name("GET /treasury/{token}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTreasury))
	sub.Path("/{token}/withdraw").
		Methods(http.MethodPost).
		Name("POST /treasury/{token}/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(t.handleWithdraw))
}
