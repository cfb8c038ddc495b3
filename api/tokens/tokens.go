// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

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

// Token summarizes a token ledger.
type Token struct {
	Address     thor.Address          `json:"address"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
	FeeBps      uint64                `json:"feeBps"`
}

type ApproveRequest struct {
	Spender thor.Address          `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

type TransferRequest struct {
	To     thor.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Tokens struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Tokens {
	return &Tokens{rt}
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	token := &Token{Address: addr}
	if err := t.rt.View(req.Context(), func(c *runtime.Contracts) error {
		supply, err := c.Token.TotalSupply(addr)
		if err != nil {
			return err
		}
		fee, err := c.Token.FeeBps(addr)
		if err != nil {
			return err
		}
		token.TotalSupply, token.FeeBps = utils.Hex(supply), fee
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, token)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	var balance *big.Int
	if err := t.rt.View(req.Context(), func(c *runtime.Contracts) error {
		balance, err = c.Token.BalanceOf(token, holder)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Amount{Amount: utils.Hex(balance)})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	spender, err := utils.AddressVar(req, "spender")
	if err != nil {
		return err
	}
	var allowance *big.Int
	if err := t.rt.View(req.Context(), func(c *runtime.Contracts) error {
		allowance, err = c.Token.Allowance(token, holder, spender)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Amount{Amount: utils.Hex(allowance)})
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	receipt, err := t.rt.Execute(req.Context(), "approve", func(c *runtime.Contracts) error {
		return c.Token.Approve(token, caller, body.Spender, amount)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt})
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	receipt, err := t.rt.Execute(req.Context(), "transfer", func(c *runtime.Contracts) error {
		return c.Token.Transfer(token, caller, body.To, amount)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{token}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{token}/approve").
		Methods(http.MethodPost).
		Name("POST /tokens/{token}/approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
	sub.Path("/{token}/transfer").
		Methods(http.MethodPost).
		Name("POST /tokens/{token}/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer))
	sub.Path("/{token}/{holder}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}/{holder}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{token}/{holder}/allowance/{spender}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}/{holder}/allowance/{spender}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
}
