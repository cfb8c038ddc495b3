// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/runtime"
)

// Price is the value of thor.PriceScale token units in the reference unit. Zero means unpriced.
type Price struct {
	Price *math.HexOrDecimal256 `json:"price"`
}

type Oracle struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Oracle {
	return &Oracle{rt}
}

func (o *Oracle) handleGetPrice(w http.ResponseWriter, req *http.Request) error {
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	var price *big.Int
	if err := o.rt.View(req.Context(), func(c *runtime.Contracts) error {
		price, err = c.Oracle.GetPrice(token)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Price{Price: utils.Hex(price)})
}

func (o *Oracle) handleSetPrice(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	token, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	var body Price
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	price, err := utils.ParseAmount(body.Price, "price")
	if err != nil {
		return err
	}
	receipt, err := o.rt.Execute(req.Context(), "set_price", func(c *runtime.Contracts) error {
		return c.Oracle.SetPrice(caller, token, price)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt})
}

func (o *Oracle) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{token}").
		Methods(http.MethodGet).
		Name("GET /oracle/{token}").
		HandlerFunc(utils.WrapHandlerFunc(o.handleGetPrice))
	sub.Path("/{token}").
		Methods(http.MethodPost).
		Name("POST /oracle/{token}").
		HandlerFunc(utils.WrapHandlerFunc(o.handleSetPrice))
}
