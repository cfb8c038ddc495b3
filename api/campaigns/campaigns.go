// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaigns

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

// Campaign is the capacity and occupancy of a campaign.
type Campaign struct {
	ID          thor.Bytes32 `json:"id"`
	Slots       uint32       `json:"slots"`
	ActiveSlots uint32       `json:"activeSlots"`
}

type SlotsRequest struct {
	Slots *uint32 `json:"slots"`
}

type Campaigns struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Campaigns {
	return &Campaigns{rt}
}

func (c *Campaigns) handleGetCampaign(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	campaign := &Campaign{ID: id}
	if err := c.rt.View(req.Context(), func(ctr *runtime.Contracts) error {
		cp, err := ctr.Sponsorship.GetCampaign(id)
		if err != nil {
			return err
		}
		campaign.Slots, campaign.ActiveSlots = cp.Slots, cp.ActiveSlots
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, campaign)
}

func (c *Campaigns) handleGetActive(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	active := []thor.Bytes32{}
	if err := c.rt.View(req.Context(), func(ctr *runtime.Contracts) error {
		ids, err := ctr.Sponsorship.ActiveSponsors(id)
		if err != nil {
			return err
		}
		active = append(active, ids...)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, active)
}

func (c *Campaigns) handleSetSlots(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	var body SlotsRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Slots == nil {
		return utils.BadRequest(errors.New("slots: required"))
	}
	receipt, err := c.rt.Execute(req.Context(), "set_num_slots", func(ctr *runtime.Contracts) error {
		return ctr.Sponsorship.SetNumSlots(caller, id, *body.Slots)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt})
}

func (c *Campaigns) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /campaigns/{id}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetCampaign))
	sub.Path("/{id}/active").
		Methods(http.MethodGet).
		Name("GET /campaigns/{id}/active").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetActive))
	sub.Path("/{id}/slots").
		Methods(http.MethodPost).
		Name("POST /campaigns/{id}/slots").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSetSlots))
}
