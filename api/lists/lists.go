// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lists

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/builtin/listregistry"
	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

type AddRequest struct {
	Value thor.Bytes32 `json:"value"`
}

type Lists struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Lists {
	return &Lists{rt}
}

func (l *Lists) handleGetList(w http.ResponseWriter, req *http.Request) error {
	list, err := utils.Bytes32Var(req, "list")
	if err != nil {
		return err
	}
	entries := []listregistry.Element{}
	if err := l.rt.View(req.Context(), func(c *runtime.Contracts) error {
		elems, err := c.ListRegistry.Entries(list)
		if err != nil {
			return err
		}
		entries = append(entries, elems...)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, entries)
}

func (l *Lists) handleAdd(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	list, err := utils.Bytes32Var(req, "list")
	if err != nil {
		return err
	}
	var body AddRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	var id thor.Bytes32
	receipt, err := l.rt.Execute(req.Context(), "list_add", func(c *runtime.Contracts) error {
		var err error
		id, err = c.ListRegistry.Add(caller, list, body.Value)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt, ID: &id})
}

func (l *Lists) handleRemove(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	list, err := utils.Bytes32Var(req, "list")
	if err != nil {
		return err
	}
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	receipt, err := l.rt.Execute(req.Context(), "list_remove", func(c *runtime.Contracts) error {
		return c.ListRegistry.Remove(caller, list, id)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &utils.Result{Receipt: receipt})
}

func (l *Lists) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{list}").
		Methods(http.MethodGet).
		Name("GET /lists/{list}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetList))
	sub.Path("/{list}").
		Methods(http.MethodPost).
		Name("POST /lists/{list}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleAdd))
	sub.Path("/{list}/{id}").
		Methods(http.MethodDelete).
		Name("DELETE /lists/{list}/{id}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleRemove))
}
