// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/slotauction/api/utils"
	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

// Info describes the deployment a node serves.
type Info struct {
	Network      string       `json:"network"`
	GenesisID    thor.Bytes32 `json:"genesisId"`
	LaunchTime   uint64       `json:"launchTime"`
	TickInterval uint64       `json:"tickInterval"`
}

// Tick is the current position of the node.
type Tick struct {
	Tick uint64 `json:"tick"`
	Seq  uint64 `json:"seq"`
}

type Node struct {
	rt   *runtime.Runtime
	info Info
}

func New(rt *runtime.Runtime, info Info) *Node {
	return &Node{
		rt,
		info,
	}
}

func (n *Node) handleTick(w http.ResponseWriter, _ *http.Request) error {
	tick, err := n.rt.Tick()
	if err != nil {
		return err
	}
	seq, err := n.rt.Seq()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Tick{Tick: tick, Seq: seq})
}

func (n *Node) handleNodeInfo(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, n.info)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/tick").
		Methods(http.MethodGet).
		Name("node_get_tick").
		HandlerFunc(utils.WrapHandlerFunc(n.handleTick))
	sub.Path("/info").
		Methods(http.MethodGet).
		Name("node_get_info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleNodeInfo))
}
