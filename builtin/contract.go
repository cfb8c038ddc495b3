// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/state"
	"github.com/vechain/slotauction/thor"
)

type contract struct {
	name    string
	Address thor.Address
}

func newContract(name string, addr thor.Address) *contract {
	return &contract{name, addr}
}

// Name returns the contract name.
func (c *contract) Name() string {
	return c.name
}

func (c *contract) context(state *state.State) *solidity.Context {
	return solidity.NewContext(c.Address, state)
}
