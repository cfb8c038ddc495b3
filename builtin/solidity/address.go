// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/slotauction/thor"
)

type Address struct {
	v *Raw[thor.Address]
}

func NewAddress(context *Context, pos thor.Bytes32) *Address {
	return &Address{v: NewRaw[thor.Address](context, pos)}
}

func (a *Address) Get() (thor.Address, error) {
	return a.v.Get()
}

func (a *Address) Set(addr *thor.Address) error {
	if addr == nil || addr.IsZero() {
		a.v.Clear()
		return nil
	}
	return a.v.Set(*addr)
}
