// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial state of a deployment: the privileged owner, the campaigns,
// the tokens with their prices and fees, and the initial balances.
package genesis

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

// Genesis is a validated deployment description.
type Genesis struct {
	name string
	id   thor.Bytes32
	gen  *CustomGenesis
}

// Name returns the network name.
func (g *Genesis) Name() string { return g.name }

// ID identifies the genesis content. A data dir is bound to the genesis it was created with.
func (g *Genesis) ID() thor.Bytes32 { return g.id }

// LaunchTime returns the unix time of tick zero.
func (g *Genesis) LaunchTime() uint64 { return g.gen.LaunchTime }

// TickInterval returns the seconds per tick.
func (g *Genesis) TickInterval() uint64 { return g.gen.TickInterval }

// Owner returns the privileged owner.
func (g *Genesis) Owner() thor.Address { return g.gen.Owner }

func bigOf(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return (*big.Int)(v)
}

func computeID(gen *CustomGenesis) (thor.Bytes32, error) {
	data, err := json.Marshal(gen)
	if err != nil {
		return thor.Bytes32{}, err
	}
	return thor.Blake2b(data), nil
}

// Apply writes the initial state through the builtins.
func (g *Genesis) Apply(c *runtime.Contracts) error {
	gen := g.gen
	owner := gen.Owner

	if err := c.Sponsorship.SetOwner(owner); err != nil {
		return errors.WithMessage(err, "sponsorship owner")
	}
	if err := c.Oracle.SetOwner(owner); err != nil {
		return errors.WithMessage(err, "oracle owner")
	}
	if err := c.ListRegistry.SetOwner(owner); err != nil {
		return errors.WithMessage(err, "list registry owner")
	}

	for _, cp := range gen.Campaigns {
		if err := c.Sponsorship.SetNumSlots(owner, cp.ID, cp.Slots); err != nil {
			return errors.WithMessagef(err, "campaign %v", cp.ID)
		}
	}

	for _, tk := range gen.Tokens {
		if err := c.Token.SetFeeBps(tk.Address, tk.FeeBps); err != nil {
			return errors.WithMessagef(err, "token %v", tk.Address)
		}
		if tk.Price != nil {
			if err := c.Oracle.SetPrice(owner, tk.Address, bigOf(tk.Price)); err != nil {
				return errors.WithMessagef(err, "token %v price", tk.Address)
			}
		}
		for _, b := range tk.Balances {
			if err := c.Token.Mint(tk.Address, b.Address, bigOf(b.Amount)); err != nil {
				return errors.WithMessagef(err, "token %v balance of %v", tk.Address, b.Address)
			}
		}
	}

	for _, acc := range gen.Accounts {
		if err := c.State.SetBalance(acc.Address, bigOf(acc.Balance)); err != nil {
			return errors.WithMessagef(err, "account %v", acc.Address)
		}
	}
	return nil
}
