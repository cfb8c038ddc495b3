// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wrapper lets sponsors pay with the native currency. The value is wrapped 1:1 into
// thor.NativeToken for the caller, then the call is forwarded to the sponsorship engine.
package wrapper

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/sponsorship"
	"github.com/vechain/slotauction/builtin/token"
	"github.com/vechain/slotauction/state"
	"github.com/vechain/slotauction/thor"
)

// Wrapper holds the native reserve backing the wrapped token.
type Wrapper struct {
	addr   thor.Address
	state  *state.State
	tokens *token.Token
	engine *sponsorship.Sponsorship
}

// New creates the adapter. The native reserve is kept in the balance of addr.
func New(addr thor.Address, state *state.State, tokens *token.Token, engine *sponsorship.Sponsorship) *Wrapper {
	return &Wrapper{addr, state, tokens, engine}
}

func (w *Wrapper) moveNative(from, to thor.Address, amount *big.Int) error {
	fromBal, err := w.state.GetBalance(from)
	if err != nil {
		return errors.Wrap(err, "failed to get native balance")
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.New(reverts.StateConflict, "insufficient native balance")
	}
	toBal, err := w.state.GetBalance(to)
	if err != nil {
		return errors.Wrap(err, "failed to get native balance")
	}
	if err := w.state.SetBalance(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	return w.state.SetBalance(to, toBal.Add(toBal, amount))
}

// Wrap converts value of the caller's native balance into wrapped tokens.
func (w *Wrapper) Wrap(caller thor.Address, value *big.Int) error {
	if value == nil || value.Sign() <= 0 {
		return reverts.New(reverts.InvalidInput, "invalid value")
	}
	if err := w.moveNative(caller, w.addr, value); err != nil {
		return err
	}
	return w.tokens.Mint(thor.NativeToken, caller, value)
}

// Unwrap burns amount of the caller's wrapped tokens and returns the native value.
func (w *Wrapper) Unwrap(caller thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.New(reverts.InvalidInput, "invalid amount")
	}
	if err := w.tokens.Burn(thor.NativeToken, caller, amount); err != nil {
		return err
	}
	return w.moveNative(w.addr, caller, amount)
}

// wrapFor wraps value and lets the engine pull it.
func (w *Wrapper) wrapFor(caller thor.Address, value *big.Int) error {
	if err := w.Wrap(caller, value); err != nil {
		return err
	}
	spender := w.engine.Address()
	allowance, err := w.tokens.Allowance(thor.NativeToken, caller, spender)
	if err != nil {
		return err
	}
	return w.tokens.Approve(thor.NativeToken, caller, spender, allowance.Add(allowance, value))
}

// CreateSponsor creates a sponsor paying in the wrapped native token, funded with value.
func (w *Wrapper) CreateSponsor(
	caller thor.Address,
	value *big.Int,
	campaign thor.Bytes32,
	rate *big.Int,
	metadata string,
) (thor.Bytes32, error) {
	if err := w.wrapFor(caller, value); err != nil {
		return thor.Bytes32{}, err
	}
	return w.engine.CreateSponsor(caller, thor.NativeToken, campaign, value, rate, metadata)
}

// Deposit funds a sponsor paying in the wrapped native token.
func (w *Wrapper) Deposit(caller thor.Address, id thor.Bytes32, value *big.Int) (*big.Int, error) {
	sp, err := w.engine.GetSponsor(id)
	if err != nil {
		return nil, err
	}
	if sp.Token != thor.NativeToken {
		return nil, reverts.New(reverts.StateConflict, "sponsor does not pay in the native token")
	}
	if err := w.wrapFor(caller, value); err != nil {
		return nil, err
	}
	return w.engine.Deposit(caller, id, value)
}
