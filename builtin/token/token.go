// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is a multi-token ledger with allowances. A token may charge a fee on transfer, which
// is burned from the transferred amount.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/thor"
)

// MaxFeeBps is the largest fee, the whole transfer.
const MaxFeeBps = 10000

var (
	slotBalances   = thor.BytesToBytes32([]byte("balances"))
	slotAllowances = thor.BytesToBytes32([]byte("allowances"))
	slotSupplies   = thor.BytesToBytes32([]byte("supplies"))
	slotFees       = thor.BytesToBytes32([]byte("fees"))

	bpsBase = big.NewInt(MaxFeeBps)
)

func balanceKey(token, holder thor.Address) thor.Bytes32 {
	return thor.Blake2b(token.Bytes(), holder.Bytes())
}

func allowanceKey(token, owner, spender thor.Address) thor.Bytes32 {
	return thor.Blake2b(token.Bytes(), owner.Bytes(), spender.Bytes())
}

// Token implements the token ledger.
type Token struct {
	balances   *solidity.Mapping[thor.Bytes32, *big.Int]
	allowances *solidity.Mapping[thor.Bytes32, *big.Int]
	supplies   *solidity.Mapping[thor.Address, *big.Int]
	fees       *solidity.Mapping[thor.Address, uint64]
}

// New creates the ledger over the contract storage of sctx.
func New(sctx *solidity.Context) *Token {
	return &Token{
		balances:   solidity.NewMapping[thor.Bytes32, *big.Int](sctx, slotBalances),
		allowances: solidity.NewMapping[thor.Bytes32, *big.Int](sctx, slotAllowances),
		supplies:   solidity.NewMapping[thor.Address, *big.Int](sctx, slotSupplies),
		fees:       solidity.NewMapping[thor.Address, uint64](sctx, slotFees),
	}
}

func setOrDelete[K solidity.Key](m *solidity.Mapping[K, *big.Int], key K, value *big.Int) error {
	if value.Sign() == 0 {
		m.Delete(key)
		return nil
	}
	return m.Set(key, value)
}

// BalanceOf returns the balance of holder in token.
func (t *Token) BalanceOf(token, holder thor.Address) (*big.Int, error) {
	bal, err := t.balances.Get(balanceKey(token, holder))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return bal, nil
}

func (t *Token) setBalance(token, holder thor.Address, bal *big.Int) error {
	if err := setOrDelete(t.balances, balanceKey(token, holder), bal); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	return nil
}

// TotalSupply returns the circulating amount of token.
func (t *Token) TotalSupply(token thor.Address) (*big.Int, error) {
	supply, err := t.supplies.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get supply")
	}
	return supply, nil
}

func (t *Token) addSupply(token thor.Address, delta *big.Int) error {
	supply, err := t.TotalSupply(token)
	if err != nil {
		return err
	}
	if err := setOrDelete(t.supplies, token, supply.Add(supply, delta)); err != nil {
		return errors.Wrap(err, "failed to set supply")
	}
	return nil
}

// FeeBps returns the transfer fee of token in basis points.
func (t *Token) FeeBps(token thor.Address) (uint64, error) {
	fee, err := t.fees.Get(token)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get fee")
	}
	return fee, nil
}

// SetFeeBps sets the transfer fee of token.
func (t *Token) SetFeeBps(token thor.Address, bps uint64) error {
	if bps > MaxFeeBps {
		return reverts.Newf(reverts.InvalidInput, "fee above %d bps", MaxFeeBps)
	}
	if bps == 0 {
		t.fees.Delete(token)
		return nil
	}
	return t.fees.Set(token, bps)
}

// Mint creates amount of token owned by to.
func (t *Token) Mint(token, to thor.Address, amount *big.Int) error {
	if token.IsZero() || to.IsZero() {
		return reverts.New(reverts.InvalidInput, "invalid token or recipient")
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "invalid amount")
	}
	bal, err := t.BalanceOf(token, to)
	if err != nil {
		return err
	}
	if err := t.setBalance(token, to, bal.Add(bal, amount)); err != nil {
		return err
	}
	return t.addSupply(token, amount)
}

// Burn destroys amount of token owned by from.
func (t *Token) Burn(token, from thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "invalid amount")
	}
	bal, err := t.BalanceOf(token, from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.New(reverts.StateConflict, "insufficient balance")
	}
	if err := t.setBalance(token, from, bal.Sub(bal, amount)); err != nil {
		return err
	}
	return t.addSupply(token, new(big.Int).Neg(amount))
}

// Transfer moves amount from 'from' to 'to'. The recipient gets amount less the token fee.
func (t *Token) Transfer(token, from, to thor.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.New(reverts.InvalidInput, "invalid recipient")
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "invalid amount")
	}
	bal, err := t.BalanceOf(token, from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.New(reverts.StateConflict, "insufficient balance")
	}

	fee, err := t.FeeBps(token)
	if err != nil {
		return err
	}
	burned := new(big.Int)
	if fee > 0 {
		burned.Mul(amount, new(big.Int).SetUint64(fee))
		burned.Div(burned, bpsBase)
	}

	if err := t.setBalance(token, from, bal.Sub(bal, amount)); err != nil {
		return err
	}
	toBal, err := t.BalanceOf(token, to)
	if err != nil {
		return err
	}
	toBal.Add(toBal, amount)
	if err := t.setBalance(token, to, toBal.Sub(toBal, burned)); err != nil {
		return err
	}
	if burned.Sign() > 0 {
		return t.addSupply(token, burned.Neg(burned))
	}
	return nil
}

// Allowance returns what spender may still move on behalf of owner.
func (t *Token) Allowance(token, owner, spender thor.Address) (*big.Int, error) {
	allowance, err := t.allowances.Get(allowanceKey(token, owner, spender))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}
	return allowance, nil
}

// Approve sets the allowance of spender over owner's token.
func (t *Token) Approve(token, owner, spender thor.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.New(reverts.InvalidInput, "invalid spender")
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "invalid amount")
	}
	if err := setOrDelete(t.allowances, allowanceKey(token, owner, spender), amount); err != nil {
		return errors.Wrap(err, "failed to set allowance")
	}
	return nil
}

// TransferFrom moves amount from 'from' to 'to', consuming the allowance granted to spender.
// Moving one's own funds needs no allowance.
func (t *Token) TransferFrom(token, spender, from, to thor.Address, amount *big.Int) error {
	if spender != from {
		allowance, err := t.Allowance(token, from, spender)
		if err != nil {
			return err
		}
		if allowance.Cmp(amount) < 0 {
			return reverts.New(reverts.Authorization, "insufficient allowance")
		}
		if err := t.Approve(token, from, spender, allowance.Sub(allowance, amount)); err != nil {
			return err
		}
	}
	return t.Transfer(token, from, to, amount)
}
