// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/thor"
)

// Uint256 is an unsigned big integer stored at a fixed position.
type Uint256 struct {
	v *Raw[*big.Int]
}

func NewUint256(context *Context, pos thor.Bytes32) *Uint256 {
	return &Uint256{v: NewRaw[*big.Int](context, pos)}
}

func (u *Uint256) Get() (*big.Int, error) {
	value, err := u.v.Get()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return new(big.Int), nil
	}
	return value, nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() == 0 {
		u.v.Clear()
		return nil
	}
	return u.v.Set(value)
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Add(storage, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if storage.Cmp(value) < 0 {
		return errors.New("uint256 underflow")
	}
	return u.Set(storage.Sub(storage, value))
}
