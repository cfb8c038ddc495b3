// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/thor"
)

var slotTreasury = thor.BytesToBytes32([]byte("treasury"))

// treasury is the per token running total of settled payments.
type treasury struct {
	totals *solidity.Mapping[thor.Address, *big.Int]
}

func newTreasury(sctx *solidity.Context) *treasury {
	return &treasury{
		totals: solidity.NewMapping[thor.Address, *big.Int](sctx, slotTreasury),
	}
}

func (t *treasury) get(token thor.Address) (*big.Int, error) {
	total, err := t.totals.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get treasury")
	}
	return total, nil
}

func (t *treasury) credit(token thor.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	total, err := t.get(token)
	if err != nil {
		return err
	}
	if err := t.totals.Set(token, total.Add(total, amount)); err != nil {
		return errors.Wrap(err, "failed to credit treasury")
	}
	return nil
}

// take zeroes the total of token and returns what it was.
func (t *treasury) take(token thor.Address) (*big.Int, error) {
	total, err := t.get(token)
	if err != nil {
		return nil, err
	}
	t.totals.Delete(token)
	return total, nil
}
