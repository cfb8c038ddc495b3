// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package oracle keeps an owner-maintained table of token prices in the reference unit.
// A price is quoted for thor.PriceScale units of the token.
package oracle

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/cache"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/thor"
)

var (
	logger = log.WithContext("pkg", "oracle")

	slotOwner  = thor.BytesToBytes32([]byte("owner"))
	slotPrices = thor.BytesToBytes32([]byte("prices"))
)

// Cache holds prices read from storage. It must be purged when a state holding price changes is reverted.
type Cache = cache.LRU[thor.Address, *big.Int]

// NewCache creates a price cache for size tokens.
func NewCache(size int) (*Cache, error) {
	return cache.NewLRU[thor.Address, *big.Int](size)
}

// Oracle converts token amounts with the stored prices.
type Oracle struct {
	owner  *solidity.Address
	prices *solidity.Mapping[thor.Address, *big.Int]
	cache  *Cache
}

// New creates the oracle over the contract storage of sctx. c may be nil.
func New(sctx *solidity.Context, c *Cache) *Oracle {
	return &Oracle{
		owner:  solidity.NewAddress(sctx, slotOwner),
		prices: solidity.NewMapping[thor.Address, *big.Int](sctx, slotPrices),
		cache:  c,
	}
}

// Owner returns the account allowed to set prices.
func (o *Oracle) Owner() (thor.Address, error) {
	return o.owner.Get()
}

// SetOwner sets the account allowed to set prices.
func (o *Oracle) SetOwner(owner thor.Address) error {
	if owner.IsZero() {
		return reverts.New(reverts.InvalidInput, "zero owner")
	}
	return o.owner.Set(&owner)
}

func (o *Oracle) loadPrice(token thor.Address) (*big.Int, error) {
	p, err := o.prices.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get price")
	}
	return p, nil
}

// GetPrice returns the stored price of token, zero when none is set.
func (o *Oracle) GetPrice(token thor.Address) (*big.Int, error) {
	if o.cache == nil {
		return o.loadPrice(token)
	}
	p, err := o.cache.GetOrLoad(token, o.loadPrice)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(p), nil
}

// SetPrice stores the price of PriceScale units of token. Zero removes it.
func (o *Oracle) SetPrice(caller, token thor.Address, price *big.Int) error {
	owner, err := o.Owner()
	if err != nil {
		return errors.Wrap(err, "failed to get owner")
	}
	if caller != owner {
		return reverts.New(reverts.Authorization, "caller is not the owner")
	}
	if token.IsZero() {
		return reverts.New(reverts.InvalidInput, "invalid token")
	}
	if price == nil || price.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "invalid price")
	}

	if price.Sign() == 0 {
		o.prices.Delete(token)
	} else if err := o.prices.Set(token, price); err != nil {
		return errors.Wrap(err, "failed to set price")
	}
	if o.cache != nil {
		o.cache.Remove(token)
	}
	logger.Debug("price updated", "token", token, "price", price)
	return nil
}

// Price returns amount of token in the reference unit, zero for tokens without a price.
func (o *Oracle) Price(token thor.Address, amount *big.Int) (*big.Int, error) {
	p, err := o.GetPrice(token)
	if err != nil {
		return nil, err
	}
	if p.Sign() == 0 || amount.Sign() == 0 {
		return new(big.Int), nil
	}
	v := new(big.Int).Mul(amount, p)
	return v.Div(v, thor.PriceScale), nil
}
