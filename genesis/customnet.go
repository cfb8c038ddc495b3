// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/slotauction/builtin/token"
	"github.com/vechain/slotauction/thor"
)

// CustomGenesis is user customized genesis. JSON files are read as YAML.
type CustomGenesis struct {
	LaunchTime   uint64       `yaml:"launchTime" json:"launchTime"`
	TickInterval uint64       `yaml:"tickInterval" json:"tickInterval"`
	Owner        thor.Address `yaml:"owner" json:"owner"`
	Campaigns    []Campaign   `yaml:"campaigns" json:"campaigns"`
	Tokens       []Token      `yaml:"tokens" json:"tokens"`
	Accounts     []Account    `yaml:"accounts" json:"accounts"`
}

// Campaign is a campaign with its slot count.
type Campaign struct {
	ID    thor.Bytes32 `yaml:"id" json:"id"`
	Slots uint32       `yaml:"slots" json:"slots"`
}

// Token configures a token: its transfer fee, its oracle price for thor.PriceScale units and the initial holders.
type Token struct {
	Address  thor.Address          `yaml:"address" json:"address"`
	FeeBps   uint64                `yaml:"feeBps" json:"feeBps"`
	Price    *math.HexOrDecimal256 `yaml:"price" json:"price,omitempty"`
	Balances []Balance             `yaml:"balances" json:"balances"`
}

// Balance is an initial token balance.
type Balance struct {
	Address thor.Address          `yaml:"address" json:"address"`
	Amount  *math.HexOrDecimal256 `yaml:"amount" json:"amount"`
}

// Account is an initial native balance.
type Account struct {
	Address thor.Address          `yaml:"address" json:"address"`
	Balance *math.HexOrDecimal256 `yaml:"balance" json:"balance"`
}

// LoadCustomNet reads and validates a genesis file.
func LoadCustomNet(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return NewCustomNet(&gen)
}

// NewCustomNet validates gen.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Owner.IsZero() {
		return nil, errors.New("owner must be set")
	}
	if gen.TickInterval == 0 {
		gen.TickInterval = thor.TickInterval
	}

	campaigns := make(map[thor.Bytes32]bool)
	for _, c := range gen.Campaigns {
		if c.ID.IsZero() {
			return nil, errors.New("campaign id must be set")
		}
		if campaigns[c.ID] {
			return nil, fmt.Errorf("%v: duplicated campaign", c.ID)
		}
		campaigns[c.ID] = true
	}

	tokens := make(map[thor.Address]bool)
	for _, t := range gen.Tokens {
		if t.Address.IsZero() {
			return nil, errors.New("token address must be set")
		}
		if tokens[t.Address] {
			return nil, fmt.Errorf("%v: duplicated token", t.Address)
		}
		tokens[t.Address] = true
		if t.FeeBps > token.MaxFeeBps {
			return nil, fmt.Errorf("%v: fee must not exceed %d bps", t.Address, token.MaxFeeBps)
		}
		if t.Price != nil && bigOf(t.Price).Sign() < 0 {
			return nil, fmt.Errorf("%v: price must be non-negative", t.Address)
		}
		for _, b := range t.Balances {
			if b.Address.IsZero() {
				return nil, fmt.Errorf("%v: balance holder must be set", t.Address)
			}
			if bigOf(b.Amount).Sign() < 1 {
				return nil, fmt.Errorf("%v: balance of %v must be a non-zero integer", t.Address, b.Address)
			}
		}
	}

	for _, a := range gen.Accounts {
		if a.Balance == nil {
			return nil, fmt.Errorf("%s: balance must be set", a.Address)
		}
		if bigOf(a.Balance).Sign() < 1 {
			return nil, fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
		}
	}

	id, err := computeID(gen)
	if err != nil {
		return nil, err
	}
	return &Genesis{name: "customnet", id: id, gen: gen}, nil
}
