// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/slotauction/thor"
)

// DevAccount account for development.
type DevAccount struct {
	Address    thor.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{thor.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevToken is the token dev accounts are funded with.
var DevToken = thor.BytesToAddress([]byte("DevToken"))

// NewDevnet creates the genesis for solo mode. The first dev account is the owner.
func NewDevnet() *Genesis {
	launchTime := uint64(1526400000) // 'Wed May 16 2018 00:00:00 GMT+0800 (CST)'

	accs := DevAccounts()
	oneThousand := (*math.HexOrDecimal256)(math.MustParseBig256("1000000000000000000000"))

	gen := &CustomGenesis{
		LaunchTime:   launchTime,
		TickInterval: thor.TickInterval,
		Owner:        accs[0].Address,
		Campaigns: []Campaign{
			{ID: thor.BytesToBytes32([]byte("homepage")), Slots: 3},
			{ID: thor.BytesToBytes32([]byte("sidebar")), Slots: 1},
		},
		Tokens: []Token{
			{Address: DevToken, Price: math.NewHexOrDecimal256(1e18)},
			{Address: thor.NativeToken, Price: math.NewHexOrDecimal256(2e18)},
		},
	}
	for _, acc := range accs {
		gen.Tokens[0].Balances = append(gen.Tokens[0].Balances, Balance{acc.Address, oneThousand})
		gen.Accounts = append(gen.Accounts, Account{acc.Address, oneThousand})
	}

	g, err := NewCustomNet(gen)
	if err != nil {
		panic(err)
	}
	g.name = "devnet"
	return g
}
