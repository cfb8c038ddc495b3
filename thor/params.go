// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/big"
)

// Constants of the sponsorship engine.
const (
	TickInterval uint64 = 10 // default wall-clock seconds per tick.

	// TicksPerYear is the accrual window used to bound payment rates:
	// rate * TicksPerYear must fit the 256-bit balance width.
	TicksPerYear uint64 = 365 * 24 * 3600

	MaxMetadataLength = 1024
)

// Reference units used by the oracle.
var (
	PriceScale = big.NewInt(1e18) // oracle prices are quoted per 1e18 token units.

	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// Addresses of builtin contracts.
var (
	SponsorshipAddress  = BytesToAddress([]byte("Sponsorship"))
	OracleAddress       = BytesToAddress([]byte("Oracle"))
	TokenAddress        = BytesToAddress([]byte("Token"))
	WrapperAddress      = BytesToAddress([]byte("Wrapper"))
	ListRegistryAddress = BytesToAddress([]byte("ListRegistry"))

	// NativeToken is the wrapped-native token the adapter mints.
	NativeToken = BytesToAddress([]byte("WrappedNative"))
)
