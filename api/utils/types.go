// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/thor"
)

// Result is the response of a committed operation.
type Result struct {
	*runtime.Receipt
	ID     *thor.Bytes32         `json:"id,omitempty"`
	Amount *math.HexOrDecimal256 `json:"amount,omitempty"`
}

// Amount is a single value response.
type Amount struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}
