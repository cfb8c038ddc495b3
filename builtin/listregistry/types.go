// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package listregistry

import (
	"github.com/vechain/slotauction/thor"
)

// entry is a node of a doubly linked list.
type entry struct {
	List  thor.Bytes32
	Value thor.Bytes32
	Prev  *thor.Bytes32 `rlp:"nil"`
	Next  *thor.Bytes32 `rlp:"nil"`
}

// IsEmpty returns whether the entry was never written or was removed.
func (e *entry) IsEmpty() bool {
	return e.List.IsZero()
}

// bounds locates the ends of a list.
type bounds struct {
	Head *thor.Bytes32 `rlp:"nil"`
	Tail *thor.Bytes32 `rlp:"nil"`
	Size uint64
}

// Element is a value in a list with the id it was added under.
type Element struct {
	ID    thor.Bytes32 `json:"id"`
	Value thor.Bytes32 `json:"value"`
}
