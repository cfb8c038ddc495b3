// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the contract storage and native balances of the engine.
// It follows the flow as bellow:
//
//	           o
//	           |
//	  [ revertable state ]
//	           |
//	    [ stacked map ] -> [ journal ] -> [ stage ] -> [ kv bulk ]
//	           |
//	      [ kv store ]
//
// Every operation runs in a checkpoint, which is reverted as a whole on failure.
package state
