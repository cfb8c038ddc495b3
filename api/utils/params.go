// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/thor"
)

// CallerHeader carries the identity an operation runs as. Authenticating it is left to the host.
const CallerHeader = "x-caller"

// Caller returns the identity of the request.
func Caller(req *http.Request) (thor.Address, error) {
	v := req.Header.Get(CallerHeader)
	if v == "" {
		return thor.Address{}, HTTPError(errors.New("caller: missing "+CallerHeader+" header"), http.StatusUnauthorized)
	}
	addr, err := thor.ParseAddress(v)
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, "caller"))
	}
	return addr, nil
}

// Bytes32Var parses a path variable into a Bytes32. Short names are accepted the way genesis files accept them.
func Bytes32Var(req *http.Request, name string) (thor.Bytes32, error) {
	var b thor.Bytes32
	if err := b.UnmarshalText([]byte(mux.Vars(req)[name])); err != nil {
		return thor.Bytes32{}, BadRequest(errors.WithMessage(err, name))
	}
	return b, nil
}

// AddressVar parses a path variable into an Address.
func AddressVar(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// ParseAmount returns a required non-negative amount field.
func ParseAmount(v *math.HexOrDecimal256, name string) (*big.Int, error) {
	if v == nil {
		return nil, BadRequest(errors.New(name + ": required"))
	}
	if (*big.Int)(v).Sign() < 0 {
		return nil, BadRequest(errors.New(name + ": must not be negative"))
	}
	return new(big.Int).Set((*big.Int)(v)), nil
}

// Hex converts a value for output.
func Hex(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}
