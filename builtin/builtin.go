// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/slotauction/builtin/listregistry"
	"github.com/vechain/slotauction/builtin/oracle"
	"github.com/vechain/slotauction/builtin/sponsorship"
	"github.com/vechain/slotauction/builtin/token"
	"github.com/vechain/slotauction/builtin/wrapper"
	"github.com/vechain/slotauction/state"
	"github.com/vechain/slotauction/thor"
)

// Builtin contracts binding.
var (
	Sponsorship  = &sponsorshipContract{newContract("Sponsorship", thor.SponsorshipAddress)}
	Token        = &tokenContract{newContract("Token", thor.TokenAddress)}
	Oracle       = &oracleContract{newContract("Oracle", thor.OracleAddress)}
	Wrapper      = &wrapperContract{newContract("Wrapper", thor.WrapperAddress)}
	ListRegistry = &listRegistryContract{newContract("ListRegistry", thor.ListRegistryAddress)}
)

type (
	sponsorshipContract  struct{ *contract }
	tokenContract        struct{ *contract }
	oracleContract       struct{ *contract }
	wrapperContract      struct{ *contract }
	listRegistryContract struct{ *contract }
)

func (s *sponsorshipContract) Native(state *state.State, env *sponsorship.Env) *sponsorship.Sponsorship {
	return sponsorship.New(s.context(state), env)
}

func (t *tokenContract) Native(state *state.State) *token.Token {
	return token.New(t.context(state))
}

// Native binds the oracle. c may be nil to read prices uncached.
func (o *oracleContract) Native(state *state.State, c *oracle.Cache) *oracle.Oracle {
	return oracle.New(o.context(state), c)
}

func (w *wrapperContract) Native(state *state.State, tokens *token.Token, engine *sponsorship.Sponsorship) *wrapper.Wrapper {
	return wrapper.New(w.Address, state, tokens, engine)
}

func (l *listRegistryContract) Native(state *state.State) *listregistry.Registry {
	return listregistry.New(l.context(state))
}
