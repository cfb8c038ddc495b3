// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sponsorship

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/thor"
)

var (
	slotSponsors  = thor.BytesToBytes32([]byte("sponsors"))
	slotCampaigns = thor.BytesToBytes32([]byte("campaigns"))
	slotNonce     = thor.BytesToBytes32([]byte("sponsor-nonce"))
)

var errSponsorNotFound = reverts.New(reverts.NotFound, "sponsor not found")

// registry stores sponsor and campaign records.
type registry struct {
	sponsors  *solidity.Mapping[thor.Bytes32, *Sponsor]
	campaigns *solidity.Mapping[thor.Bytes32, *Campaign]
	nonce     *solidity.Raw[uint64]
}

func newRegistry(sctx *solidity.Context) *registry {
	return &registry{
		sponsors:  solidity.NewMapping[thor.Bytes32, *Sponsor](sctx, slotSponsors),
		campaigns: solidity.NewMapping[thor.Bytes32, *Campaign](sctx, slotCampaigns),
		nonce:     solidity.NewRaw[uint64](sctx, slotNonce),
	}
}

func (r *registry) getSponsor(id thor.Bytes32) (*Sponsor, error) {
	sp, err := r.sponsors.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sponsor")
	}
	if sp.IsEmpty() {
		return nil, errSponsorNotFound
	}
	return sp.normalize(), nil
}

func (r *registry) setSponsor(id thor.Bytes32, sp *Sponsor) error {
	if err := r.sponsors.Set(id, sp); err != nil {
		return errors.Wrap(err, "failed to set sponsor")
	}
	return nil
}

// getCampaign returns the campaign record. Campaigns never configured read as zero capacity.
func (r *registry) getCampaign(id thor.Bytes32) (*Campaign, error) {
	c, err := r.campaigns.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	return c, nil
}

func (r *registry) setCampaign(id thor.Bytes32, c *Campaign) error {
	if err := r.campaigns.Set(id, c); err != nil {
		return errors.Wrap(err, "failed to set campaign")
	}
	return nil
}

// newSponsorID derives a fresh id. The stored nonce alone makes ids unique; the other inputs only spread them.
func (r *registry) newSponsorID(caller thor.Address, metadata string, tick uint64) (thor.Bytes32, error) {
	nonce, err := r.nonce.Get()
	if err != nil {
		return thor.Bytes32{}, errors.Wrap(err, "failed to get nonce")
	}
	for {
		var b [16]byte
		binary.BigEndian.PutUint64(b[:8], tick)
		binary.BigEndian.PutUint64(b[8:], nonce)
		nonce++

		id := thor.Blake2b(caller.Bytes(), []byte(metadata), b[:])
		exists, err := r.sponsors.Exists(id)
		if err != nil {
			return thor.Bytes32{}, errors.Wrap(err, "failed to check sponsor")
		}
		if !exists {
			if err := r.nonce.Set(nonce); err != nil {
				return thor.Bytes32{}, errors.Wrap(err, "failed to set nonce")
			}
			return id, nil
		}
	}
}
