// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package listregistry keeps named ordered lists. Elements are appended at the tail and
// removed by id in constant time; only the owner mutates.
package listregistry

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/thor"
)

var (
	logger = log.WithContext("pkg", "listregistry")

	slotOwner   = thor.BytesToBytes32([]byte("owner"))
	slotEntries = thor.BytesToBytes32([]byte("entries"))
	slotBounds  = thor.BytesToBytes32([]byte("bounds"))
	slotNonce   = thor.BytesToBytes32([]byte("nonce"))

	errNotFound = reverts.New(reverts.NotFound, "element not found")
)

// Registry implements the list registry.
type Registry struct {
	owner   *solidity.Address
	entries *solidity.Mapping[thor.Bytes32, *entry]
	bounds  *solidity.Mapping[thor.Bytes32, *bounds]
	nonce   *solidity.Raw[uint64]
}

// New creates the registry over the contract storage of sctx.
func New(sctx *solidity.Context) *Registry {
	return &Registry{
		owner:   solidity.NewAddress(sctx, slotOwner),
		entries: solidity.NewMapping[thor.Bytes32, *entry](sctx, slotEntries),
		bounds:  solidity.NewMapping[thor.Bytes32, *bounds](sctx, slotBounds),
		nonce:   solidity.NewRaw[uint64](sctx, slotNonce),
	}
}

// Owner returns the account allowed to mutate lists.
func (r *Registry) Owner() (thor.Address, error) {
	return r.owner.Get()
}

// SetOwner sets the account allowed to mutate lists.
func (r *Registry) SetOwner(owner thor.Address) error {
	if owner.IsZero() {
		return reverts.New(reverts.InvalidInput, "zero owner")
	}
	return r.owner.Set(&owner)
}

func (r *Registry) requireOwner(caller thor.Address) error {
	owner, err := r.Owner()
	if err != nil {
		return errors.Wrap(err, "failed to get owner")
	}
	if caller != owner {
		return reverts.New(reverts.Authorization, "caller is not the owner")
	}
	return nil
}

func (r *Registry) getEntry(id thor.Bytes32) (*entry, error) {
	e, err := r.entries.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get entry")
	}
	return e, nil
}

func (r *Registry) setEntry(id thor.Bytes32, e *entry) error {
	if err := r.entries.Set(id, e); err != nil {
		return errors.Wrap(err, "failed to set entry")
	}
	return nil
}

func (r *Registry) getBounds(list thor.Bytes32) (*bounds, error) {
	b, err := r.bounds.Get(list)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get list")
	}
	return b, nil
}

func (r *Registry) setBounds(list thor.Bytes32, b *bounds) error {
	if b.Size == 0 {
		r.bounds.Delete(list)
		return nil
	}
	if err := r.bounds.Set(list, b); err != nil {
		return errors.Wrap(err, "failed to set list")
	}
	return nil
}

func (r *Registry) newID(list thor.Bytes32) (thor.Bytes32, error) {
	nonce, err := r.nonce.Get()
	if err != nil {
		return thor.Bytes32{}, errors.Wrap(err, "failed to get nonce")
	}
	if err := r.nonce.Set(nonce + 1); err != nil {
		return thor.Bytes32{}, errors.Wrap(err, "failed to set nonce")
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], nonce)
	return thor.Blake2b(list.Bytes(), b[:]), nil
}

// Add appends value to list and returns the id of the new element.
func (r *Registry) Add(caller thor.Address, list, value thor.Bytes32) (thor.Bytes32, error) {
	if err := r.requireOwner(caller); err != nil {
		return thor.Bytes32{}, err
	}
	if list.IsZero() {
		return thor.Bytes32{}, reverts.New(reverts.InvalidInput, "invalid list")
	}

	id, err := r.newID(list)
	if err != nil {
		return thor.Bytes32{}, err
	}
	b, err := r.getBounds(list)
	if err != nil {
		return thor.Bytes32{}, err
	}

	e := &entry{List: list, Value: value, Prev: b.Tail}
	if b.Tail == nil {
		b.Head = &id
	} else {
		tail, err := r.getEntry(*b.Tail)
		if err != nil {
			return thor.Bytes32{}, err
		}
		tail.Next = &id
		if err := r.setEntry(*b.Tail, tail); err != nil {
			return thor.Bytes32{}, err
		}
	}
	b.Tail = &id
	b.Size++

	if err := r.setEntry(id, e); err != nil {
		return thor.Bytes32{}, err
	}
	if err := r.setBounds(list, b); err != nil {
		return thor.Bytes32{}, err
	}
	logger.Trace("element added", "list", list, "id", id)
	return id, nil
}

// Remove unlinks the element id from list.
func (r *Registry) Remove(caller thor.Address, list, id thor.Bytes32) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	e, err := r.getEntry(id)
	if err != nil {
		return err
	}
	if e.IsEmpty() || e.List != list {
		return errNotFound
	}
	b, err := r.getBounds(list)
	if err != nil {
		return err
	}

	if e.Prev == nil {
		b.Head = e.Next
	} else {
		prev, err := r.getEntry(*e.Prev)
		if err != nil {
			return err
		}
		prev.Next = e.Next
		if err := r.setEntry(*e.Prev, prev); err != nil {
			return err
		}
	}
	if e.Next == nil {
		b.Tail = e.Prev
	} else {
		next, err := r.getEntry(*e.Next)
		if err != nil {
			return err
		}
		next.Prev = e.Prev
		if err := r.setEntry(*e.Next, next); err != nil {
			return err
		}
	}
	b.Size--

	r.entries.Delete(id)
	if err := r.setBounds(list, b); err != nil {
		return err
	}
	logger.Trace("element removed", "list", list, "id", id)
	return nil
}

// Len returns the number of elements in list.
func (r *Registry) Len(list thor.Bytes32) (uint64, error) {
	b, err := r.getBounds(list)
	if err != nil {
		return 0, err
	}
	return b.Size, nil
}

// Entries returns the elements of list from head to tail.
func (r *Registry) Entries(list thor.Bytes32) ([]Element, error) {
	b, err := r.getBounds(list)
	if err != nil {
		return nil, err
	}
	elems := make([]Element, 0, b.Size)
	for ptr := b.Head; ptr != nil; {
		e, err := r.getEntry(*ptr)
		if err != nil {
			return nil, err
		}
		elems = append(elems, Element{ID: *ptr, Value: e.Value})
		ptr = e.Next
	}
	return elems, nil
}

// Values returns the values of list in insertion order.
func (r *Registry) Values(list thor.Bytes32) ([]thor.Bytes32, error) {
	elems, err := r.Entries(list)
	if err != nil {
		return nil, err
	}
	values := make([]thor.Bytes32, 0, len(elems))
	for _, e := range elems {
		values = append(values, e.Value)
	}
	return values, nil
}
