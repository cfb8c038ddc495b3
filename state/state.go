// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/slotauction/kv"
	"github.com/vechain/slotauction/stackedmap"
	"github.com/vechain/slotauction/thor"
)

const (
	storageBucket = kv.Bucket("s")
	balanceBucket = kv.Bucket("b")
)

type (
	storageKey struct {
		addr thor.Address
		key  thor.Bytes32
	}
	balanceKey thor.Address
)

func (k storageKey) bytes() []byte {
	return append(k.addr.Bytes(), k.key.Bytes()...)
}

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the storage of builtin contracts and native balances.
type State struct {
	store    kv.Store
	storage  kv.Getter
	balances kv.Getter
	sm       *stackedmap.StackedMap[any, any] // keeps revisions of state
}

// New create state object.
func New(store kv.Store) *State {
	s := &State{
		store:    store,
		storage:  storageBucket.NewGetter(store),
		balances: balanceBucket.NewGetter(store),
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		data, err := s.storage.Get(k.bytes())
		if err != nil {
			if s.storage.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, err
		}
		return rlp.RawValue(data), true, nil
	case balanceKey:
		data, err := s.balances.Get(k[:])
		if err != nil {
			if s.balances.IsNotFound(err) {
				return new(big.Int), true, nil
			}
			return nil, false, err
		}
		return new(big.Int).SetBytes(data), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// GetBalance returns native balance for the given address.
func (s *State) GetBalance(addr thor.Address) (*big.Int, error) {
	v, _, err := s.sm.Get(balanceKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return new(big.Int).Set(v.(*big.Int)), nil
}

// SetBalance set native balance for the given address.
func (s *State) SetBalance(addr thor.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return &Error{fmt.Errorf("negative balance for %v", addr)}
	}
	s.sm.Put(balanceKey(addr), new(big.Int).Set(balance))
	return nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw. Empty value deletes the slot.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object holding the latest value of every changed key.
func (s *State) Stage() *Stage {
	changes := make(map[any]any)
	var order []any
	s.sm.Journal(func(k, v any) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})
	return &Stage{state: s, order: order, changes: changes}
}

// Stage abstracts changes on the state.
type Stage struct {
	state   *State
	order   []any
	changes map[any]any
}

// Len returns the count of changed keys.
func (st *Stage) Len() int {
	return len(st.order)
}

// Commit writes changes into the kv store, and resets the state on top of it.
func (st *Stage) Commit() error {
	bulk := st.state.store.Bulk()
	storage := storageBucket.NewPutter(bulk)
	balances := balanceBucket.NewPutter(bulk)

	for _, k := range st.order {
		var err error
		switch key := k.(type) {
		case storageKey:
			if raw := st.changes[k].(rlp.RawValue); len(raw) == 0 {
				err = storage.Delete(key.bytes())
			} else {
				err = storage.Put(key.bytes(), raw)
			}
		case balanceKey:
			if bal := st.changes[k].(*big.Int); bal.Sign() == 0 {
				err = balances.Delete(key[:])
			} else {
				err = balances.Put(key[:], bal.Bytes())
			}
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	st.state.sm = stackedmap.New(st.state.cacheGetter)
	return nil
}
