// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores the history of engine signals in sqlite.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/slotauction/thor"
)

const insertStmt = `INSERT OR REPLACE INTO event(
	seq, eventIndex, tick, name, topic, sponsor, campaign, counterpart, token, account, amount, slot, approved, metadata
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectColumns = `SELECT seq, eventIndex, tick, name, sponsor, campaign, counterpart, token, account, amount, slot, approved, metadata FROM event`

// EventDB manages all events.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New opens an event db.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// a memory db lives as long as its only connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem creates a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert stores events in one transaction.
func (db *EventDB) Insert(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx,
			ev.Seq,
			ev.Index,
			ev.Tick,
			ev.Name,
			ev.Topic().Bytes(),
			bytes32Value(ev.Sponsor),
			bytes32Value(ev.Campaign),
			bytes32Value(ev.Counterpart),
			addressValue(ev.Token),
			addressValue(ev.Account),
			amountValue(ev.Amount),
			ev.Slot,
			ev.Approved,
			ev.Metadata,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter returns the events matching filter, all events for a nil filter.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, selectColumns+" ORDER BY seq, eventIndex")
	}
	var args []any
	stmt := selectColumns + " WHERE 1"

	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND tick >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND tick <= ?"
		}
	}
	if len(filter.Names) > 0 {
		stmt += " AND name IN (?" + strings.Repeat(", ?", len(filter.Names)-1) + ")"
		for _, name := range filter.Names {
			args = append(args, name)
		}
	}
	if filter.Sponsor != nil {
		// a swap concerns both sides
		stmt += " AND (sponsor = ? OR counterpart = ?)"
		args = append(args, filter.Sponsor.Bytes(), filter.Sponsor.Bytes())
	}
	if filter.Campaign != nil {
		stmt += " AND campaign = ?"
		args = append(args, filter.Campaign.Bytes())
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC, eventIndex DESC"
	} else {
		stmt += " ORDER BY seq ASC, eventIndex ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

// LastSeq returns the highest recorded operation sequence, zero when empty.
func (db *EventDB) LastSeq(ctx context.Context) (uint64, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, err
	}
	return uint64(seq.Int64), nil
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			ev                             Event
			sponsor, campaign, counterpart []byte
			token, account                 []byte
			amount, metadata               sql.NullString
		)
		if err := rows.Scan(
			&ev.Seq,
			&ev.Index,
			&ev.Tick,
			&ev.Name,
			&sponsor,
			&campaign,
			&counterpart,
			&token,
			&account,
			&amount,
			&ev.Slot,
			&ev.Approved,
			&metadata,
		); err != nil {
			return nil, err
		}
		ev.Sponsor = thor.BytesToBytes32(sponsor)
		ev.Campaign = thor.BytesToBytes32(campaign)
		ev.Counterpart = thor.BytesToBytes32(counterpart)
		ev.Token = thor.BytesToAddress(token)
		ev.Account = thor.BytesToAddress(account)
		ev.Metadata = metadata.String
		if amount.Valid {
			v, ok := new(big.Int).SetString(amount.String, 10)
			if !ok {
				return nil, errors.Errorf("invalid amount %q", amount.String)
			}
			ev.Amount = v
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path returns the db's path.
func (db *EventDB) Path() string {
	return db.path
}

// Close closes sqlite.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func bytes32Value(b thor.Bytes32) []byte {
	if b.IsZero() {
		return nil
	}
	return b.Bytes()
}

func addressValue(a thor.Address) []byte {
	if a.IsZero() {
		return nil
	}
	return a.Bytes()
}

func amountValue(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}
