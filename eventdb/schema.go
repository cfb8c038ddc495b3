// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	tick INTEGER NOT NULL,
	name TEXT NOT NULL,
	topic BLOB(32) NOT NULL,
	sponsor BLOB(32),
	campaign BLOB(32),
	counterpart BLOB(32),
	token BLOB(20),
	account BLOB(20),
	amount TEXT,
	slot INTEGER NOT NULL,
	approved INTEGER NOT NULL,
	metadata TEXT,
	PRIMARY KEY (seq, eventIndex)
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(tick);
CREATE INDEX IF NOT EXISTS event_i1 ON event(sponsor);
CREATE INDEX IF NOT EXISTS event_i2 ON event(campaign);
CREATE INDEX IF NOT EXISTS event_i3 ON event(name);`
