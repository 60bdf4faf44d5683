package store

// Schema is applied on every Open. Statements are idempotent so an
// existing database upgrades in place.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	asset TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	side TEXT NOT NULL,
	quantity REAL NOT NULL,
	price REAL NOT NULL,
	currency TEXT NOT NULL DEFAULT 'PLN'
);

CREATE INDEX IF NOT EXISTS idx_transactions_asset_date ON transactions(asset, date);

CREATE TABLE IF NOT EXISTS bonds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	series TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT 'fixed',
	purchase_date TEXT NOT NULL,
	maturity_date TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	unit_price REAL NOT NULL DEFAULT 100,
	face_value REAL NOT NULL DEFAULT 100,
	annual_rate REAL NOT NULL DEFAULT 0,
	margin REAL NOT NULL DEFAULT 0,
	index_rate REAL NOT NULL DEFAULT 0,
	capitalization INTEGER NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS dividends (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	asset TEXT NOT NULL,
	ex_date TEXT NOT NULL DEFAULT '',
	pay_date TEXT NOT NULL DEFAULT '',
	amount REAL NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT 'USD',
	shares REAL NOT NULL DEFAULT 0,
	gross REAL NOT NULL DEFAULT 0,
	net REAL NOT NULL DEFAULT 0,
	source TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'synced',
	notes TEXT NOT NULL DEFAULT '',
	UNIQUE(asset, ex_date, source)
);

CREATE TABLE IF NOT EXISTS cash_deposits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	amount REAL NOT NULL,
	delta REAL NOT NULL DEFAULT 0,
	note TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS symbol_mappings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	asset TEXT NOT NULL,
	provider TEXT NOT NULL,
	symbol TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 0,
	active INTEGER NOT NULL DEFAULT 1,
	UNIQUE(asset, provider, symbol)
);

CREATE TABLE IF NOT EXISTS api_cache (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
`
