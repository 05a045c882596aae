package sqldb

const schemaVersion = 1

// Timestamps are stored as epoch milliseconds so "latest active" ordering is
// a plain integer comparison on both drivers.

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_items (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	price       TEXT NOT NULL,
	category    TEXT NOT NULL,
	imageUrl    TEXT
);

CREATE TABLE IF NOT EXISTS orders (
	orderId     INTEGER PRIMARY KEY AUTOINCREMENT,
	tableNumber INTEGER NOT NULL,
	timestamp   INTEGER NOT NULL,
	status      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	orderItemId     INTEGER PRIMARY KEY AUTOINCREMENT,
	orderIdFk       INTEGER NOT NULL REFERENCES orders(orderId) ON DELETE CASCADE,
	menuOriginalId  TEXT NOT NULL,
	itemName        TEXT NOT NULL,
	itemPrice       TEXT NOT NULL,
	quantity        INTEGER NOT NULL,
	specialRequests TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_orders_status_timestamp ON orders(status, timestamp);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(orderIdFk);
`

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS schema_meta (
		version INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id          VARCHAR(64) PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price       VARCHAR(32) NOT NULL,
		category    VARCHAR(64) NOT NULL,
		imageUrl    VARCHAR(512) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		orderId     INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		tableNumber INT NOT NULL,
		timestamp   BIGINT NOT NULL,
		status      VARCHAR(16) NOT NULL,
		INDEX idx_orders_status_timestamp (status, timestamp)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		orderItemId     INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderIdFk       INT UNSIGNED NOT NULL,
		menuOriginalId  VARCHAR(64) NOT NULL,
		itemName        VARCHAR(255) NOT NULL,
		itemPrice       VARCHAR(32) NOT NULL,
		quantity        INT NOT NULL,
		specialRequests TEXT NOT NULL,
		INDEX idx_order_items_order (orderIdFk),
		CONSTRAINT fk_order_items_order FOREIGN KEY (orderIdFk)
			REFERENCES orders(orderId) ON DELETE CASCADE
	)`,
}
