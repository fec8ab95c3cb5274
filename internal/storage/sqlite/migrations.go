package sqlite

import (
	"database/sql"
	"fmt"
)

// schema sets up the database. It runs on startup so tables always exist.
// payments must be created before transactions due to the foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    membership_plan_id TEXT,
    membership_name TEXT,
    membership_modality TEXT,
    start_date TEXT,
    end_date TEXT,
    status TEXT NOT NULL DEFAULT 'inactive',
    group_id TEXT
);

CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    leader_id TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS membership_plans (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    modality TEXT NOT NULL DEFAULT '',
    duration_months INTEGER NOT NULL DEFAULT 0,
    monthly INTEGER
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    membership_plan_id TEXT NOT NULL,
    total_amount REAL NOT NULL,
    paid_amount REAL NOT NULL,
    membership_name TEXT NOT NULL,
    installment_count INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    notes TEXT,
    created_at INTEGER NOT NULL,
    CHECK (paid_amount >= 0 AND paid_amount <= total_amount + 0.000001)
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    payment_id TEXT NOT NULL,
    client_id TEXT NOT NULL,
    amount REAL NOT NULL,
    kind TEXT NOT NULL,
    installment_number INTEGER,
    payment_method TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    notes TEXT,
    FOREIGN KEY (payment_id) REFERENCES payments(id)
);

CREATE INDEX IF NOT EXISTS idx_clients_group_id ON clients(group_id);
CREATE INDEX IF NOT EXISTS idx_payments_client_id ON payments(client_id);
CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at);
CREATE INDEX IF NOT EXISTS idx_transactions_payment_id ON transactions(payment_id);
CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
