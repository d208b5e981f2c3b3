package postgres

import "context"

// schema is idempotent: every statement tolerates re-running on an
// already migrated database.
const schema = `
CREATE TABLE IF NOT EXISTS invoice_owners (
    id              BIGSERIAL PRIMARY KEY,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL UNIQUE,
    address         TEXT NOT NULL DEFAULT '',
    phone           TEXT NOT NULL DEFAULT '',
    phone_2         TEXT NOT NULL DEFAULT '',
    ntn_number      TEXT NOT NULL DEFAULT '',
    bank            TEXT NOT NULL DEFAULT '',
    account_title   TEXT NOT NULL DEFAULT '',
    iban            TEXT NOT NULL DEFAULT '',
    logo            BYTEA,
    signature       BYTEA,
    is_onboarded    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clients (
    id              BIGSERIAL PRIMARY KEY,
    owner_id        BIGINT NOT NULL REFERENCES invoice_owners(id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    address         TEXT NOT NULL DEFAULT '',
    ntn_number      TEXT NOT NULL DEFAULT '',
    phone           TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transactions (
    id               BIGSERIAL PRIMARY KEY,
    owner_id         BIGINT NOT NULL REFERENCES invoice_owners(id) ON DELETE CASCADE,
    client_id        BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
    reference_number TEXT NOT NULL,
    is_quotation     BOOLEAN NOT NULL DEFAULT FALSE,
    is_taxed         BOOLEAN NOT NULL DEFAULT FALSE,
    is_paid          BOOLEAN NOT NULL DEFAULT FALSE,
    tax_percentage   NUMERIC(5,3) NOT NULL DEFAULT 0,
    transit_charges  NUMERIC(16,3) NOT NULL DEFAULT 0,
    notes            TEXT NOT NULL DEFAULT '',
    date             DATE NOT NULL DEFAULT CURRENT_DATE,
    subtotal         NUMERIC(16,3) NOT NULL DEFAULT 0,
    tax              NUMERIC(16,3) NOT NULL DEFAULT 0,
    grand_total      NUMERIC(16,3) NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (owner_id, reference_number)
);

CREATE TABLE IF NOT EXISTS line_items (
    id              BIGSERIAL PRIMARY KEY,
    transaction_id  BIGINT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    unit            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    quantity        NUMERIC(16,3) NOT NULL,
    unit_price      NUMERIC(16,3) NOT NULL,
    line_total      NUMERIC(16,3) NOT NULL,
    UNIQUE (transaction_id, id)
);

CREATE INDEX IF NOT EXISTS idx_transactions_owner ON transactions(owner_id);
CREATE INDEX IF NOT EXISTS idx_line_items_transaction ON line_items(transaction_id);
`

// Migrate applies the schema.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, schema)
	return err
}
