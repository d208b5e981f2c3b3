package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different owner.
var ErrNotFound = errors.New("record not found")

// Store implements the billing store contracts on top of Postgres.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store { return &Store{db: db} }

const transactionColumns = `id, owner_id, client_id, reference_number, is_quotation, is_taxed, is_paid,
	tax_percentage, transit_charges, notes, date, subtotal, tax, grand_total, created_at, updated_at`

func scanTransaction(row pgx.Row) (billing.Transaction, error) {
	var t billing.Transaction
	err := row.Scan(&t.ID, &t.OwnerID, &t.ClientID, &t.ReferenceNumber, &t.IsQuotation, &t.IsTaxed,
		&t.IsPaid, &t.TaxPercentage, &t.TransitCharges, &t.Notes, &t.Date, &t.Subtotal, &t.Tax,
		&t.GrandTotal, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

// CreateTransaction inserts a header and assigns the next reference
// number of its kind. The sequence read and the insert share one
// database transaction so concurrent creates cannot collide.
func (s *Store) CreateTransaction(ctx context.Context, owner billing.Owner, t billing.Transaction) (int64, error) {
	dbtx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer dbtx.Rollback(ctx)

	ref, err := s.nextReference(ctx, dbtx, owner.ID, t.IsQuotation)
	if err != nil {
		return 0, err
	}

	var id int64
	err = dbtx.QueryRow(ctx, `
		INSERT INTO transactions (owner_id, client_id, reference_number, is_quotation, is_taxed, is_paid,
			tax_percentage, transit_charges, notes, date, subtotal, tax, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		owner.ID, t.ClientID, ref, t.IsQuotation, t.IsTaxed, t.IsPaid,
		t.TaxPercentage, t.TransitCharges, t.Notes, t.Date, t.Subtotal, t.Tax, t.GrandTotal).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, dbtx.Commit(ctx)
}

// UpdateTransaction rewrites a header. Flipping the quotation flag moves
// the record to the other sequence, so the reference regenerates.
func (s *Store) UpdateTransaction(ctx context.Context, owner billing.Owner, t billing.Transaction) error {
	dbtx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer dbtx.Rollback(ctx)

	var wasQuotation bool
	var ref string
	err = dbtx.QueryRow(ctx,
		`SELECT is_quotation, reference_number FROM transactions WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
		t.ID, owner.ID).Scan(&wasQuotation, &ref)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if wasQuotation != t.IsQuotation {
		if ref, err = s.nextReference(ctx, dbtx, owner.ID, t.IsQuotation); err != nil {
			return err
		}
	}

	_, err = dbtx.Exec(ctx, `
		UPDATE transactions SET client_id = $1, reference_number = $2, is_quotation = $3, is_taxed = $4,
			is_paid = $5, tax_percentage = $6, transit_charges = $7, notes = $8, date = $9,
			subtotal = $10, tax = $11, grand_total = $12, updated_at = now()
		WHERE id = $13 AND owner_id = $14`,
		t.ClientID, ref, t.IsQuotation, t.IsTaxed, t.IsPaid, t.TaxPercentage, t.TransitCharges,
		t.Notes, t.Date, t.Subtotal, t.Tax, t.GrandTotal, t.ID, owner.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return dbtx.Commit(ctx)
}

func (s *Store) nextReference(ctx context.Context, dbtx pgx.Tx, ownerID int64, isQuotation bool) (string, error) {
	var last string
	err := dbtx.QueryRow(ctx,
		`SELECT reference_number FROM transactions WHERE owner_id = $1 AND is_quotation = $2 ORDER BY id DESC LIMIT 1`,
		ownerID, isQuotation).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("last reference: %w", err)
	}
	return billing.NextReferenceNumber(last, isQuotation), nil
}

// DeleteTransaction removes the header; items cascade via the schema.
func (s *Store) DeleteTransaction(ctx context.Context, owner billing.Owner, id int64) error {
	tag, err := s.db.Pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND owner_id = $2`, id, owner.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, owner billing.Owner, id int64) (billing.Transaction, error) {
	row := s.db.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND owner_id = $2`, id, owner.ID)
	return scanTransaction(row)
}

func (s *Store) ListTransactions(ctx context.Context, owner billing.Owner) ([]billing.Transaction, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE owner_id = $1 ORDER BY updated_at DESC`, owner.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []billing.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CreateItem(ctx context.Context, transactionID int64, it billing.LineItem) (int64, error) {
	var id int64
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO line_items (transaction_id, name, unit, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		transactionID, it.Name, it.Unit, it.Description, it.Quantity, it.UnitPrice, it.LineTotal).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateItem(ctx context.Context, transactionID int64, it billing.LineItem) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE line_items SET name = $1, unit = $2, description = $3, quantity = $4, unit_price = $5, line_total = $6
		WHERE id = $7 AND transaction_id = $8`,
		it.Name, it.Unit, it.Description, it.Quantity, it.UnitPrice, it.LineTotal, it.ID, transactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, transactionID, itemID int64) error {
	tag, err := s.db.Pool.Exec(ctx,
		`DELETE FROM line_items WHERE id = $1 AND transaction_id = $2`, itemID, transactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, transactionID int64) ([]billing.LineItem, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, transaction_id, name, unit, description, quantity, unit_price, line_total
		FROM line_items WHERE transaction_id = $1 ORDER BY id`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []billing.LineItem
	for rows.Next() {
		var it billing.LineItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.Name, &it.Unit, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
