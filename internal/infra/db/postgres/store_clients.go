package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

func (s *Store) CreateClient(ctx context.Context, owner billing.Owner, c billing.Client) (int64, error) {
	var id int64
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO clients (owner_id, name, address, ntn_number, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		owner.ID, c.Name, c.Address, c.NTNNumber, c.Phone).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateClient(ctx context.Context, owner billing.Owner, c billing.Client) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE clients SET name = $1, address = $2, ntn_number = $3, phone = $4, updated_at = now()
		WHERE id = $5 AND owner_id = $6`,
		c.Name, c.Address, c.NTNNumber, c.Phone, c.ID, owner.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteClient(ctx context.Context, owner billing.Owner, id int64) error {
	tag, err := s.db.Pool.Exec(ctx,
		`DELETE FROM clients WHERE id = $1 AND owner_id = $2`, id, owner.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetClient(ctx context.Context, owner billing.Owner, id int64) (billing.Client, error) {
	var c billing.Client
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, owner_id, name, address, ntn_number, phone, created_at, updated_at
		FROM clients WHERE id = $1 AND owner_id = $2`, id, owner.ID).
		Scan(&c.ID, &c.OwnerID, &c.Name, &c.Address, &c.NTNNumber, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (s *Store) ListClients(ctx context.Context, owner billing.Owner) ([]billing.Client, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, owner_id, name, address, ntn_number, phone, created_at, updated_at
		FROM clients WHERE owner_id = $1 ORDER BY updated_at DESC`, owner.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []billing.Client
	for rows.Next() {
		var c billing.Client
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Address, &c.NTNNumber, &c.Phone,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetOwner(ctx context.Context, id int64) (billing.Owner, error) {
	var o billing.Owner
	var logo, signature []byte
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, email, address, phone, phone_2, ntn_number, bank, account_title, iban,
			logo, signature, is_onboarded, created_at, updated_at
		FROM invoice_owners WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.Email, &o.Address, &o.Phone, &o.Phone2, &o.NTNNumber, &o.Bank,
			&o.AccountTitle, &o.IBAN, &logo, &signature, &o.IsOnboarded, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return o, ErrNotFound
	}
	if err != nil {
		return o, err
	}
	o.Logo = billing.Asset{Name: "logo", Data: logo}
	o.Signature = billing.Asset{Name: "signature", Data: signature}
	return o, nil
}

func (s *Store) UpdateOwner(ctx context.Context, o billing.Owner) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE invoice_owners SET name = $1, address = $2, phone = $3, phone_2 = $4, ntn_number = $5,
			bank = $6, account_title = $7, iban = $8, is_onboarded = TRUE, updated_at = now()
		WHERE id = $9`,
		o.Name, o.Address, o.Phone, o.Phone2, o.NTNNumber, o.Bank, o.AccountTitle, o.IBAN, o.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateOwnerAssets(ctx context.Context, id int64, logo, signature billing.Asset) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE invoice_owners SET logo = $1, signature = $2, updated_at = now() WHERE id = $3`,
		logo.Data, signature.Data, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
