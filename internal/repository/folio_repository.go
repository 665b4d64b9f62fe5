package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/hotel-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
)

type folioRepository struct {
	db *sqlx.DB
}

func NewFolioRepository(db *sqlx.DB) FolioRepository {
	return &folioRepository{db: db}
}

func (r *folioRepository) GetByFolioID(ctx context.Context, folioID string) (*domain.Folio, error) {
	query := `
		SELECT id, folio_id, guest_name, room_number, room_rate, check_in, check_out, tax_amount, status, checked_out_at, created_at, updated_at
		FROM folios
		WHERE folio_id = $1
	`

	var folio domain.Folio
	err := r.db.GetContext(ctx, &folio, query, folioID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &folio, nil
}

func (r *folioRepository) GetCharges(ctx context.Context, folioID string) ([]domain.Charge, error) {
	query := `
		SELECT id, folio_id, description, amount, category, created_at
		FROM folio_charges
		WHERE folio_id = $1
		ORDER BY created_at, id
	`

	var charges []domain.Charge
	if err := r.db.SelectContext(ctx, &charges, query, folioID); err != nil {
		return nil, err
	}

	return charges, nil
}

func (r *folioRepository) GetDiscounts(ctx context.Context, folioID string) ([]domain.Discount, error) {
	query := `
		SELECT id, folio_id, description, amount, type, created_at
		FROM folio_discounts
		WHERE folio_id = $1
		ORDER BY created_at, id
	`

	var discounts []domain.Discount
	if err := r.db.SelectContext(ctx, &discounts, query, folioID); err != nil {
		return nil, err
	}

	return discounts, nil
}

func (r *folioRepository) SaveCheckout(ctx context.Context, checkout *Checkout) error {
	chargeQuery := `
		INSERT INTO folio_charges (id, folio_id, description, amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	discountQuery := `
		INSERT INTO folio_discounts (id, folio_id, description, amount, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	paymentQuery := `
		INSERT INTO payments (id, folio_id, amount, method, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	folioQuery := `
		UPDATE folios
		SET status = $2, checked_out_at = $3, updated_at = $4
		WHERE folio_id = $1 AND status = $5
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range checkout.Charges {
		if _, err = tx.ExecContext(ctx, chargeQuery, c.ID, checkout.FolioID, c.Description, c.Amount, c.Category, c.CreatedAt); err != nil {
			return err
		}
	}

	for _, d := range checkout.Discounts {
		if _, err = tx.ExecContext(ctx, discountQuery, d.ID, checkout.FolioID, d.Description, d.Amount, d.Type, d.CreatedAt); err != nil {
			return err
		}
	}

	if p := checkout.Payment; p != nil {
		if _, err = tx.ExecContext(ctx, paymentQuery, p.ID, checkout.FolioID, p.Amount, p.Method, p.CreatedAt); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, folioQuery,
		checkout.FolioID,
		domain.FolioStatusCheckedOut,
		checkout.CheckedOutAt,
		time.Now(),
		domain.FolioStatusOpen,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrFolioNotOpen
	}

	return tx.Commit()
}
