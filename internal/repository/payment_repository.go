package repository

import (
	"context"

	"github.com/segyhp/hotel-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByFolioID(ctx context.Context, folioID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, folio_id, amount, method, created_at
		FROM payments
		WHERE folio_id = $1
		ORDER BY created_at
	`

	var payments []*domain.Payment
	if err := r.db.SelectContext(ctx, &payments, query, folioID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetTotalPaid(ctx context.Context, folioID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE folio_id = $1`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, folioID); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
