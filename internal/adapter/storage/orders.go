package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

func (r OrdersRepository) StoreOrder(
	ctx context.Context, v domain.PlacedOrder,
) (storeErr error) {
	const op = "OrdersRepository.StoreOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit %w", op, err)
			}
			return
		}

		err := tx.Rollback()
		if err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO orders (
			payment_reference, product_id, product_name,
			unit_price, options, shipping_service,
			shipping_price, total, placed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (payment_reference) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			product_name = EXCLUDED.product_name,
			unit_price = EXCLUDED.unit_price,
			options = EXCLUDED.options,
			shipping_service = EXCLUDED.shipping_service,
			shipping_price = EXCLUDED.shipping_price,
			total = EXCLUDED.total,
			placed_at = EXCLUDED.placed_at;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	optB, _ := json.Marshal(v.Summary.Options)
	_, err = stmt.ExecContext(ctx,
		v.PaymentReference, v.Summary.ProductID, v.Summary.ProductName,
		v.Summary.UnitPrice, string(optB), v.Summary.ShippingService,
		v.Summary.ShippingPrice, v.Summary.Total, v.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}

	return nil
}

func (r OrdersRepository) ReadOrder(
	ctx context.Context, paymentReference string,
) (domain.PlacedOrder, error) {
	const op = "OrdersRepository.ReadOrder"

	if err := ctx.Err(); err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			payment_reference, product_id, product_name,
			unit_price, options, shipping_service,
			shipping_price, total, placed_at
		FROM orders
		WHERE payment_reference = $1;`

	var v domain.PlacedOrder
	var optS string
	err := r.sqldb.QueryRowContext(ctx, query, paymentReference).Scan(
		&v.PaymentReference, &v.Summary.ProductID, &v.Summary.ProductName,
		&v.Summary.UnitPrice, &optS, &v.Summary.ShippingService,
		&v.Summary.ShippingPrice, &v.Summary.Total, &v.PlacedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PlacedOrder{}, fmt.Errorf(
				"%s: %w", op, domain.ErrOrderNotFound,
			)
		}
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}

	err = json.Unmarshal([]byte(optS), &v.Summary.Options)
	if err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}
