package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"orderflow/internal/entities"
	"orderflow/internal/repository"
	"orderflow/internal/service/ordering"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = `id, status, customer_ref, restaurant_ref, delivery_partner_id, items,
		subtotal, delivery_fee, tax, total,
		payment_method, payment_status, payment_transaction_id, paid_at,
		created_at, actual_delivery_time, cancelled_at, cancellation_reason`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderEntity *entities.Order) (*entities.Order, error) {
	items, err := itemsFromDomain(orderEntity.Items)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO orders (id, status, customer_ref, restaurant_ref, items,
			subtotal, delivery_fee, tax, total,
			payment_method, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + orderColumns

	row := r.querier.QueryRow(
		ctx,
		query,
		orderEntity.ID,
		orderEntity.Status.String(),
		orderEntity.CustomerRef,
		orderEntity.RestaurantRef,
		items,
		orderEntity.Pricing.Subtotal,
		orderEntity.Pricing.DeliveryFee,
		orderEntity.Pricing.Tax,
		orderEntity.Pricing.Total,
		orderEntity.Payment.Method,
		orderEntity.Payment.Status.String(),
		orderEntity.CreatedAt,
	)

	created, err := scanOrder(row)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("unexpected order repository create error: order id exists: %w", err)
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	orderDomain, err := scanOrder(r.querier.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ordering.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}
	return orderDomain, nil
}

func (r *Repository) Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	builder := qb.Update("orders")

	if orderModify.Status != nil {
		builder = builder.Set("status", orderModify.Status.String())
	}
	if orderModify.DeliveryPartnerRef != nil {
		builder = builder.Set("delivery_partner_id", orderModify.DeliveryPartnerRef)
	}
	if orderModify.PaymentStatus != nil {
		builder = builder.Set("payment_status", orderModify.PaymentStatus.String())
	}
	if orderModify.PaymentTransaction != nil {
		builder = builder.Set("payment_transaction_id", orderModify.PaymentTransaction)
	}
	if orderModify.PaidAt != nil {
		builder = builder.Set("paid_at", orderModify.PaidAt)
	}
	if orderModify.ActualDeliveryTime != nil {
		builder = builder.Set("actual_delivery_time", orderModify.ActualDeliveryTime)
	}
	if orderModify.CancelledAt != nil {
		builder = builder.Set("cancelled_at", orderModify.CancelledAt)
	}
	if orderModify.CancellationReason != nil {
		builder = builder.Set("cancellation_reason", orderModify.CancellationReason)
	}

	builder = builder.
		Where(sq.Eq{"id": orderModify.ID}).
		Suffix("RETURNING " + orderColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	orderDomain, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ordering.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}
	return orderDomain, nil
}

// ClaimReady is the compare-and-swap of the claim path. The WHERE clause is
// the condition; the write lands for at most one concurrent caller, everyone
// else sees zero rows and no state change.
func (r *Repository) ClaimReady(ctx context.Context, orderID, partnerID string) (*entities.Order, bool, error) {
	query := `
		UPDATE orders
		SET status = $3,
			delivery_partner_id = $2
		WHERE id = $1
		  AND status = $4
		  AND delivery_partner_id IS NULL
		RETURNING ` + orderColumns

	orderDomain, err := scanOrder(r.querier.QueryRow(
		ctx,
		query,
		orderID,
		partnerID,
		entities.OrderPickedUp.String(),
		entities.OrderReady.String(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("unexpected order repository claim error: %w", err)
	}
	return orderDomain, true, nil
}

func (r *Repository) CountActiveByPartner(ctx context.Context, partnerID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE delivery_partner_id = $1
		  AND status = $2`

	var count int64
	err := r.querier.QueryRow(ctx, query, partnerID, entities.OrderPickedUp.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository count active error: %w", err)
	}
	return count, nil
}

func (r *Repository) GetReadyUnassigned(ctx context.Context) ([]entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1
		  AND delivery_partner_id IS NULL
		ORDER BY created_at ASC`

	rows, err := r.querier.Query(ctx, query, entities.OrderReady.String())
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository ready list error: %w", err)
	}
	defer rows.Close()

	var orders []entities.Order
	for rows.Next() {
		orderDomain, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository ready list scan error: %w", err)
		}
		orders = append(orders, *orderDomain)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository ready list rows error: %w", err)
	}
	return orders, nil
}

// CancelStalePendingPayment cancels orders whose payment never completed
// within ttl. Used by the background sweep.
func (r *Repository) CancelStalePendingPayment(ctx context.Context, ttl time.Duration, reason string) (int64, error) {
	query := `
		UPDATE orders
		SET status = $1,
			cancelled_at = NOW(),
			cancellation_reason = $2
		WHERE status = $3
		  AND created_at < NOW() - $4::interval
	`

	result, err := r.querier.Exec(
		ctx,
		query,
		entities.OrderCancelled.String(),
		reason,
		entities.OrderPendingPayment.String(),
		ttl.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository stale payment cancel error: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var model OrderDB
	err := row.Scan(
		&model.ID,
		&model.Status,
		&model.CustomerRef,
		&model.RestaurantRef,
		&model.DeliveryPartnerID,
		&model.Items,
		&model.Subtotal,
		&model.DeliveryFee,
		&model.Tax,
		&model.Total,
		&model.PaymentMethod,
		&model.PaymentStatus,
		&model.PaymentTransactionID,
		&model.PaidAt,
		&model.CreatedAt,
		&model.ActualDeliveryTime,
		&model.CancelledAt,
		&model.CancellationReason,
	)
	if err != nil {
		return nil, err
	}
	return ToDomain(&model)
}
