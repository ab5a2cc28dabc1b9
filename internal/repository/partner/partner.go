package partner

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"orderflow/internal/entities"
	"orderflow/internal/service/claim"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.DeliveryPartner, error) {
	query := `SELECT id, name, phone, status, created_at, updated_at
		FROM delivery_partners
		WHERE id = $1`

	var model PartnerDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&model.ID,
			&model.Name,
			&model.Phone,
			&model.Status,
			&model.CreatedAt,
			&model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, claim.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("unexpected partner repository getbyid error: %w", err)
	}

	return ToDomain(&model), nil
}

func (r *Repository) Update(ctx context.Context, partnerModify entities.PartnerModify) (*entities.DeliveryPartner, error) {
	model := FromDomainModify(&partnerModify)

	builder := qb.Update("delivery_partners")

	if model.Name != nil {
		builder = builder.Set("name", model.Name)
	}
	if model.Phone != nil {
		builder = builder.Set("phone", model.Phone)
	}
	if model.Status != nil {
		builder = builder.Set("status", model.Status)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": model.ID}).
		Suffix("RETURNING id, name, phone, status, created_at, updated_at")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected partner repository update error: %w", err)
	}

	var updated PartnerDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(
			&updated.ID,
			&updated.Name,
			&updated.Phone,
			&updated.Status,
			&updated.CreatedAt,
			&updated.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, claim.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("unexpected partner repository update error: %w", err)
	}

	return ToDomain(&updated), nil
}
