package client

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/psqlbuilder"
)

// Repository репозиторий клиентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert находит клиента по (business_id, phone) или создаёт его одним запросом.
// Параллельные вызовы с одним номером сходятся на уникальном индексе и получают один и тот же id.
// Существующий клиент переиспользуется как есть, его имя не меняется.
func (r *Repository) Upsert(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("business_id", "name", "phone").
		Values(c.BusinessID, c.Name, c.Phone).
		Suffix("ON CONFLICT (business_id, phone) DO UPDATE SET name = clients.name RETURNING id, name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return c, nil
}
