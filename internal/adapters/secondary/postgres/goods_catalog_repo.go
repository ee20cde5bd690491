package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	ports "price-verification-service/internal/core/ports/output"
)

type goodsCatalogRepo struct {
	pool *pgxpool.Pool
}

// NewGoodsCatalogRepository reads goods descriptions from the goods_catalog
// table (goods_code TEXT PRIMARY KEY, description TEXT NOT NULL).
func NewGoodsCatalogRepository(pool *pgxpool.Pool) ports.GoodsCatalogSource {
	return &goodsCatalogRepo{pool: pool}
}

func (r *goodsCatalogRepo) Name() string { return "postgres" }

func (r *goodsCatalogRepo) LoadDescriptions(ctx context.Context) (map[string]string, error) {
	query := `
		SELECT goods_code, description
		FROM goods_catalog
		WHERE description <> ''
		ORDER BY goods_code
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query goods catalog: %w", err)
	}
	defer rows.Close()

	descriptions := make(map[string]string)
	for rows.Next() {
		var code, desc string
		if err := rows.Scan(&code, &desc); err != nil {
			return nil, fmt.Errorf("scan goods catalog row: %w", err)
		}
		descriptions[code] = desc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goods catalog rows: %w", err)
	}
	return descriptions, nil
}
