package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
)

// ReferenceStore reads the precomputed consolidated client dataset.
type ReferenceStore struct {
	pool *pgxpool.Pool
}

// NewReferenceStore creates a new reference store over the shared pool.
func NewReferenceStore(pool *pgxpool.Pool) *ReferenceStore {
	return &ReferenceStore{pool: pool}
}

// Clients returns one reference row per client matching the filter.
// Filters narrow the reference rows here, before the turnover join, so
// they never change what the aggregator scans.
func (s *ReferenceStore) Clients(ctx context.Context, filter contracts.Filter) ([]contracts.ClientReference, error) {
	query := `
		SELECT
			c.cliente_id,
			c.nome,
			c.status,
			COALESCE(c.telefone, ''),
			COALESCE(c.email, ''),
			COALESCE(c.giro_semanal_alvo, 0),
			COALESCE(c.preco_unitario, 0),
			COALESCE(c.rota_id, 0),
			COALESCE(c.rota_nome, ''),
			COALESCE(c.representante_id, 0),
			COALESCE(c.representante_nome, ''),
			COALESCE(c.categoria_id, 0),
			COALESCE(c.categoria_nome, ''),
			COALESCE(c.categorias_habilitadas, '{}')
		FROM clientes_consolidado c
		WHERE ($1 = 0 OR c.representante_id = $1)
		  AND ($2 = 0 OR c.rota_id = $2)
		  AND ($3 = 0 OR c.categoria_id = $3)
		ORDER BY c.cliente_id`

	rows, err := s.pool.Query(ctx, query,
		filter.RepresentativeID, filter.RouteID, filter.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("query client references: %w", err)
	}
	defer rows.Close()

	var refs []contracts.ClientReference
	for rows.Next() {
		var ref contracts.ClientReference
		if err := rows.Scan(
			&ref.ClientID, &ref.Name, &ref.Status, &ref.Phone, &ref.Email,
			&ref.WeeklyTarget, &ref.UnitPrice,
			&ref.RouteID, &ref.RouteName,
			&ref.RepresentativeID, &ref.RepresentativeName,
			&ref.CategoryID, &ref.CategoryName,
			&ref.EnabledCategories,
		); err != nil {
			return nil, fmt.Errorf("scan client reference: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client references: %w", err)
	}

	return refs, nil
}

// RefreshSnapshot rebuilds the consolidated dataset. The rebuild itself is
// owned upstream; this only triggers it.
func (s *ReferenceStore) RefreshSnapshot(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `SELECT atualizar_clientes_consolidado()`); err != nil {
		return fmt.Errorf("refresh consolidated snapshot: %w", err)
	}
	return nil
}
