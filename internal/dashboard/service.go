// Package dashboard serves the read-only aggregates behind the landing page:
// per-user entity counts, stock valuation and the low-stock list.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestor-erp/gestor/internal/resource"
	"github.com/gestor-erp/gestor/internal/shared"
)

// Resumo aggregates the landing page numbers. Currency values carry a pt-BR
// formatted sibling for direct display.
type Resumo struct {
	TotalClientes     int64           `json:"total_clientes"`
	TotalFornecedores int64           `json:"total_fornecedores"`
	TotalProdutos     int64           `json:"total_produtos"`
	ValorEstoque      float64         `json:"valor_estoque"`
	ValorEstoqueFmt   string          `json:"valor_estoque_fmt"`
	EstoqueBaixo      []ProdutoBaixo  `json:"estoque_baixo"`
}

// ProdutoBaixo is a product at or below the low-stock threshold.
type ProdutoBaixo struct {
	ID           uuid.UUID `json:"id"`
	Nome         string    `json:"nome"`
	Sku          string    `json:"sku"`
	EstoqueAtual int       `json:"estoque_atual"`
}

// Service computes dashboard aggregates straight from the store; the numbers
// are cheap enough that they bypass the entity caches.
type Service struct {
	pool      *pgxpool.Pool
	threshold int
}

// NewService constructs the dashboard service with the low-stock threshold.
func NewService(pool *pgxpool.Pool, threshold int) *Service {
	return &Service{pool: pool, threshold: threshold}
}

// Threshold exposes the configured low-stock cutoff.
func (s *Service) Threshold() int {
	return s.threshold
}

// Resumo builds the landing page aggregates for the ambient identity.
func (s *Service) Resumo(ctx context.Context) (*Resumo, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return nil, resource.ErrUnauthenticated
	}

	out := &Resumo{EstoqueBaixo: []ProdutoBaixo{}}

	row := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM clientes WHERE user_id = $1),
			(SELECT COUNT(*) FROM fornecedores WHERE user_id = $1),
			(SELECT COUNT(*) FROM produtos WHERE user_id = $1),
			(SELECT COALESCE(SUM(preco_custo * estoque_atual), 0) FROM produtos WHERE user_id = $1)`,
		owner.ID,
	)
	var valor pgtype.Numeric
	if err := row.Scan(&out.TotalClientes, &out.TotalFornecedores, &out.TotalProdutos, &valor); err != nil {
		return nil, fmt.Errorf("dashboard: aggregate: %w", err)
	}
	if valor.Valid {
		if f, err := valor.Float64Value(); err == nil && f.Valid {
			out.ValorEstoque = f.Float64
		}
	}
	out.ValorEstoqueFmt = FormatBRL(out.ValorEstoque)

	rows, err := s.pool.Query(ctx, `
		SELECT id, nome, sku, estoque_atual
		FROM produtos
		WHERE user_id = $1 AND estoque_atual < $2
		ORDER BY estoque_atual ASC, nome ASC`,
		owner.ID, s.threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard: low stock: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p ProdutoBaixo
		if err := rows.Scan(&p.ID, &p.Nome, &p.Sku, &p.EstoqueAtual); err != nil {
			return nil, err
		}
		out.EstoqueBaixo = append(out.EstoqueBaixo, p)
	}
	return out, rows.Err()
}
