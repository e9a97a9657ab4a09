package produtos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestor-erp/gestor/internal/platform/db"
	"github.com/gestor-erp/gestor/internal/resource"
	"github.com/gestor-erp/gestor/internal/shared"
)

const selectColumns = "id, nome, sku, preco_custo, preco_venda, estoque_atual, fornecedor_id, user_id, created_at, updated_at"

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository is the produtos gateway binding over PostgreSQL. Select resolves
// the supplier projection in the same query; mutations return the bare row.
type Repository struct {
	db dbtx
}

// NewRepository constructs the gateway binding.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

var _ resource.Gateway[Produto, ProdutoInsert, ProdutoUpdate] = (*Repository)(nil)

// Select lists the caller's products newest first, each row carrying its
// denormalized supplier reference. A NULL or orphaned fornecedor_id resolves
// the projection to nil, never an error.
func (r *Repository) Select(ctx context.Context) ([]Produto, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return []Produto{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.nome, p.sku, p.preco_custo, p.preco_venda, p.estoque_atual,
		       p.fornecedor_id, p.user_id, p.created_at, p.updated_at,
		       f.id, f.razao_social
		FROM produtos p
		LEFT JOIN fornecedores f ON f.id = p.fornecedor_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`,
		owner.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Produto{}
	for rows.Next() {
		var r produtoRow
		err := rows.Scan(
			&r.ID, &r.Nome, &r.Sku, &r.PrecoCusto, &r.PrecoVenda, &r.EstoqueAtual,
			&r.FornecedorID, &r.UserID, &r.CreatedAt, &r.UpdatedAt,
			&r.RefID, &r.RefRazao,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r.produto())
	}
	return out, rows.Err()
}

// Insert stores a new product owned by owner. A duplicate SKU surfaces the
// unique-constraint message verbatim.
func (r *Repository) Insert(ctx context.Context, in ProdutoInsert, owner uuid.UUID) (Produto, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO produtos (nome, sku, preco_custo, preco_venda, estoque_atual, fornecedor_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+selectColumns,
		in.Nome, in.Sku, in.PrecoCusto, in.PrecoVenda, in.EstoqueAtual, in.FornecedorID, owner,
	)
	p, err := scanProduto(row)
	if err != nil {
		return Produto{}, db.ConstraintMessage(err)
	}
	return p, nil
}

// Update rewrites the full editable row and refreshes updated_at. Missing or
// foreign-owned ids report resource.ErrNotFound.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch ProdutoUpdate) (Produto, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return Produto{}, resource.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `
		UPDATE produtos
		SET nome = $1, sku = $2, preco_custo = $3, preco_venda = $4, estoque_atual = $5, fornecedor_id = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING `+selectColumns,
		patch.Nome, patch.Sku, patch.PrecoCusto, patch.PrecoVenda, patch.EstoqueAtual, patch.FornecedorID,
		id, owner.ID,
	)
	p, err := scanProduto(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Produto{}, resource.ErrNotFound
		}
		return Produto{}, db.ConstraintMessage(err)
	}
	return p, nil
}

// Delete removes the caller's product, reporting how many rows went away.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, "DELETE FROM produtos WHERE id = $1 AND user_id = $2", id, owner.ID)
	if err != nil {
		return 0, db.ConstraintMessage(err)
	}
	return tag.RowsAffected(), nil
}

// produtoRow carries the scanned column values before resolution; RefID and
// RefRazao come from the supplier join and stay invalid on the mutation paths.
type produtoRow struct {
	ID           uuid.UUID
	Nome         string
	Sku          string
	PrecoCusto   pgtype.Numeric
	PrecoVenda   pgtype.Numeric
	EstoqueAtual int
	FornecedorID pgtype.UUID
	UserID       uuid.UUID
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
	RefID        pgtype.UUID
	RefRazao     pgtype.Text
}

// produto resolves the scanned row. The supplier projection is set only when
// the reference resolved through the join: a NULL fornecedor_id or one
// pointing at a removed supplier yields a nil Fornecedor, never an error.
func (r produtoRow) produto() Produto {
	p := Produto{
		ID:           r.ID,
		Nome:         r.Nome,
		Sku:          r.Sku,
		EstoqueAtual: r.EstoqueAtual,
		UserID:       r.UserID,
	}
	applyNumeric(&p.PrecoCusto, r.PrecoCusto)
	applyNumeric(&p.PrecoVenda, r.PrecoVenda)
	if r.FornecedorID.Valid {
		id := uuid.UUID(r.FornecedorID.Bytes)
		p.FornecedorID = &id
	}
	if r.RefID.Valid && r.RefRazao.Valid {
		p.Fornecedor = &FornecedorRef{ID: uuid.UUID(r.RefID.Bytes), RazaoSocial: r.RefRazao.String}
	}
	if r.CreatedAt.Valid {
		p.CreatedAt = r.CreatedAt.Time
	}
	if r.UpdatedAt.Valid {
		p.UpdatedAt = r.UpdatedAt.Time
	}
	return p
}

func scanProduto(row pgx.Row) (Produto, error) {
	var r produtoRow
	err := row.Scan(
		&r.ID, &r.Nome, &r.Sku, &r.PrecoCusto, &r.PrecoVenda, &r.EstoqueAtual,
		&r.FornecedorID, &r.UserID, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return Produto{}, err
	}
	return r.produto(), nil
}

func applyNumeric(dst *float64, src pgtype.Numeric) {
	if !src.Valid {
		return
	}
	if f, err := src.Float64Value(); err == nil && f.Valid {
		*dst = f.Float64
	}
}
