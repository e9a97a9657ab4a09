package clientes

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

const selectColumns = "id, nome, cpf_cnpj, email, telefone, endereco_rua, endereco_numero, endereco_cidade, endereco_estado, endereco_cep, user_id, created_at"

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository is the clientes gateway binding over PostgreSQL. Every operation
// is scoped to the ambient identity, mirroring the hosted store's row-level
// access control.
type Repository struct {
	db dbtx
}

// NewRepository constructs the gateway binding.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

var _ resource.Gateway[Cliente, ClienteInsert, ClienteUpdate] = (*Repository)(nil)

// Select lists the caller's customers, newest first. An absent identity sees
// no rows.
func (r *Repository) Select(ctx context.Context) ([]Cliente, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return []Cliente{}, nil
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+selectColumns+" FROM clientes WHERE user_id = $1 ORDER BY created_at DESC",
		owner.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Cliente{}
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Insert stores a new customer owned by owner and returns the created row.
func (r *Repository) Insert(ctx context.Context, in ClienteInsert, owner uuid.UUID) (Cliente, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO clientes (nome, cpf_cnpj, email, telefone, endereco_rua, endereco_numero, endereco_cidade, endereco_estado, endereco_cep, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+selectColumns,
		in.Nome, in.CpfCnpj, in.Email, in.Telefone,
		in.EnderecoRua, in.EnderecoNumero, in.EnderecoCidade, in.EnderecoEstado, in.EnderecoCep,
		owner,
	)
	c, err := scanCliente(row)
	if err != nil {
		return Cliente{}, db.ConstraintMessage(err)
	}
	return c, nil
}

// Update rewrites the full editable row. Missing or foreign-owned ids report
// resource.ErrNotFound.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch ClienteUpdate) (Cliente, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return Cliente{}, resource.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `
		UPDATE clientes
		SET nome = $1, cpf_cnpj = $2, email = $3, telefone = $4,
		    endereco_rua = $5, endereco_numero = $6, endereco_cidade = $7, endereco_estado = $8, endereco_cep = $9
		WHERE id = $10 AND user_id = $11
		RETURNING `+selectColumns,
		patch.Nome, patch.CpfCnpj, patch.Email, patch.Telefone,
		patch.EnderecoRua, patch.EnderecoNumero, patch.EnderecoCidade, patch.EnderecoEstado, patch.EnderecoCep,
		id, owner.ID,
	)
	c, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Cliente{}, resource.ErrNotFound
		}
		return Cliente{}, db.ConstraintMessage(err)
	}
	return c, nil
}

// Delete removes the caller's customer, reporting how many rows went away.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, "DELETE FROM clientes WHERE id = $1 AND user_id = $2", id, owner.ID)
	if err != nil {
		return 0, db.ConstraintMessage(err)
	}
	return tag.RowsAffected(), nil
}

func scanCliente(row pgx.Row) (Cliente, error) {
	var c Cliente
	var email, telefone, rua, numero, cidade, estado, cep pgtype.Text
	var createdAt pgtype.Timestamptz

	err := row.Scan(
		&c.ID, &c.Nome, &c.CpfCnpj, &email, &telefone,
		&rua, &numero, &cidade, &estado, &cep,
		&c.UserID, &createdAt,
	)
	if err != nil {
		return Cliente{}, err
	}

	if email.Valid {
		c.Email = &email.String
	}
	if telefone.Valid {
		c.Telefone = &telefone.String
	}
	if rua.Valid {
		c.EnderecoRua = &rua.String
	}
	if numero.Valid {
		c.EnderecoNumero = &numero.String
	}
	if cidade.Valid {
		c.EnderecoCidade = &cidade.String
	}
	if estado.Valid {
		c.EnderecoEstado = &estado.String
	}
	if cep.Valid {
		c.EnderecoCep = &cep.String
	}
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	return c, nil
}
