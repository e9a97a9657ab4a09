package fornecedores

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

const selectColumns = "id, razao_social, cnpj, categoria, contato_nome, contato_email, contato_telefone, user_id, created_at"

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository is the fornecedores gateway binding over PostgreSQL. Every
// operation is scoped to the ambient identity, mirroring the hosted store's
// row-level access control.
type Repository struct {
	db dbtx
}

// NewRepository constructs the gateway binding.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

var _ resource.Gateway[Fornecedor, FornecedorInsert, FornecedorUpdate] = (*Repository)(nil)

// Select lists the caller's suppliers, newest first. An absent identity sees
// no rows, the same as the hosted store under row-level security.
func (r *Repository) Select(ctx context.Context) ([]Fornecedor, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return []Fornecedor{}, nil
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+selectColumns+" FROM fornecedores WHERE user_id = $1 ORDER BY created_at DESC",
		owner.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Fornecedor{}
	for rows.Next() {
		f, err := scanFornecedor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Insert stores a new supplier owned by owner and returns the created row.
func (r *Repository) Insert(ctx context.Context, in FornecedorInsert, owner uuid.UUID) (Fornecedor, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO fornecedores (razao_social, cnpj, categoria, contato_nome, contato_email, contato_telefone, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+selectColumns,
		in.RazaoSocial, in.Cnpj, in.Categoria, in.ContatoNome, in.ContatoEmail, in.ContatoTelefone, owner,
	)
	f, err := scanFornecedor(row)
	if err != nil {
		return Fornecedor{}, db.ConstraintMessage(err)
	}
	return f, nil
}

// Update rewrites the full editable row, matching the edit dialog which
// always submits every field. Missing or foreign-owned ids report
// resource.ErrNotFound.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch FornecedorUpdate) (Fornecedor, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return Fornecedor{}, resource.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `
		UPDATE fornecedores
		SET razao_social = $1, cnpj = $2, categoria = $3, contato_nome = $4, contato_email = $5, contato_telefone = $6
		WHERE id = $7 AND user_id = $8
		RETURNING `+selectColumns,
		patch.RazaoSocial, patch.Cnpj, patch.Categoria, patch.ContatoNome, patch.ContatoEmail, patch.ContatoTelefone, id, owner.ID,
	)
	f, err := scanFornecedor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Fornecedor{}, resource.ErrNotFound
		}
		return Fornecedor{}, db.ConstraintMessage(err)
	}
	return f, nil
}

// Delete removes the caller's supplier, reporting how many rows went away.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	owner := shared.IdentityFromContext(ctx)
	if owner == nil {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, "DELETE FROM fornecedores WHERE id = $1 AND user_id = $2", id, owner.ID)
	if err != nil {
		return 0, db.ConstraintMessage(err)
	}
	return tag.RowsAffected(), nil
}

func scanFornecedor(row pgx.Row) (Fornecedor, error) {
	var f Fornecedor
	var categoria, contatoNome, contatoEmail, contatoTelefone pgtype.Text
	var createdAt pgtype.Timestamptz

	err := row.Scan(
		&f.ID, &f.RazaoSocial, &f.Cnpj, &categoria, &contatoNome, &contatoEmail, &contatoTelefone,
		&f.UserID, &createdAt,
	)
	if err != nil {
		return Fornecedor{}, err
	}

	if categoria.Valid {
		f.Categoria = &categoria.String
	}
	if contatoNome.Valid {
		f.ContatoNome = &contatoNome.String
	}
	if contatoEmail.Valid {
		f.ContatoEmail = &contatoEmail.String
	}
	if contatoTelefone.Valid {
		f.ContatoTelefone = &contatoTelefone.String
	}
	if createdAt.Valid {
		f.CreatedAt = createdAt.Time
	}
	return f, nil
}
