// Package fornecedores manages the supplier base: model, gateway binding,
// form draft and HTTP surface.
package fornecedores

import (
	"time"

	"github.com/google/uuid"
)

// Fornecedor is a supplier row. RazaoSocial and Cnpj are mandatory; contact
// fields stay NULL when never filled.
type Fornecedor struct {
	ID              uuid.UUID `json:"id" db:"id"`
	RazaoSocial     string    `json:"razao_social" db:"razao_social"`
	Cnpj            string    `json:"cnpj" db:"cnpj"`
	Categoria       *string   `json:"categoria,omitempty" db:"categoria"`
	ContatoNome     *string   `json:"contato_nome,omitempty" db:"contato_nome"`
	ContatoEmail    *string   `json:"contato_email,omitempty" db:"contato_email"`
	ContatoTelefone *string   `json:"contato_telefone,omitempty" db:"contato_telefone"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
