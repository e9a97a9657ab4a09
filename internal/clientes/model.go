// Package clientes manages the customer base: model, gateway binding, form
// draft and HTTP surface.
package clientes

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer row. Nome and CpfCnpj are mandatory; contact and
// address fields stay NULL when never filled.
type Cliente struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Nome           string    `json:"nome" db:"nome"`
	CpfCnpj        string    `json:"cpf_cnpj" db:"cpf_cnpj"`
	Email          *string   `json:"email,omitempty" db:"email"`
	Telefone       *string   `json:"telefone,omitempty" db:"telefone"`
	EnderecoRua    *string   `json:"endereco_rua,omitempty" db:"endereco_rua"`
	EnderecoNumero *string   `json:"endereco_numero,omitempty" db:"endereco_numero"`
	EnderecoCidade *string   `json:"endereco_cidade,omitempty" db:"endereco_cidade"`
	EnderecoEstado *string   `json:"endereco_estado,omitempty" db:"endereco_estado"`
	EnderecoCep    *string   `json:"endereco_cep,omitempty" db:"endereco_cep"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
