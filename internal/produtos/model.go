// Package produtos manages the product catalog: model with the denormalized
// supplier reference, gateway binding with the join, numeric draft coercion
// and HTTP surface.
package produtos

import (
	"time"

	"github.com/google/uuid"
)

// FornecedorRef is the read-only supplier projection attached to a product
// for display. It is recomputed on every list and never persisted with the
// row.
type FornecedorRef struct {
	ID          uuid.UUID `json:"id"`
	RazaoSocial string    `json:"razao_social"`
}

// Produto is a product row. SKU is unique per owner; prices and stock are
// non-negative with zero defaults. Fornecedor resolves to nil when the
// reference is NULL or points at a removed supplier.
type Produto struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Nome         string         `json:"nome" db:"nome"`
	Sku          string         `json:"sku" db:"sku"`
	PrecoCusto   float64        `json:"preco_custo" db:"preco_custo"`
	PrecoVenda   float64        `json:"preco_venda" db:"preco_venda"`
	EstoqueAtual int            `json:"estoque_atual" db:"estoque_atual"`
	FornecedorID *uuid.UUID     `json:"fornecedor_id" db:"fornecedor_id"`
	UserID       uuid.UUID      `json:"user_id" db:"user_id"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
	Fornecedor   *FornecedorRef `json:"fornecedor"`
}
