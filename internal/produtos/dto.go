package produtos

import "github.com/google/uuid"

// ProdutoInsert is the insertable shape. The owner id is attached by the sync
// controller, never by the caller.
type ProdutoInsert struct {
	Nome         string     `json:"nome" validate:"required,max=200"`
	Sku          string     `json:"sku" validate:"required,max=50"`
	PrecoCusto   float64    `json:"preco_custo" validate:"gte=0"`
	PrecoVenda   float64    `json:"preco_venda" validate:"gte=0"`
	EstoqueAtual int        `json:"estoque_atual" validate:"gte=0"`
	FornecedorID *uuid.UUID `json:"fornecedor_id"`
}

// ProdutoUpdate carries the full editable row; a nil FornecedorID clears the
// supplier reference.
type ProdutoUpdate struct {
	Nome         string     `json:"nome" validate:"required,max=200"`
	Sku          string     `json:"sku" validate:"required,max=50"`
	PrecoCusto   float64    `json:"preco_custo" validate:"gte=0"`
	PrecoVenda   float64    `json:"preco_venda" validate:"gte=0"`
	EstoqueAtual int        `json:"estoque_atual" validate:"gte=0"`
	FornecedorID *uuid.UUID `json:"fornecedor_id"`
}
