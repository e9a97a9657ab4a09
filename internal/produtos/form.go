package produtos

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/gestor-erp/gestor/internal/resource"
)

// Draft holds the product dialog fields as raw text; prices and stock stay
// strings until submission so half-typed numbers never break the dialog.
type Draft struct {
	Nome         string
	Sku          string
	PrecoCusto   string
	PrecoVenda   string
	EstoqueAtual string
	FornecedorID string
}

func draftDefaults() Draft {
	return Draft{}
}

func draftFrom(p Produto) Draft {
	d := Draft{
		Nome:         p.Nome,
		Sku:          p.Sku,
		PrecoCusto:   strconv.FormatFloat(p.PrecoCusto, 'f', -1, 64),
		PrecoVenda:   strconv.FormatFloat(p.PrecoVenda, 'f', -1, 64),
		EstoqueAtual: strconv.Itoa(p.EstoqueAtual),
	}
	if p.FornecedorID != nil {
		d.FornecedorID = p.FornecedorID.String()
	}
	return d
}

// Insert coerces the draft to the insertable shape: empty or unparseable
// numerics resolve to zero, an empty supplier selection to NULL.
func (d Draft) Insert() ProdutoInsert {
	return ProdutoInsert{
		Nome:         d.Nome,
		Sku:          d.Sku,
		PrecoCusto:   resource.ParseDecimal(d.PrecoCusto),
		PrecoVenda:   resource.ParseDecimal(d.PrecoVenda),
		EstoqueAtual: resource.ParseInt(d.EstoqueAtual),
		FornecedorID: parseFornecedor(d.FornecedorID),
	}
}

// Patch coerces the draft to the updatable shape.
func (d Draft) Patch() ProdutoUpdate {
	return ProdutoUpdate{
		Nome:         d.Nome,
		Sku:          d.Sku,
		PrecoCusto:   resource.ParseDecimal(d.PrecoCusto),
		PrecoVenda:   resource.ParseDecimal(d.PrecoVenda),
		EstoqueAtual: resource.ParseInt(d.EstoqueAtual),
		FornecedorID: parseFornecedor(d.FornecedorID),
	}
}

func parseFornecedor(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// NewForm wires the product dialog state machine to ctrl.
func NewForm(ctrl *Controller) *resource.Form[Produto, Draft] {
	return resource.NewForm(resource.FormHooks[Produto, Draft]{
		Defaults: draftDefaults,
		Seed:     draftFrom,
		Create: func(ctx context.Context, d Draft) error {
			_, err := ctrl.Create(ctx, d.Insert())
			return err
		},
		Update: func(ctx context.Context, id uuid.UUID, d Draft) error {
			_, err := ctrl.Update(ctx, id, d.Patch())
			return err
		},
	})
}
