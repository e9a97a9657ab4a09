package fornecedores

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestor-erp/gestor/internal/resource"
)

// Draft holds the supplier dialog fields as raw text.
type Draft struct {
	RazaoSocial     string
	Cnpj            string
	Categoria       string
	ContatoNome     string
	ContatoEmail    string
	ContatoTelefone string
}

func draftDefaults() Draft {
	return Draft{}
}

func draftFrom(f Fornecedor) Draft {
	return Draft{
		RazaoSocial:     f.RazaoSocial,
		Cnpj:            f.Cnpj,
		Categoria:       resource.TextOrEmpty(f.Categoria),
		ContatoNome:     resource.TextOrEmpty(f.ContatoNome),
		ContatoEmail:    resource.TextOrEmpty(f.ContatoEmail),
		ContatoTelefone: resource.TextOrEmpty(f.ContatoTelefone),
	}
}

// Insert coerces the draft to the insertable shape; empty optionals become NULL.
func (d Draft) Insert() FornecedorInsert {
	return FornecedorInsert{
		RazaoSocial:     d.RazaoSocial,
		Cnpj:            d.Cnpj,
		Categoria:       resource.OptionalText(d.Categoria),
		ContatoNome:     resource.OptionalText(d.ContatoNome),
		ContatoEmail:    resource.OptionalText(d.ContatoEmail),
		ContatoTelefone: resource.OptionalText(d.ContatoTelefone),
	}
}

// Patch coerces the draft to the updatable shape.
func (d Draft) Patch() FornecedorUpdate {
	return FornecedorUpdate{
		RazaoSocial:     d.RazaoSocial,
		Cnpj:            d.Cnpj,
		Categoria:       resource.OptionalText(d.Categoria),
		ContatoNome:     resource.OptionalText(d.ContatoNome),
		ContatoEmail:    resource.OptionalText(d.ContatoEmail),
		ContatoTelefone: resource.OptionalText(d.ContatoTelefone),
	}
}

// NewForm wires the supplier dialog state machine to ctrl.
func NewForm(ctrl *Controller) *resource.Form[Fornecedor, Draft] {
	return resource.NewForm(resource.FormHooks[Fornecedor, Draft]{
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
