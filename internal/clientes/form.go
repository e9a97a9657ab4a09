package clientes

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestor-erp/gestor/internal/resource"
)

// Draft holds the customer dialog fields as raw text.
type Draft struct {
	Nome           string
	CpfCnpj        string
	Email          string
	Telefone       string
	EnderecoRua    string
	EnderecoNumero string
	EnderecoCidade string
	EnderecoEstado string
	EnderecoCep    string
}

func draftDefaults() Draft {
	return Draft{}
}

func draftFrom(c Cliente) Draft {
	return Draft{
		Nome:           c.Nome,
		CpfCnpj:        c.CpfCnpj,
		Email:          resource.TextOrEmpty(c.Email),
		Telefone:       resource.TextOrEmpty(c.Telefone),
		EnderecoRua:    resource.TextOrEmpty(c.EnderecoRua),
		EnderecoNumero: resource.TextOrEmpty(c.EnderecoNumero),
		EnderecoCidade: resource.TextOrEmpty(c.EnderecoCidade),
		EnderecoEstado: resource.TextOrEmpty(c.EnderecoEstado),
		EnderecoCep:    resource.TextOrEmpty(c.EnderecoCep),
	}
}

// Insert coerces the draft to the insertable shape; empty optionals become NULL.
func (d Draft) Insert() ClienteInsert {
	return ClienteInsert{
		Nome:           d.Nome,
		CpfCnpj:        d.CpfCnpj,
		Email:          resource.OptionalText(d.Email),
		Telefone:       resource.OptionalText(d.Telefone),
		EnderecoRua:    resource.OptionalText(d.EnderecoRua),
		EnderecoNumero: resource.OptionalText(d.EnderecoNumero),
		EnderecoCidade: resource.OptionalText(d.EnderecoCidade),
		EnderecoEstado: resource.OptionalText(d.EnderecoEstado),
		EnderecoCep:    resource.OptionalText(d.EnderecoCep),
	}
}

// Patch coerces the draft to the updatable shape.
func (d Draft) Patch() ClienteUpdate {
	return ClienteUpdate{
		Nome:           d.Nome,
		CpfCnpj:        d.CpfCnpj,
		Email:          resource.OptionalText(d.Email),
		Telefone:       resource.OptionalText(d.Telefone),
		EnderecoRua:    resource.OptionalText(d.EnderecoRua),
		EnderecoNumero: resource.OptionalText(d.EnderecoNumero),
		EnderecoCidade: resource.OptionalText(d.EnderecoCidade),
		EnderecoEstado: resource.OptionalText(d.EnderecoEstado),
		EnderecoCep:    resource.OptionalText(d.EnderecoCep),
	}
}

// NewForm wires the customer dialog state machine to ctrl.
func NewForm(ctrl *Controller) *resource.Form[Cliente, Draft] {
	return resource.NewForm(resource.FormHooks[Cliente, Draft]{
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
