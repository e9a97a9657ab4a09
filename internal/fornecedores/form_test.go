package fornecedores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftInsertCollapsesEmptyOptionals(t *testing.T) {
	in := Draft{RazaoSocial: "Aço Forte Ltda", Cnpj: "12.345.678/0001-90"}.Insert()

	assert.Equal(t, "Aço Forte Ltda", in.RazaoSocial)
	assert.Nil(t, in.Categoria)
	assert.Nil(t, in.ContatoNome)
	assert.Nil(t, in.ContatoEmail)
	assert.Nil(t, in.ContatoTelefone)
}

func TestDraftInsertKeepsFilledOptionals(t *testing.T) {
	in := Draft{
		RazaoSocial:  "Aço Forte Ltda",
		Cnpj:         "12.345.678/0001-90",
		Categoria:    "metalurgia",
		ContatoEmail: "vendas@acoforte.com.br",
	}.Insert()

	require.NotNil(t, in.Categoria)
	assert.Equal(t, "metalurgia", *in.Categoria)
	require.NotNil(t, in.ContatoEmail)
	assert.Equal(t, "vendas@acoforte.com.br", *in.ContatoEmail)
}

func TestDraftFromCollapsesNilToEmptyText(t *testing.T) {
	categoria := "metalurgia"
	d := draftFrom(Fornecedor{
		RazaoSocial: "Aço Forte Ltda",
		Cnpj:        "12.345.678/0001-90",
		Categoria:   &categoria,
	})

	assert.Equal(t, "metalurgia", d.Categoria)
	assert.Equal(t, "", d.ContatoNome)
	assert.Equal(t, "", d.ContatoTelefone)
}
