package fornecedores

// FornecedorInsert is the insertable shape. The owner id is attached by the
// sync controller, never by the caller.
type FornecedorInsert struct {
	RazaoSocial     string  `json:"razao_social" validate:"required,max=200"`
	Cnpj            string  `json:"cnpj" validate:"required,max=20"`
	Categoria       *string `json:"categoria,omitempty" validate:"omitempty,max=100"`
	ContatoNome     *string `json:"contato_nome,omitempty" validate:"omitempty,max=200"`
	ContatoEmail    *string `json:"contato_email,omitempty" validate:"omitempty,email"`
	ContatoTelefone *string `json:"contato_telefone,omitempty" validate:"omitempty,max=30"`
}

// FornecedorUpdate carries the full editable row, mirroring the edit dialog
// which always submits every field. A nil optional clears the column.
type FornecedorUpdate struct {
	RazaoSocial     string  `json:"razao_social" validate:"required,max=200"`
	Cnpj            string  `json:"cnpj" validate:"required,max=20"`
	Categoria       *string `json:"categoria,omitempty" validate:"omitempty,max=100"`
	ContatoNome     *string `json:"contato_nome,omitempty" validate:"omitempty,max=200"`
	ContatoEmail    *string `json:"contato_email,omitempty" validate:"omitempty,email"`
	ContatoTelefone *string `json:"contato_telefone,omitempty" validate:"omitempty,max=30"`
}
