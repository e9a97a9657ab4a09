package clientes

// ClienteInsert is the insertable shape. The owner id is attached by the sync
// controller, never by the caller.
type ClienteInsert struct {
	Nome           string  `json:"nome" validate:"required,max=200"`
	CpfCnpj        string  `json:"cpf_cnpj" validate:"required,max=20"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefone       *string `json:"telefone,omitempty" validate:"omitempty,max=30"`
	EnderecoRua    *string `json:"endereco_rua,omitempty" validate:"omitempty,max=200"`
	EnderecoNumero *string `json:"endereco_numero,omitempty" validate:"omitempty,max=20"`
	EnderecoCidade *string `json:"endereco_cidade,omitempty" validate:"omitempty,max=100"`
	EnderecoEstado *string `json:"endereco_estado,omitempty" validate:"omitempty,max=2"`
	EnderecoCep    *string `json:"endereco_cep,omitempty" validate:"omitempty,max=10"`
}

// ClienteUpdate carries the full editable row, mirroring the edit dialog
// which always submits every field. A nil optional clears the column.
type ClienteUpdate struct {
	Nome           string  `json:"nome" validate:"required,max=200"`
	CpfCnpj        string  `json:"cpf_cnpj" validate:"required,max=20"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefone       *string `json:"telefone,omitempty" validate:"omitempty,max=30"`
	EnderecoRua    *string `json:"endereco_rua,omitempty" validate:"omitempty,max=200"`
	EnderecoNumero *string `json:"endereco_numero,omitempty" validate:"omitempty,max=20"`
	EnderecoCidade *string `json:"endereco_cidade,omitempty" validate:"omitempty,max=100"`
	EnderecoEstado *string `json:"endereco_estado,omitempty" validate:"omitempty,max=2"`
	EnderecoCep    *string `json:"endereco_cep,omitempty" validate:"omitempty,max=10"`
}
