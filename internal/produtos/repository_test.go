package produtos

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numeric(cents int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(cents), Exp: -2, Valid: true}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func TestProdutoRowResolvesSupplierProjection(t *testing.T) {
	supplier := uuid.New()

	t.Run("null reference yields nil projection", func(t *testing.T) {
		p := produtoRow{Nome: "Solto", Sku: "SOL-01"}.produto()
		assert.Nil(t, p.FornecedorID)
		assert.Nil(t, p.Fornecedor)
	})

	t.Run("orphaned reference keeps the id but no projection", func(t *testing.T) {
		p := produtoRow{
			Nome:         "Órfão",
			Sku:          "ORF-01",
			FornecedorID: pgUUID(supplier),
			// RefID/RefRazao stay invalid: the joined supplier row is gone.
		}.produto()
		require.NotNil(t, p.FornecedorID)
		assert.Equal(t, supplier, *p.FornecedorID)
		assert.Nil(t, p.Fornecedor, "a removed supplier must resolve to nil, not an error")
	})

	t.Run("resolved reference carries the projection", func(t *testing.T) {
		p := produtoRow{
			Nome:         "Parafuso",
			Sku:          "PAR-01",
			FornecedorID: pgUUID(supplier),
			RefID:        pgUUID(supplier),
			RefRazao:     pgtype.Text{String: "Aço Forte Ltda", Valid: true},
		}.produto()
		require.NotNil(t, p.Fornecedor)
		assert.Equal(t, supplier, p.Fornecedor.ID)
		assert.Equal(t, "Aço Forte Ltda", p.Fornecedor.RazaoSocial)
	})
}

func TestProdutoRowMapsNumericsAndTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := produtoRow{
		ID:           uuid.New(),
		Nome:         "Arruela",
		Sku:          "ARR-01",
		PrecoCusto:   numeric(30),   // 0.30
		PrecoVenda:   numeric(1990), // 19.90
		EstoqueAtual: 500,
		CreatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: now.Add(time.Hour), Valid: true},
	}.produto()

	assert.InDelta(t, 0.30, p.PrecoCusto, 1e-9)
	assert.InDelta(t, 19.90, p.PrecoVenda, 1e-9)
	assert.Equal(t, 500, p.EstoqueAtual)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now.Add(time.Hour), p.UpdatedAt)
}

func TestProdutoRowLeavesInvalidNumericsZero(t *testing.T) {
	p := produtoRow{Nome: "Sem preço", Sku: "SEM-01"}.produto()
	assert.Zero(t, p.PrecoCusto)
	assert.Zero(t, p.PrecoVenda)
	assert.True(t, p.CreatedAt.IsZero())
}
