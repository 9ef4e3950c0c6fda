package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pen() Product {
	return Product{}.
		WithName("Caneta").
		WithDescription("Azul").
		WithCategory("Papelaria").
		WithStockQuantity(10).
		WithCostPrice(decimal.RequireFromString("0.5")).
		WithSalePrice(decimal.RequireFromString("1.2"))
}

func TestWithHelpersDoNotMutate(t *testing.T) {
	base := pen()
	renamed := base.WithName("Lapis")

	assert.Equal(t, "Caneta", base.Name)
	assert.Equal(t, "Lapis", renamed.Name)

	withID := base.WithID(7)
	assert.False(t, base.HasID())
	assert.Equal(t, int64(7), withID.IDValue())
	assert.False(t, withID.WithoutID().HasID())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, pen().Validate())
	assert.ErrorIs(t, pen().WithName("").Validate(), ErrNameRequired)
	assert.ErrorIs(t, pen().WithStockQuantity(-1).Validate(), ErrNegativeStock)
	assert.ErrorIs(t, pen().WithSalePrice(decimal.NewFromInt(-2)).Validate(), ErrNegativePrice)
}

func TestConverterPreservesFields(t *testing.T) {
	p := pen().WithImagePath("uploads/caneta.jpg").WithID(3)

	dto := ToDTO(p)
	assert.Equal(t, "Caneta", dto.Nome)
	assert.Equal(t, 0.5, dto.PrecoDeCusto)
	assert.Equal(t, 1.2, dto.PrecoDeVenda)
	assert.Equal(t, int64(3), *dto.ID)

	assert.True(t, p.Equal(ToEntity(dto)))
}

func TestToDTOOmitsAbsentID(t *testing.T) {
	assert.Nil(t, ToDTO(pen()).ID)
}

func TestEqualDistinguishesIDPresence(t *testing.T) {
	assert.False(t, pen().Equal(pen().WithID(0)))
	assert.True(t, pen().WithID(1).WithoutID().Equal(pen()))
}
