package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/infrastructure/pdf"
)

func TestMoneda(t *testing.T) {
	assert.Equal(t, "$0", pdf.Moneda(decimal.Zero))
	assert.Equal(t, "$950", pdf.Moneda(decimal.NewFromInt(950)))
	assert.Equal(t, "$25.000", pdf.Moneda(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.000.000", pdf.Moneda(decimal.NewFromInt(1000000)))
	assert.Equal(t, "$1.001", pdf.Moneda(decimal.RequireFromString("1000.6")))
	assert.Equal(t, "-$12.500", pdf.Moneda(decimal.NewFromInt(-12500)))
}

func TestGenerarComprobante(t *testing.T) {
	g := pdf.NewComprobanteOrden("Tienda Demo")
	o := &entity.Orden{
		ID:      42,
		Cliente: "Ana Pérez",
		Estado:  entity.EstadoPagado,
		Total:   decimal.NewFromInt(60000),
		Fecha:   time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
		Detalles: []entity.DetalleOrden{
			{ProductoID: 1, ProductoNombre: "Café", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(20000), Subtotal: decimal.NewFromInt(40000)},
			{ProductoID: 2, Cantidad: 1, PrecioUnitario: decimal.NewFromInt(20000), Subtotal: decimal.NewFromInt(20000)},
		},
	}

	doc, err := g.GenerarComprobante(context.Background(), o)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestGenerarComprobante_OrdenNil(t *testing.T) {
	_, err := pdf.NewComprobanteOrden("").GenerarComprobante(context.Background(), nil)
	assert.Error(t, err)
}
